package auth

import (
	"context"
	"strings"

	"github.com/y0ug/gitlabauth/pkg/gitlab"
)

// ResolveIdentity builds the user behind token and applies the email domain
// policy.
func (s *Service) ResolveIdentity(ctx context.Context, token *AccessToken) (*UserInfo, error) {
	if token == nil || token.Value == "" {
		s.logger.Info("No token -> no user")
		return nil, deny(ReasonNoToken)
	}

	api, err := gitlab.NewOAuthClient(s.config.ProviderBaseURL(), token.Value, s.clientOptions()...)
	if err != nil {
		s.logger.WithError(err).Error("Cannot open a GitLab session")
		return nil, fail(apiErrorMessage, err)
	}
	defer api.Close()

	user, err := api.CurrentUser(ctx)
	if err != nil {
		s.logger.WithError(err).Error("Cannot fetch the current user")
		return nil, fail(apiErrorMessage, err)
	}
	if user.ID == nil {
		s.logger.Info("User does not have an id? Failing authentication.")
		return nil, deny(ReasonMissingUserID)
	}
	userID := *user.ID
	log := s.logger.WithField("user_id", userID)

	username, ok := valueOr(user.Username, UnknownUsername)
	if !ok {
		log.Warn("User does not have a username?")
	}
	mainEmail, ok := valueOr(user.Email, UnknownEmail)
	if !ok {
		log.Warn("User does not have an email?")
	}

	email := mainEmail
	if domain, ok := s.config.EmailDomain(); ok {
		emails, err := api.ListEmails(ctx)
		if err != nil {
			log.WithError(err).Error("Cannot list user emails")
			return nil, fail(apiErrorMessage, err)
		}
		valid := emailsWithSuffix(emails, domain)
		if len(valid) != 1 {
			log.WithField("valid_email_count", len(valid)).Info("User does not have exactly one valid email. Failing authentication.")
			return nil, deny(ReasonEmailDomain)
		}
		email = valid[0]
	}

	name, ok := valueOr(user.Name, UnknownName)
	if !ok {
		log.Warn("User does not have a name?")
	}

	return &UserInfo{
		ExternalID:  externalID(userID),
		Username:    username,
		Email:       email,
		DisplayName: name,
		UserID:      userID,
	}, nil
}

// emailsWithSuffix keeps the addresses ending with suffix. This is a plain
// string suffix: "example.com" also matches "a@notexample.com".
func emailsWithSuffix(emails []gitlab.Email, suffix string) []string {
	var out []string
	for _, e := range emails {
		if strings.HasSuffix(e.Email, suffix) {
			out = append(out, e.Email)
		}
	}
	return out
}
