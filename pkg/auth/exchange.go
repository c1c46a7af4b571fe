package auth

import (
	"context"
	"errors"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
)

// AuthorizationURL builds the GitLab authorization URL with the client id,
// the callback URL and the read_user scope. It does not depend on the
// request and is the same on every call.
func (s *Service) AuthorizationURL() string {
	return s.provider.OAuth2Config().AuthCodeURL("")
}

// ExchangeCode exchanges an authorization code for an access token.
//
// An OAuth error answered by GitLab (typically an expired or already used
// code, after a refresh of the callback page) is a denial. Anything else is
// a failure and is not retried.
func (s *Service) ExchangeCode(ctx context.Context, code string) (*AccessToken, error) {
	tok, err := s.provider.ExchangeCode(s.oauth2Context(ctx), code)
	if err != nil {
		var re *oauth2.RetrieveError
		if errors.As(err, &re) && re.ErrorCode != "" {
			s.logger.WithFields(logrus.Fields{
				"error_code":        re.ErrorCode,
				"error_description": re.ErrorDescription,
			}).Warn("Could not request a new access token")
			return nil, deny(ReasonInvalidGrant)
		}
		s.logger.WithError(err).Error("Cannot retrieve access token")
		return nil, fail("cannot retrieve access token", err)
	}

	return &AccessToken{
		Value: tok.AccessToken,
		Type:  tok.Type(),
		Raw:   tok,
	}, nil
}
