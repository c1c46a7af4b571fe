package auth

import (
	"context"

	"github.com/y0ug/gitlabauth/pkg/gitlab"
)

// VerifyMembership checks the required group and project memberships of
// userID with the organization token. Without an organization token there
// is nothing to check and the user is allowed.
//
// Memberships inherited from parent groups count. The group is checked
// before the project; both must pass.
func (s *Service) VerifyMembership(ctx context.Context, userID int64) error {
	orgToken, ok := s.config.OrganizationToken()
	if !ok {
		return nil
	}
	groupID, checkGroup := s.config.GroupID()
	projectID, checkProject := s.config.ProjectID()
	if !checkGroup && !checkProject {
		return nil
	}

	log := s.logger.WithField("user_id", userID)

	api, err := gitlab.NewPrivateTokenClient(s.config.ProviderBaseURL(), orgToken, s.clientOptions()...)
	if err != nil {
		log.WithError(err).Error("Cannot open a GitLab session with the organization token")
		return fail(apiErrorMessage, err)
	}
	defer api.Close()

	if checkGroup {
		if _, err := api.GetInheritedGroupMember(ctx, groupID, userID); err != nil {
			if gitlab.IsNotFound(err) {
				log.WithField("group_id", groupID).Info("User is not a member of a required group. Failing authentication.")
				return deny(ReasonGroupMembership)
			}
			log.WithError(err).Error("Cannot check group membership")
			return fail(apiErrorMessage, err)
		}
	}

	if checkProject {
		if _, err := api.GetInheritedProjectMember(ctx, projectID, userID); err != nil {
			if gitlab.IsNotFound(err) {
				log.WithField("project_id", projectID).Info("User is not a member of a required project. Failing authentication.")
				return deny(ReasonProjectMembership)
			}
			log.WithError(err).Error("Cannot check project membership")
			return fail(apiErrorMessage, err)
		}
	}

	return nil
}
