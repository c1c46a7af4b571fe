package gitlab

import (
	"context"
	"fmt"
)

// Member is a group or project member as returned by the members API.
type Member struct {
	ID          int64  `json:"id"`
	Username    string `json:"username"`
	Name        string `json:"name"`
	State       string `json:"state"`
	AccessLevel int    `json:"access_level"`
}

// GetInheritedGroupMember returns the membership of userID in groupID,
// counting memberships inherited from ancestor groups. A missing membership
// is reported as an APIError with status 404.
func (c *Client) GetInheritedGroupMember(ctx context.Context, groupID uint32, userID int64) (*Member, error) {
	var m Member
	if err := c.get(ctx, fmt.Sprintf("groups/%d/members/all/%d", groupID, userID), &m); err != nil {
		return nil, err
	}
	return &m, nil
}

// GetInheritedProjectMember is GetInheritedGroupMember for projects.
func (c *Client) GetInheritedProjectMember(ctx context.Context, projectID uint32, userID int64) (*Member, error) {
	var m Member
	if err := c.get(ctx, fmt.Sprintf("projects/%d/members/all/%d", projectID, userID), &m); err != nil {
		return nil, err
	}
	return &m, nil
}
