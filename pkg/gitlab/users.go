package gitlab

import "context"

// User is the subset of GET /user used for login. Pointer fields are nil
// when GitLab omits them or sends null.
type User struct {
	ID        *int64  `json:"id"`
	Username  *string `json:"username"`
	Email     *string `json:"email"`
	Name      *string `json:"name"`
	State     string  `json:"state,omitempty"`
	AvatarURL string  `json:"avatar_url,omitempty"`
	WebURL    string  `json:"web_url,omitempty"`
}

// Email is an entry of GET /user/emails.
type Email struct {
	ID          int64   `json:"id"`
	Email       string  `json:"email"`
	ConfirmedAt *string `json:"confirmed_at,omitempty"`
}

// CurrentUser returns the user the client's token belongs to.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var u User
	if err := c.get(ctx, "user", &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// ListEmails returns the emails registered by the token's user.
func (c *Client) ListEmails(ctx context.Context) ([]Email, error) {
	var emails []Email
	if err := c.get(ctx, "user/emails", &emails); err != nil {
		return nil, err
	}
	return emails, nil
}
