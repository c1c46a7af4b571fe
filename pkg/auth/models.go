package auth

import (
	"fmt"

	"golang.org/x/oauth2"
)

// Placeholders used when GitLab omits a piece of profile metadata.
const (
	UnknownUsername = "UNKNOWN_USERNAME"
	UnknownEmail    = "UNKNOWN_EMAIL"
	UnknownName     = "UNKNOWN_NAME"
)

// IdentityProviderPrefix namespaces external ids issued by this integration.
const IdentityProviderPrefix = "gitlab-oauth"

// AccessToken is the result of an authorization-code exchange. It lives for
// one login attempt and is never persisted.
type AccessToken struct {
	Value string
	Type  string

	// Raw is the provider's token response, kept for forward compatibility
	// (Raw.Extra gives access to fields this package does not model).
	Raw *oauth2.Token
}

// String never includes the token value.
func (t AccessToken) String() string {
	return fmt.Sprintf("AccessToken{Type: %q, Value: [REDACTED]}", t.Type)
}

// GoString never includes the token value.
func (t AccessToken) GoString() string {
	return t.String()
}

// UserInfo represents the authenticated user's information.
type UserInfo struct {
	ExternalID  string `json:"external_id"`
	Username    string `json:"username"`
	Email       string `json:"email"`
	DisplayName string `json:"display_name"`

	// UserID is the numeric GitLab user id, used for membership lookups.
	UserID int64 `json:"-"`
}

func externalID(userID int64) string {
	return fmt.Sprintf("%s:%d", IdentityProviderPrefix, userID)
}
