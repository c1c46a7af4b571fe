package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// Provider describes the OAuth2 capabilities of an identity provider.
type Provider interface {
	// Name returns the name of the provider (e.g., gitlab).
	Name() string

	// TokenEndpoint returns the URL of the token endpoint.
	TokenEndpoint() string

	// AuthorizeEndpoint returns the URL of the authorization endpoint.
	AuthorizeEndpoint() string

	// ClientAuthScheme returns how client credentials are sent to the token endpoint.
	ClientAuthScheme() oauth2.AuthStyle

	// OAuth2Config returns the OAuth2 configuration for the provider.
	OAuth2Config() *oauth2.Config

	// ExchangeCode exchanges the authorization code for an access token.
	ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error)
}
