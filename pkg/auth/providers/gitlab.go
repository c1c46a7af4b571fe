package providers

import (
	"context"

	"golang.org/x/oauth2"
)

// GitLabProvider implements the Provider interface for GitLab OAuth2.
// GitLab expects the client secret in the request body, not in a basic
// authorization header.
type GitLabProvider struct {
	config       *ProviderConfig
	oauth2Config *oauth2.Config
}

// NewGitLabProvider creates a new instance of GitLabProvider. An empty
// BaseURL selects the public instance and empty Scopes select read_user.
func NewGitLabProvider(config ProviderConfig) *GitLabProvider {
	defaults := DefaultConfigs["gitlab"]
	if config.Name == "" {
		config.Name = defaults.Name
	}
	if config.BaseURL == "" {
		config.BaseURL = defaults.BaseURL
	}
	if len(config.Scopes) == 0 {
		config.Scopes = append([]string(nil), defaults.Scopes...)
	}

	p := &GitLabProvider{config: &config}
	p.oauth2Config = &oauth2.Config{
		ClientID:     config.ClientID,
		ClientSecret: config.ClientSecret,
		RedirectURL:  config.RedirectURL,
		Scopes:       config.Scopes,
		Endpoint: oauth2.Endpoint{
			AuthURL:   p.AuthorizeEndpoint(),
			TokenURL:  p.TokenEndpoint(),
			AuthStyle: p.ClientAuthScheme(),
		},
	}
	return p
}

// Name returns the name of the provider.
func (p *GitLabProvider) Name() string {
	return p.config.Name
}

// Config returns the provider configuration.
func (p *GitLabProvider) Config() *ProviderConfig {
	return p.config
}

// TokenEndpoint returns <base>/oauth/token.
func (p *GitLabProvider) TokenEndpoint() string {
	return endpoint(p.config.BaseURL, "/oauth/token")
}

// AuthorizeEndpoint returns <base>/oauth/authorize.
func (p *GitLabProvider) AuthorizeEndpoint() string {
	return endpoint(p.config.BaseURL, "/oauth/authorize")
}

// ClientAuthScheme returns oauth2.AuthStyleInParams.
func (p *GitLabProvider) ClientAuthScheme() oauth2.AuthStyle {
	return oauth2.AuthStyleInParams
}

// OAuth2Config returns the OAuth2 configuration.
func (p *GitLabProvider) OAuth2Config() *oauth2.Config {
	return p.oauth2Config
}

// ExchangeCode exchanges the authorization code for an access token.
func (p *GitLabProvider) ExchangeCode(ctx context.Context, code string) (*oauth2.Token, error) {
	return defaultExchangeCode(ctx, p, code)
}
