package providers

// ProviderConfig holds the OAuth2 configuration for a single provider.
type ProviderConfig struct {
	Name         string   // Name of the provider (e.g., gitlab)
	BaseURL      string   // Root URL of the provider instance, without trailing slash
	ClientID     string   // OAuth2 Client ID
	ClientSecret string   // OAuth2 Client Secret
	RedirectURL  string   // OAuth2 Redirect URL
	Scopes       []string // OAuth2 Scopes
}
