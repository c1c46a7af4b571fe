package providers

const (
	// GitLabDefaultBaseURL is the public GitLab instance.
	GitLabDefaultBaseURL = "https://gitlab.com"

	// ScopeReadUser grants read access to the authenticated user's profile.
	ScopeReadUser = "read_user"
)

// DefaultConfigs holds default configurations for well-known providers.
var DefaultConfigs = map[string]*ProviderConfig{
	"gitlab": {
		Name:    "gitlab",
		BaseURL: GitLabDefaultBaseURL,
		Scopes:  []string{ScopeReadUser},
	},
}
