package auth

import (
	"fmt"
	"strconv"

	"github.com/caarlos0/env/v11"
	"github.com/sirupsen/logrus"

	"github.com/y0ug/gitlabauth/pkg/auth/providers"
)

// Setting keys, used in error messages.
const (
	OAuthClientIDKey     = "oauth-client-id"
	OAuthClientSecretKey = "oauth-client-secret"
	CanonicalWebURLKey   = "canonical-web-url"
	RootURLKey           = "root-url"
	OrgPrivateTokenKey   = "org-private-token"
	EmailDomainKey       = "email-domain"
	ProjectMembershipKey = "project-membership"
	GroupMembershipKey   = "group-membership"
)

// callbackPath is appended to the canonical web URL to form the OAuth2
// redirect URL.
const callbackPath = "/oauth"

// Settings holds the raw configuration values handed over by the host.
// Empty strings mean "not set".
type Settings struct {
	ClientID          string `env:"GITLAB_OAUTH_CLIENT_ID"`
	ClientSecret      string `env:"GITLAB_OAUTH_CLIENT_SECRET"`
	CanonicalWebURL   string `env:"GITLAB_OAUTH_CANONICAL_WEB_URL"`
	RootURL           string `env:"GITLAB_OAUTH_ROOT_URL"`
	OrgPrivateToken   string `env:"GITLAB_OAUTH_ORG_PRIVATE_TOKEN"`
	EmailDomain       string `env:"GITLAB_OAUTH_EMAIL_DOMAIN"`
	GroupMembership   string `env:"GITLAB_OAUTH_GROUP_MEMBERSHIP"`
	ProjectMembership string `env:"GITLAB_OAUTH_PROJECT_MEMBERSHIP"`
}

// LoadSettingsFromEnv reads Settings from environment variables.
func LoadSettingsFromEnv() (Settings, error) {
	var s Settings
	if err := env.Parse(&s); err != nil {
		return Settings{}, fmt.Errorf("parse env: %w", err)
	}
	return s, nil
}

// Config is the validated, immutable configuration of the integration.
// Optional values are only reachable through their (value, ok) accessors.
type Config struct {
	clientID        string
	clientSecret    string
	callbackURL     string
	providerBaseURL string

	organizationToken string
	emailDomain       string

	groupID      uint32
	hasGroupID   bool
	projectID    uint32
	hasProjectID bool
}

// NewConfig validates settings. Every error wraps ErrInvalidConfig and names
// the offending setting.
func NewConfig(s Settings) (*Config, error) {
	cfg := &Config{
		clientID:          s.ClientID,
		clientSecret:      s.ClientSecret,
		organizationToken: s.OrgPrivateToken,
		emailDomain:       s.EmailDomain,
	}

	if cfg.clientID == "" {
		return nil, missing(OAuthClientIDKey)
	}
	if cfg.clientSecret == "" {
		return nil, missing(OAuthClientSecretKey)
	}

	if s.CanonicalWebURL == "" {
		return nil, missing(CanonicalWebURLKey)
	}
	base := trimTrailingSlash(s.CanonicalWebURL)
	if _, err := parseAbsoluteURL(base); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, CanonicalWebURLKey, err)
	}
	cfg.callbackURL = base + callbackPath

	cfg.providerBaseURL = providers.GitLabDefaultBaseURL
	if s.RootURL != "" {
		root := trimTrailingSlash(s.RootURL)
		if _, err := parseAbsoluteURL(root); err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidConfig, RootURLKey, err)
		}
		cfg.providerBaseURL = root
	}

	if s.ProjectMembership != "" {
		id, err := parseUnsignedID(s.ProjectMembership)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: Project ID must be an unsigned integer, got '%s'",
				ErrInvalidConfig, ProjectMembershipKey, s.ProjectMembership)
		}
		cfg.projectID, cfg.hasProjectID = id, true
	}
	if s.GroupMembership != "" {
		id, err := parseUnsignedID(s.GroupMembership)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: Group ID must be an unsigned integer, got '%s'",
				ErrInvalidConfig, GroupMembershipKey, s.GroupMembership)
		}
		cfg.groupID, cfg.hasGroupID = id, true
	}

	return cfg, nil
}

func missing(key string) error {
	return fmt.Errorf("%w: '%s' is not set in the plugin configuration", ErrInvalidConfig, key)
}

func (c *Config) ClientID() string        { return c.clientID }
func (c *Config) ClientSecret() string    { return c.clientSecret }
func (c *Config) CallbackURL() string     { return c.callbackURL }
func (c *Config) ProviderBaseURL() string { return c.providerBaseURL }

// OrganizationToken returns the elevated token used for membership checks.
func (c *Config) OrganizationToken() (string, bool) {
	return c.organizationToken, c.organizationToken != ""
}

// EmailDomain returns the suffix a user's email must end with.
func (c *Config) EmailDomain() (string, bool) {
	return c.emailDomain, c.emailDomain != ""
}

// GroupID returns the group a user must belong to.
func (c *Config) GroupID() (uint32, bool) {
	return c.groupID, c.hasGroupID
}

// ProjectID returns the project a user must belong to.
func (c *Config) ProjectID() (uint32, bool) {
	return c.projectID, c.hasProjectID
}

// LogFields describes the configuration without its secrets.
func (c *Config) LogFields() logrus.Fields {
	fields := logrus.Fields{
		"client_id":          c.clientID,
		"callback_url":       c.callbackURL,
		"root_url":           c.providerBaseURL,
		"org_private_token":  "unset",
		"email_domain":       c.emailDomain,
		"group_membership":   "",
		"project_membership": "",
	}
	if _, ok := c.OrganizationToken(); ok {
		fields["org_private_token"] = "set"
	}
	if id, ok := c.GroupID(); ok {
		fields["group_membership"] = strconv.FormatUint(uint64(id), 10)
	}
	if id, ok := c.ProjectID(); ok {
		fields["project_membership"] = strconv.FormatUint(uint64(id), 10)
	}
	return fields
}
