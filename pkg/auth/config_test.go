package auth

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func validSettings() Settings {
	return Settings{
		ClientID:        "client-id",
		ClientSecret:    testSecret,
		CanonicalWebURL: "https://review.example.com",
	}
}

func TestNewConfigRequiresClientCredentials(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Settings)
		key    string
	}{
		{"missing client id", func(s *Settings) { s.ClientID = "" }, OAuthClientIDKey},
		{"missing client secret", func(s *Settings) { s.ClientSecret = "" }, OAuthClientSecretKey},
		{"missing both", func(s *Settings) { s.ClientID, s.ClientSecret = "", "" }, OAuthClientIDKey},
		{"missing canonical url", func(s *Settings) { s.CanonicalWebURL = "" }, CanonicalWebURLKey},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := validSettings()
			tt.modify(&s)

			cfg, err := NewConfig(s)
			if err == nil {
				t.Fatalf("expected error, got config %+v", cfg)
			}
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), tt.key) {
				t.Errorf("expected error to name %s, got %v", tt.key, err)
			}
		})
	}
}

func TestNewConfigCallbackURL(t *testing.T) {
	tests := []struct {
		base string
		want string
	}{
		{"https://review.example.com", "https://review.example.com/oauth"},
		{"https://review.example.com/", "https://review.example.com/oauth"},
		{"https://example.com/gerrit/", "https://example.com/gerrit/oauth"},
		{"https://review.example.com//", "https://review.example.com//oauth"},
	}

	for _, tt := range tests {
		s := validSettings()
		s.CanonicalWebURL = tt.base
		cfg, err := NewConfig(s)
		if err != nil {
			t.Fatalf("%s: failed to create config: %v", tt.base, err)
		}
		if cfg.CallbackURL() != tt.want {
			t.Errorf("%s: expected callback %s, got %s", tt.base, tt.want, cfg.CallbackURL())
		}
	}
}

func TestNewConfigRejectsRelativeURLs(t *testing.T) {
	s := validSettings()
	s.CanonicalWebURL = "review.example.com"
	if _, err := NewConfig(s); !errors.Is(err, ErrInvalidConfig) {
		t.Errorf("expected ErrInvalidConfig for relative canonical url, got %v", err)
	}

	s = validSettings()
	s.RootURL = "/gitlab"
	_, err := NewConfig(s)
	if !errors.Is(err, ErrInvalidConfig) || !strings.Contains(err.Error(), RootURLKey) {
		t.Errorf("expected root-url error, got %v", err)
	}
}

func TestNewConfigRootURL(t *testing.T) {
	cfg, err := NewConfig(validSettings())
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	if cfg.ProviderBaseURL() != "https://gitlab.com" {
		t.Errorf("expected default root url, got %s", cfg.ProviderBaseURL())
	}

	s := validSettings()
	s.RootURL = "https://git.corp.io/"
	cfg, err = NewConfig(s)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	if cfg.ProviderBaseURL() != "https://git.corp.io" {
		t.Errorf("expected trimmed root url, got %s", cfg.ProviderBaseURL())
	}
}

func TestNewConfigOptionalValues(t *testing.T) {
	cfg, err := NewConfig(validSettings())
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	if _, ok := cfg.OrganizationToken(); ok {
		t.Errorf("organization token should be absent")
	}
	if _, ok := cfg.EmailDomain(); ok {
		t.Errorf("email domain should be absent")
	}
	if _, ok := cfg.GroupID(); ok {
		t.Errorf("group id should be absent")
	}
	if _, ok := cfg.ProjectID(); ok {
		t.Errorf("project id should be absent")
	}

	s := validSettings()
	s.OrgPrivateToken = testOrgToken
	s.EmailDomain = "corp.io"
	s.GroupMembership = "0"
	s.ProjectMembership = "4294967295"
	cfg, err = NewConfig(s)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	if tok, ok := cfg.OrganizationToken(); !ok || tok != testOrgToken {
		t.Errorf("unexpected organization token")
	}
	if d, ok := cfg.EmailDomain(); !ok || d != "corp.io" {
		t.Errorf("unexpected email domain %q", d)
	}
	if id, ok := cfg.GroupID(); !ok || id != 0 {
		t.Errorf("expected group id 0, got %d (%v)", id, ok)
	}
	if id, ok := cfg.ProjectID(); !ok || id != 4294967295 {
		t.Errorf("expected project id 4294967295, got %d (%v)", id, ok)
	}
}

func TestNewConfigRejectsInvalidIDs(t *testing.T) {
	invalid := []string{"abc", "-1", "4294967296", "1.5", " 12", "0x10", "99999999999999999999"}

	for _, v := range invalid {
		t.Run("group "+v, func(t *testing.T) {
			s := validSettings()
			s.GroupMembership = v
			_, err := NewConfig(s)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), "Group ID must be an unsigned integer") {
				t.Errorf("expected group specific message, got %v", err)
			}
		})
		t.Run("project "+v, func(t *testing.T) {
			s := validSettings()
			s.ProjectMembership = v
			_, err := NewConfig(s)
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("expected ErrInvalidConfig, got %v", err)
			}
			if !strings.Contains(err.Error(), "Project ID must be an unsigned integer") {
				t.Errorf("expected project specific message, got %v", err)
			}
		})
	}
}

func TestLoadSettingsFromEnv(t *testing.T) {
	t.Setenv("GITLAB_OAUTH_CLIENT_ID", "env-id")
	t.Setenv("GITLAB_OAUTH_CLIENT_SECRET", "env-secret")
	t.Setenv("GITLAB_OAUTH_CANONICAL_WEB_URL", "https://review.example.com/")
	t.Setenv("GITLAB_OAUTH_EMAIL_DOMAIN", "corp.io")
	t.Setenv("GITLAB_OAUTH_GROUP_MEMBERSHIP", "12")

	s, err := LoadSettingsFromEnv()
	if err != nil {
		t.Fatalf("failed to load settings: %v", err)
	}
	if s.ClientID != "env-id" || s.ClientSecret != "env-secret" {
		t.Errorf("client credentials mismatch")
	}
	if s.EmailDomain != "corp.io" || s.GroupMembership != "12" {
		t.Errorf("optional settings mismatch: %+v", s)
	}
	if s.RootURL != "" || s.ProjectMembership != "" {
		t.Errorf("unset settings should be empty")
	}

	cfg, err := NewConfig(s)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}
	if id, ok := cfg.GroupID(); !ok || id != 12 {
		t.Errorf("expected group id 12")
	}
}

func TestLogFieldsRedactSecrets(t *testing.T) {
	s := validSettings()
	s.OrgPrivateToken = testOrgToken
	s.GroupMembership = "7"
	cfg, err := NewConfig(s)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}

	fields := cfg.LogFields()
	dump := fmt.Sprint(fields)
	if strings.Contains(dump, testOrgToken) || strings.Contains(dump, testSecret) {
		t.Errorf("log fields leak a secret: %s", dump)
	}
	if fields["org_private_token"] != "set" {
		t.Errorf("expected org_private_token=set, got %v", fields["org_private_token"])
	}
	if fields["group_membership"] != "7" {
		t.Errorf("expected group_membership=7, got %v", fields["group_membership"])
	}
}
