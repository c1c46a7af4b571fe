package auth

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/y0ug/gitlabauth/pkg/auth/providers"
	"github.com/y0ug/gitlabauth/pkg/gitlab"
)

const (
	serviceName  = "GitLab OAuth2"
	oauthVersion = "2.0"

	apiErrorMessage = "could not retrieve information from the external API"
)

// OAuthServiceProvider is what a host needs to run the OAuth2 login flow.
type OAuthServiceProvider interface {
	// AuthorizationURL is where the browser is sent to start the login.
	AuthorizationURL() string
	// ExchangeCode turns the authorization code into an access token.
	ExchangeCode(ctx context.Context, code string) (*AccessToken, error)
	// UserInfo resolves and authorizes the token's user.
	UserInfo(ctx context.Context, token *AccessToken) (*UserInfo, error)
	Name() string
	Version() string
}

// LoginProvider authenticates a user from a username and a secret.
type LoginProvider interface {
	Login(username, secret string) (*UserInfo, error)
}

var _ OAuthServiceProvider = (*Service)(nil)

// Service authenticates GitLab users and applies the organization policy.
// It holds no mutable state and is safe for concurrent use.
type Service struct {
	config     *Config
	provider   providers.Provider
	logger     logrus.FieldLogger
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option configures a Service.
type Option func(*Service)

// WithLogger sets the logger. The default is logrus.StandardLogger().
func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithHTTPClient sets the HTTP client used for every call to GitLab.
func WithHTTPClient(hc *http.Client) Option {
	return func(s *Service) {
		s.httpClient = hc
	}
}

// WithRateLimiter throttles calls to the GitLab API.
func WithRateLimiter(l *rate.Limiter) Option {
	return func(s *Service) {
		s.limiter = l
	}
}

// NewService creates a Service for a validated configuration.
func NewService(cfg *Config, opts ...Option) *Service {
	s := &Service{
		config: cfg,
		provider: providers.NewGitLabProvider(providers.ProviderConfig{
			BaseURL:      cfg.ProviderBaseURL(),
			ClientID:     cfg.ClientID(),
			ClientSecret: cfg.ClientSecret(),
			RedirectURL:  cfg.CallbackURL(),
			Scopes:       []string{providers.ScopeReadUser},
		}),
		logger: logrus.StandardLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name returns the display name of the login method.
func (s *Service) Name() string {
	return serviceName
}

// Version returns the OAuth protocol version.
func (s *Service) Version() string {
	return oauthVersion
}

// Authenticate runs the whole login: code exchange, identity resolution and
// membership verification. A policy rejection returns an error matching
// ErrDenied; an infrastructure fault returns an error matching ErrFailed.
func (s *Service) Authenticate(ctx context.Context, code string) (*UserInfo, error) {
	token, err := s.ExchangeCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return s.UserInfo(ctx, token)
}

// UserInfo resolves the token's user and verifies its memberships.
func (s *Service) UserInfo(ctx context.Context, token *AccessToken) (*UserInfo, error) {
	user, err := s.ResolveIdentity(ctx, token)
	if err != nil {
		return nil, err
	}
	if err := s.VerifyMembership(ctx, user.UserID); err != nil {
		return nil, err
	}
	return user, nil
}

func (s *Service) oauth2Context(ctx context.Context) context.Context {
	if s.httpClient != nil {
		return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
	}
	return ctx
}

func (s *Service) clientOptions() []gitlab.Option {
	return []gitlab.Option{
		gitlab.WithHTTPClient(s.httpClient),
		gitlab.WithRateLimiter(s.limiter),
	}
}
