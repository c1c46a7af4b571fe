package webserver

import (
	"context"
	"encoding/json"
	"errors"
	"net"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"

	"github.com/y0ug/gitlabauth/pkg/auth"
)

// Authenticator runs the OAuth2 login against the identity provider.
type Authenticator interface {
	AuthorizationURL() string
	Authenticate(ctx context.Context, code string) (*auth.UserInfo, error)
	Name() string
	Version() string
}

// Notifier is told about authentication-system failures.
type Notifier interface {
	Send(title, message string)
}

// WebServer holds the data needed for handling HTTP requests.
type WebServer struct {
	auth     Authenticator
	login    auth.LoginProvider
	notifier Notifier
	config   *WebserverConfig
	Logger   *logrus.Logger
}

// NewWebServer initializes a new WebServer. notifier may be nil.
func NewWebServer(authenticator Authenticator, login auth.LoginProvider, notifier Notifier, config *WebserverConfig, logger *logrus.Logger) *WebServer {
	return &WebServer{
		auth:     authenticator,
		login:    login,
		notifier: notifier,
		config:   config,
		Logger:   logger,
	}
}

// StartWebServer starts the HTTP server.
func StartWebServer(ctx context.Context, ws *WebServer) (*http.Server, <-chan error) {
	router := ws.InitRouter()

	// Configure CORS options
	corsOptions := cors.Options{
		AllowedOrigins:   ws.config.CorsAllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Length"},
		AllowCredentials: true,
		Debug:            false,
	}

	server := &http.Server{
		Addr:    ws.config.ListenTo,
		Handler: cors.New(corsOptions).Handler(router),
		BaseContext: func(_ net.Listener) context.Context {
			return ctx
		},
	}

	errCh := make(chan error, 1)
	go func() {
		ws.Logger.Infof("Server starting on %s", ws.config.ListenTo)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	return server, errCh
}

// InitRouter initializes the HTTP routes.
func (ws *WebServer) InitRouter() *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/login", ws.handleLogin).Methods(http.MethodGet)
	r.HandleFunc("/oauth", ws.handleCallback).Methods(http.MethodGet)
	r.HandleFunc("/login/basic", ws.handleBasicLogin).Methods(http.MethodPost)
	r.HandleFunc("/providers", ws.handleProviders).Methods(http.MethodGet)
	r.HandleFunc("/healthz", ws.handleHealth).Methods(http.MethodGet)

	return r
}

// handleLogin redirects the browser to the GitLab authorization page.
func (ws *WebServer) handleLogin(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, ws.auth.AuthorizationURL(), http.StatusTemporaryRedirect)
}

// handleCallback handles the OAuth2 callback. A denial is rendered as a
// plain 401 and a failure as a plain 500; neither exposes details.
func (ws *WebServer) handleCallback(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	// GitLab redirects with ?error=access_denied when the user refuses the
	// authorization.
	if oauthErr := query.Get("error"); oauthErr != "" {
		ws.Logger.WithField("error", oauthErr).Info("Authorization refused by the provider")
		ws.writeJSON(w, http.StatusUnauthorized, HttpResp{Status: "error", Message: "Not authorized"})
		return
	}

	code := query.Get("code")
	if code == "" {
		ws.writeJSON(w, http.StatusBadRequest, HttpResp{Status: "error", Message: "Code not found in the request"})
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), ws.config.LoginTimeout)
	defer cancel()

	user, err := ws.auth.Authenticate(ctx, code)
	switch {
	case err == nil:
		ws.Logger.WithField("external_id", user.ExternalID).Info("User authenticated")
		ws.writeJSON(w, http.StatusOK, HttpResp{Status: "success", Data: user})
	case auth.IsDenied(err):
		reason, _ := auth.Reason(err)
		ws.Logger.WithField("reason", reason).Info("Authentication denied")
		ws.writeJSON(w, http.StatusUnauthorized, HttpResp{Status: "error", Message: "Not authorized"})
	default:
		ws.Logger.WithError(err).Error("Authentication failed")
		if ws.notifier != nil {
			ws.notifier.Send("GitLab authentication failure", err.Error())
		}
		ws.writeJSON(w, http.StatusInternalServerError, HttpResp{Status: "error", Message: "Authentication system error"})
	}
}

// handleBasicLogin serves the username and secret login, which is not
// supported.
func (ws *WebServer) handleBasicLogin(w http.ResponseWriter, r *http.Request) {
	username, secret, ok := r.BasicAuth()
	if !ok {
		username, secret = r.PostFormValue("username"), r.PostFormValue("password")
	}

	user, err := ws.login.Login(username, secret)
	switch {
	case err == nil:
		ws.writeJSON(w, http.StatusOK, HttpResp{Status: "success", Data: user})
	case errors.Is(err, errors.ErrUnsupported):
		ws.Logger.WithError(err).Warn("Direct login attempted")
		ws.writeJSON(w, http.StatusNotImplemented, HttpResp{Status: "error", Message: err.Error()})
	case auth.IsDenied(err):
		ws.writeJSON(w, http.StatusUnauthorized, HttpResp{Status: "error", Message: "Not authorized"})
	default:
		ws.Logger.WithError(err).Error("Direct login failed")
		ws.writeJSON(w, http.StatusInternalServerError, HttpResp{Status: "error", Message: "Authentication system error"})
	}
}

func (ws *WebServer) handleProviders(w http.ResponseWriter, r *http.Request) {
	ws.writeJSON(w, http.StatusOK, HttpResp{
		Status: "success",
		Data: []ProviderResp{{
			Name:    ws.auth.Name(),
			Version: ws.auth.Version(),
			Login:   "/login",
		}},
	})
}

func (ws *WebServer) handleHealth(w http.ResponseWriter, r *http.Request) {
	ws.writeJSON(w, http.StatusOK, HttpResp{Status: "success"})
}

func (ws *WebServer) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	// The status line is already sent; a failed write usually means the
	// client went away.
	if err := json.NewEncoder(w).Encode(v); err != nil {
		ws.Logger.WithError(err).Debug("Failed to write response")
	}
}
