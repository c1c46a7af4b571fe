package auth

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/sirupsen/logrus"
)

const (
	testUserToken = "user-token-0123456789"
	testOrgToken  = "org-token-9876543210"
	testSecret    = "client-secret-abcdef"
)

// responses configures what fakeGitLab answers.
type responses struct {
	tokenStatus int
	tokenType   string
	tokenBody   string

	userStatus int
	userBody   string

	emailsStatus int
	emailsBody   string

	groupStatus   int
	projectStatus int
}

// fakeGitLab serves the token endpoint and the subset of /api/v4 used by
// the service, and counts the calls it receives.
type fakeGitLab struct {
	t   *testing.T
	srv *httptest.Server

	mu    sync.Mutex
	calls map[string]int
	resp  responses
}

func newFakeGitLab(t *testing.T) *fakeGitLab {
	t.Helper()

	f := &fakeGitLab{
		t:     t,
		calls: make(map[string]int),
	}
	f.resp = responses{
		tokenStatus:   http.StatusOK,
		tokenType:     "application/json",
		tokenBody:     fmt.Sprintf(`{"access_token":%q,"token_type":"bearer","expires_in":7200}`, testUserToken),
		userStatus:    http.StatusOK,
		userBody:      `{"id":42,"username":"jdoe","email":"jdoe@corp.io","name":"Jane Doe"}`,
		emailsStatus:  http.StatusOK,
		emailsBody:    `[{"id":1,"email":"jdoe@corp.io"}]`,
		groupStatus:   http.StatusOK,
		projectStatus: http.StatusOK,
	}

	mux := http.NewServeMux()

	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		resp := f.record("token")
		if err := r.ParseForm(); err != nil {
			t.Errorf("parse token form: %v", err)
		}
		if r.PostForm.Get("client_secret") != testSecret {
			t.Errorf("expected client secret in request body")
		}
		w.Header().Set("Content-Type", resp.tokenType)
		w.WriteHeader(resp.tokenStatus)
		w.Write([]byte(resp.tokenBody))
	})

	mux.HandleFunc("GET /api/v4/user", func(w http.ResponseWriter, r *http.Request) {
		resp := f.record("user")
		f.expectBearer(r)
		f.reply(w, resp.userStatus, resp.userBody)
	})

	mux.HandleFunc("GET /api/v4/user/emails", func(w http.ResponseWriter, r *http.Request) {
		resp := f.record("emails")
		f.expectBearer(r)
		f.reply(w, resp.emailsStatus, resp.emailsBody)
	})

	mux.HandleFunc("GET /api/v4/groups/{group}/members/all/{user}", func(w http.ResponseWriter, r *http.Request) {
		resp := f.record("group:" + r.PathValue("group") + ":" + r.PathValue("user"))
		f.expectPrivateToken(r)
		f.reply(w, resp.groupStatus, `{"id":42,"username":"jdoe","access_level":30}`)
	})

	mux.HandleFunc("GET /api/v4/projects/{project}/members/all/{user}", func(w http.ResponseWriter, r *http.Request) {
		resp := f.record("project:" + r.PathValue("project") + ":" + r.PathValue("user"))
		f.expectPrivateToken(r)
		f.reply(w, resp.projectStatus, `{"id":42,"username":"jdoe","access_level":30}`)
	})

	f.srv = httptest.NewServer(mux)
	t.Cleanup(f.srv.Close)
	return f
}

func (f *fakeGitLab) URL() string {
	return f.srv.URL
}

// set changes the configured responses.
func (f *fakeGitLab) set(fn func(r *responses)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	fn(&f.resp)
}

// record counts a call and returns the current responses.
func (f *fakeGitLab) record(name string) responses {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[name]++
	return f.resp
}

// count returns the number of calls recorded under name.
func (f *fakeGitLab) count(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[name]
}

// total returns the number of calls received.
func (f *fakeGitLab) total() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

func (f *fakeGitLab) expectBearer(r *http.Request) {
	if got := r.Header.Get("Authorization"); got != "Bearer "+testUserToken {
		f.t.Errorf("unexpected Authorization header %q", got)
	}
}

func (f *fakeGitLab) expectPrivateToken(r *http.Request) {
	if got := r.Header.Get("PRIVATE-TOKEN"); got != testOrgToken {
		f.t.Errorf("unexpected PRIVATE-TOKEN header %q", got)
	}
	if r.Header.Get("Authorization") != "" {
		f.t.Errorf("membership lookups must not use the user's token")
	}
}

func (f *fakeGitLab) reply(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	switch {
	case status == http.StatusNotFound:
		w.Write([]byte(`{"message":"404 Not found"}`))
	case status >= 400:
		w.Write([]byte(fmt.Sprintf(`{"message":"%d error"}`, status)))
	default:
		w.Write([]byte(body))
	}
}

// testSettings returns valid settings pointing at f.
func testSettings(f *fakeGitLab) Settings {
	return Settings{
		ClientID:        "client-id",
		ClientSecret:    testSecret,
		CanonicalWebURL: "https://review.example.com/",
		RootURL:         f.URL(),
	}
}

// newTestService builds a Service against f, logging into the returned buffer.
func newTestService(t *testing.T, s Settings) (*Service, *bytes.Buffer) {
	t.Helper()

	cfg, err := NewConfig(s)
	if err != nil {
		t.Fatalf("failed to create config: %v", err)
	}

	var buf bytes.Buffer
	logger := logrus.New()
	logger.SetOutput(&buf)
	logger.SetLevel(logrus.DebugLevel)

	return NewService(cfg, WithLogger(logger)), &buf
}
