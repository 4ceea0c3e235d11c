package eventhub

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventhub/pkg/types"
)

func newTestClient(t *testing.T, handler http.Handler, opts ...Option) EventHub {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	opts = append([]Option{
		WithBaseURL(srv.URL),
		WithCredentialsPath(filepath.Join(t.TempDir(), "credentials.json")),
	}, opts...)

	hub, err := New(opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = hub.Close() })
	return hub
}

func TestNewDefaults(t *testing.T) {
	hub, err := New(WithCredentialsPath(filepath.Join(t.TempDir(), "credentials.json")))
	require.NoError(t, err)
	defer hub.Close()

	assert.False(t, hub.Auth().Session().IsAuthenticated)
	assert.False(t, hub.Locale().RTL())
}

func TestNewRejectsBadOptions(t *testing.T) {
	_, err := New(WithBaseURL(""))
	assert.Error(t, err)

	_, err = New(WithHTTPClient(nil))
	assert.Error(t, err)

	_, err = New(WithStatsRefreshInterval(0))
	assert.Error(t, err)
}

func TestLoginLogoutRoundTrip(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","username":"alice","email":"alice@example.com","role":"user"}}`))
	})

	var sessions []types.Session
	hub := newTestClient(t, mux)
	hub.OnSessionChanged(func(s types.Session) { sessions = append(sessions, s) })

	ok, err := hub.Auth().Login(context.Background(), types.LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, hub.Auth().Session().IsAuthenticated)

	hub.Auth().Logout()
	assert.False(t, hub.Auth().Session().IsAuthenticated)

	require.Len(t, sessions, 2)
	assert.True(t, sessions[0].IsAuthenticated)
	assert.False(t, sessions[1].IsAuthenticated)
}

func TestSessionRestoredAcrossClients(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","username":"alice","email":"alice@example.com","role":"user"}}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	credsPath := filepath.Join(t.TempDir(), "credentials.json")

	first, err := New(WithBaseURL(srv.URL), WithCredentialsPath(credsPath))
	require.NoError(t, err)
	_, err = first.Auth().Login(context.Background(), types.LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)
	require.NoError(t, first.Close())

	// A second client over the same credentials file starts logged in.
	second, err := New(WithBaseURL(srv.URL), WithCredentialsPath(credsPath))
	require.NoError(t, err)
	defer second.Close()

	session := second.Auth().Session()
	assert.True(t, session.IsAuthenticated)
	assert.Equal(t, "tok-1", session.Token)
	require.NotNil(t, session.User)
	assert.Equal(t, "alice", session.User.Username)
}

func TestForcedLogoutOn401(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","username":"alice","email":"alice@example.com","role":"user"}}`))
	})
	mux.HandleFunc("GET /registrations", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token is not valid"}`))
	})

	hub := newTestClient(t, mux)
	_, err := hub.Auth().Login(context.Background(), types.LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	_, err = hub.Registrations().GetUserRegistrations(context.Background())
	require.Error(t, err)

	session := hub.Auth().Session()
	assert.False(t, session.IsAuthenticated, "expired session is cleared everywhere")
	assert.NotEmpty(t, session.Error)
}

func TestRegistrationHook(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/e1/register", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"id":"r1","event":"e1","user":"u1","status":"pending"}`))
	})

	var changed []types.Registration
	hub := newTestClient(t, mux)
	hub.OnRegistrationChanged(func(reg types.Registration) { changed = append(changed, reg) })

	result, err := hub.Registrations().RegisterForEvent(context.Background(), "e1")
	require.NoError(t, err)
	assert.False(t, result.Rejected())

	require.Len(t, changed, 1)
	assert.Equal(t, "r1", changed[0].ID)
	assert.Equal(t, types.StatusPending, changed[0].Status)
}

func TestSetLanguage(t *testing.T) {
	credsPath := filepath.Join(t.TempDir(), "credentials.json")
	hub, err := New(WithCredentialsPath(credsPath))
	require.NoError(t, err)

	hub.SetLanguage("ar")
	assert.True(t, hub.Locale().RTL())
	require.NoError(t, hub.Close())

	// The direction preference survives into the next client.
	next, err := New(WithCredentialsPath(credsPath))
	require.NoError(t, err)
	defer next.Close()
	assert.True(t, next.Locale().RTL())
}

func TestStatsRefreshRequiresSession(t *testing.T) {
	hub := newTestClient(t, http.NewServeMux())
	assert.Error(t, hub.StatsRefreshOn())
}

func TestStatsRefreshRestart(t *testing.T) {
	var refreshes atomic.Int64
	mux := http.NewServeMux()
	mux.HandleFunc("POST /auth/login", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"token":"tok-1","user":{"id":"u1","username":"alice","email":"alice@example.com","role":"admin"}}`))
	})
	mux.HandleFunc("GET /admin/stats", func(w http.ResponseWriter, r *http.Request) {
		refreshes.Add(1)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"registrations":{"total":1,"pending":1,"approved":0,"rejected":0}}`))
	})
	mux.HandleFunc("GET /admin/events/registration-stats", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{}`))
	})

	hub := newTestClient(t, mux, WithStatsRefreshInterval(5*time.Millisecond))
	_, err := hub.Auth().Login(context.Background(), types.LoginInput{Email: "alice@example.com", Password: "secret1"})
	require.NoError(t, err)

	// Stopping twice is harmless, and the loop can be started again after.
	require.NoError(t, hub.StatsRefreshOn())
	require.NoError(t, hub.StatsRefreshOff())
	require.NoError(t, hub.StatsRefreshOff())

	require.NoError(t, hub.StatsRefreshOn())
	assert.Eventually(t, func() bool { return refreshes.Load() > 0 },
		time.Second, 5*time.Millisecond, "restarted loop should keep refreshing")
	require.NoError(t, hub.StatsRefreshOff())
}
