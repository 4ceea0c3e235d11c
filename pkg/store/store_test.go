package store

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventhub/internal/api"
	"github.com/agentstation/eventhub/internal/credentials"
	"github.com/agentstation/eventhub/internal/transport"
)

// newTestAPI spins up a test server behind a fresh transport and a
// throwaway credentials file.
func newTestAPI(t *testing.T, handler http.Handler) (*api.API, *credentials.Store) {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	creds, err := credentials.NewStore(filepath.Join(t.TempDir(), "credentials.json"))
	require.NoError(t, err)

	return api.New(transport.New(srv.URL, transport.TokenProviderFunc(creds.Token))), creds
}

// unreachable fails the test if any request arrives. Used where an
// operation must be rejected before the network.
func unreachable(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("unexpected request: %s %s", r.Method, r.URL.Path)
		w.WriteHeader(http.StatusTeapot)
	})
}

func writeJSON(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write([]byte(body))
}
