package transport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventhub/pkg/errors"
)

type staticToken string

func (s staticToken) Token() string { return string(s) }

func TestBearerTokenAttached(t *testing.T) {
	var gotAuth, gotRequestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		gotRequestID = r.Header.Get("X-Request-ID")
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok-1"))
	require.NoError(t, client.Get(context.Background(), "/events", nil))

	assert.Equal(t, "Bearer tok-1", gotAuth)
	assert.NotEmpty(t, gotRequestID)
}

func TestNoBearerWhenAnonymous(t *testing.T) {
	var gotAuth string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := New(server.URL, staticToken(""))
	require.NoError(t, client.Get(context.Background(), "/events", nil))
	assert.Empty(t, gotAuth)
}

func TestNetworkFailureNormalized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	server.Close() // refuse all connections

	client := New(server.URL, staticToken(""))
	err := client.Get(context.Background(), "/events", nil)

	require.Error(t, err)
	assert.True(t, errors.IsNetwork(err))
	assert.Equal(t, errors.NetworkMessage, errors.UserMessage(err, "fallback"))
}

func TestServerErrorCarriesMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte(`{"error":"Event is full"}`)) //nolint:errcheck
	}))
	defer server.Close()

	client := New(server.URL, staticToken("tok"))
	err := client.Post(context.Background(), "/events/ev-1/register", nil, nil)

	var apiErr *errors.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
	assert.Equal(t, "Event is full", apiErr.ServerMessage)
}

func TestUnauthorizedForcesLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"Token is not valid"}`)) //nolint:errcheck
	}))
	defer server.Close()

	tests := []struct {
		name        string
		call        func(c *Client) error
		wantsLogout bool
	}{
		{
			name:        "authenticated read forces logout",
			call:        func(c *Client) error { return c.Get(context.Background(), "/registrations", nil) },
			wantsLogout: true,
		},
		{
			name:        "admin mutation forces logout",
			call:        func(c *Client) error { return c.Put(context.Background(), "/admin/registrations/r1/approve", nil, nil) },
			wantsLogout: true,
		},
		{
			name:        "login failure does not force logout",
			call:        func(c *Client) error { return c.Post(context.Background(), "/auth/login", nil, nil) },
			wantsLogout: false,
		},
		{
			name:        "signup failure does not force logout",
			call:        func(c *Client) error { return c.Post(context.Background(), "/auth/signup", nil, nil) },
			wantsLogout: false,
		},
		{
			name:        "public event listing does not force logout",
			call:        func(c *Client) error { return c.Get(context.Background(), "/events", nil) },
			wantsLogout: false,
		},
		{
			name:        "public event detail does not force logout",
			call:        func(c *Client) error { return c.Get(context.Background(), "/events/ev-1", nil) },
			wantsLogout: false,
		},
		{
			name:        "event registration is not a public read",
			call:        func(c *Client) error { return c.Post(context.Background(), "/events/ev-1/register", nil, nil) },
			wantsLogout: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loggedOut := false
			client := New(server.URL, staticToken("stale"),
				WithUnauthorizedHandler(func() { loggedOut = true }))

			err := tt.call(client)
			require.Error(t, err)
			assert.Equal(t, tt.wantsLogout, loggedOut)
			if tt.wantsLogout {
				assert.ErrorIs(t, err, errors.ErrSessionExpired)
			}
		})
	}
}

func TestDecodeResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"id":"ev-1","title":"GopherCon"}`)) //nolint:errcheck
	}))
	defer server.Close()

	var got struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	}
	client := New(server.URL, staticToken(""))
	require.NoError(t, client.Get(context.Background(), "/events/ev-1", &got))
	assert.Equal(t, "GopherCon", got.Title)
}
