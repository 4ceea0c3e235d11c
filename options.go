package eventhub

import (
	"net/http"
	"time"

	"github.com/agentstation/eventhub/pkg/errors"
)

// Option is a function that configures an EventHub instance.
type Option func(*config) error

// config holds the assembled client configuration.
type config struct {
	baseURL              string
	httpClient           *http.Client
	credentialsPath      string
	language             string
	statsRefreshEnabled  bool
	statsRefreshInterval time.Duration
}

// WithBaseURL points the client at an API server other than the default
// local one.
func WithBaseURL(url string) Option {
	return func(c *config) error {
		if url == "" {
			return errors.New("base URL must not be empty")
		}
		c.baseURL = url
		return nil
	}
}

// WithHTTPClient supplies a custom HTTP client, for proxies or tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *config) error {
		if hc == nil {
			return errors.New("http client must not be nil")
		}
		c.httpClient = hc
		return nil
	}
}

// WithCredentialsPath overrides where the session file lives. The default
// is credentials.json under the per-user config directory.
func WithCredentialsPath(path string) Option {
	return func(c *config) error {
		c.credentialsPath = path
		return nil
	}
}

// WithLanguage fixes the display language instead of restoring the
// persisted preference.
func WithLanguage(lang string) Option {
	return func(c *config) error {
		c.language = lang
		return nil
	}
}

// WithStatsRefresh configures whether the admin stats refresh loop starts
// automatically.
func WithStatsRefresh(enabled bool) Option {
	return func(c *config) error {
		c.statsRefreshEnabled = enabled
		return nil
	}
}

// WithStatsRefreshInterval configures how often the stats refresh loop
// re-fetches the dashboard aggregates.
func WithStatsRefreshInterval(interval time.Duration) Option {
	return func(c *config) error {
		if interval <= 0 {
			return errors.New("refresh interval must be positive")
		}
		c.statsRefreshInterval = interval
		return nil
	}
}
