// Package eventhub is a client for the EventHub event registration API.
// It bundles the session, event, and registration stores behind one facade,
// persists the session across processes, and exposes hooks for state
// changes the way a UI layer would consume them.
package eventhub

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/agentstation/eventhub/internal/api"
	"github.com/agentstation/eventhub/internal/credentials"
	"github.com/agentstation/eventhub/internal/transport"
	"github.com/agentstation/eventhub/pkg/constants"
	"github.com/agentstation/eventhub/pkg/errors"
	"github.com/agentstation/eventhub/pkg/i18n"
	"github.com/agentstation/eventhub/pkg/logging"
	"github.com/agentstation/eventhub/pkg/store"
	"github.com/agentstation/eventhub/pkg/types"
)

// EventHub manages EventHub client state with durable sessions and event
// hooks.
type EventHub interface {
	// Auth returns the session store.
	Auth() *store.Auth

	// Events returns the event store.
	Events() *store.Events

	// Registrations returns the registration store.
	Registrations() *store.Registrations

	// Locale returns the active display locale.
	Locale() *i18n.Locale

	// SetLanguage switches the display language and persists the layout
	// direction alongside the session.
	SetLanguage(lang string)

	// OnSessionChanged registers a callback for session transitions.
	OnSessionChanged(SessionHook)

	// OnRegistrationChanged registers a callback for registration changes.
	OnRegistrationChanged(RegistrationHook)

	// StatsRefreshOn begins the periodic admin stats refresh.
	StatsRefreshOn() error

	// StatsRefreshOff stops the periodic admin stats refresh.
	StatsRefreshOff() error

	// Close stops background work. The client must not be used after.
	Close() error
}

// client is the internal implementation of the EventHub interface.
type client struct {
	config        *config
	creds         *credentials.Store
	auth          *store.Auth
	events        *store.Events
	registrations *store.Registrations
	locale        *i18n.Locale

	refreshMu     sync.Mutex
	refreshTicker *time.Ticker
	stopCh        chan struct{}

	hooks *hooks
}

var _ EventHub = (*client)(nil)

// New creates a new EventHub client with the given options. A previously
// persisted session is restored immediately; call Auth().LoadUser to
// confirm it against the server.
func New(opts ...Option) (EventHub, error) {
	cfg := &config{
		baseURL:              constants.DefaultBaseURL,
		httpClient:           &http.Client{Timeout: constants.DefaultHTTPTimeout},
		statsRefreshInterval: time.Minute,
	}
	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, fmt.Errorf("applying options: %w", err)
		}
	}

	path := cfg.credentialsPath
	if path == "" {
		var err error
		if path, err = credentials.DefaultPath(); err != nil {
			return nil, err
		}
	}
	creds, err := credentials.NewStore(path)
	if err != nil {
		return nil, err
	}

	c := &client{
		config: cfg,
		creds:  creds,
		hooks:  newHooks(),
	}

	t := transport.New(cfg.baseURL, transport.TokenProviderFunc(creds.Token),
		transport.WithHTTPClient(cfg.httpClient),
		transport.WithUnauthorizedHandler(func() { c.auth.ForceLogout() }),
	)
	a := api.New(t)

	c.auth = store.NewAuth(a.Auth, creds, c.hooks.triggerSession)
	c.events = store.NewEvents(a.Events)
	c.registrations = store.NewRegistrations(a.Events, a.Registrations, a.Admin, c.hooks.triggerRegistration)

	// Approvals and rejections invalidate any cached dashboard aggregates;
	// re-fetch them in the background instead of serving stale counts.
	c.hooks.OnRegistrationChanged(func(types.Registration) {
		if c.registrations.Stats() != nil {
			go c.refreshStats()
		}
	})

	lang := cfg.language
	if lang == "" && creds.RTL() {
		lang = "ar"
	}
	c.locale = i18n.Match(lang)

	if cfg.statsRefreshEnabled {
		if err := c.StatsRefreshOn(); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Auth returns the session store.
func (c *client) Auth() *store.Auth {
	return c.auth
}

// Events returns the event store.
func (c *client) Events() *store.Events {
	return c.events
}

// Registrations returns the registration store.
func (c *client) Registrations() *store.Registrations {
	return c.registrations
}

// Locale returns the active display locale.
func (c *client) Locale() *i18n.Locale {
	return c.locale
}

// SetLanguage switches the display language and persists the layout
// direction so the next process starts in the same one.
func (c *client) SetLanguage(lang string) {
	c.locale = i18n.Match(lang)
	if err := c.creds.SetRTL(c.locale.RTL()); err != nil {
		logging.Warn().Err(err).Msg("Failed to persist layout direction")
	}
}

// OnSessionChanged registers a callback for session transitions.
func (c *client) OnSessionChanged(fn SessionHook) {
	c.hooks.OnSessionChanged(fn)
}

// OnRegistrationChanged registers a callback for registration changes.
func (c *client) OnRegistrationChanged(fn RegistrationHook) {
	c.hooks.OnRegistrationChanged(fn)
}

// StatsRefreshOn begins the periodic admin stats refresh, replacing any
// refresh loop already running. Failed refreshes are logged and retried on
// the next tick; dashboards keep the last good aggregate in the meantime.
func (c *client) StatsRefreshOn() error {
	if c.config.statsRefreshInterval <= 0 {
		return errors.New("refresh interval must be positive")
	}
	if !c.auth.Session().IsAuthenticated {
		return errors.ErrUnauthorized
	}

	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	c.stopRefreshLocked()

	ticker := time.NewTicker(c.config.statsRefreshInterval)
	stop := make(chan struct{})
	c.refreshTicker = ticker
	c.stopCh = stop
	go func() {
		for {
			select {
			case <-ticker.C:
				c.refreshStats()
			case <-stop:
				return
			}
		}
	}()
	return nil
}

// StatsRefreshOff stops the periodic admin stats refresh. It is a no-op
// when no refresh loop is running.
func (c *client) StatsRefreshOff() error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()
	c.stopRefreshLocked()
	return nil
}

// stopRefreshLocked tears down the current refresh loop. Callers hold
// refreshMu.
func (c *client) stopRefreshLocked() {
	if c.refreshTicker != nil {
		c.refreshTicker.Stop()
		c.refreshTicker = nil
	}
	if c.stopCh != nil {
		close(c.stopCh)
		c.stopCh = nil
	}
}

// Close stops background work.
func (c *client) Close() error {
	return c.StatsRefreshOff()
}

func (c *client) refreshStats() {
	ctx, cancel := context.WithTimeout(context.Background(), constants.StatsRefreshTimeout)
	defer cancel()

	if _, err := c.registrations.GetAdminStats(ctx); err != nil {
		logging.Debug().Err(err).Msg("Stats refresh failed")
		return
	}
	if _, err := c.registrations.GetEventRegistrationStats(ctx); err != nil {
		logging.Debug().Err(err).Msg("Event stats refresh failed")
	}
}
