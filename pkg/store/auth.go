package store

import (
	"context"
	"sync"
	"time"

	"github.com/agentstation/eventhub/internal/api"
	"github.com/agentstation/eventhub/internal/credentials"
	"github.com/agentstation/eventhub/pkg/errors"
	"github.com/agentstation/eventhub/pkg/logging"
	"github.com/agentstation/eventhub/pkg/types"
)

// Default error messages for auth operations. The server's own wording
// takes precedence whenever it supplied any.
const (
	msgInvalidCredentials = "Invalid credentials"
	msgRegistrationFailed = "Registration failed"
	msgSessionExpired     = "Your session has expired. Please log in again."
)

// Auth is the session store. It bootstraps from the durable credentials
// file, so a previously logged-in user starts authenticated with the cached
// user snapshot until LoadUser confirms or clears the session.
//
// All failures are soft: the session's Error field carries the message the
// UI renders, and the returned error exists for callers that want to branch
// programmatically. Only Register's failure is meant to propagate.
type Auth struct {
	api      *api.Auth
	creds    *credentials.Store
	onChange func(types.Session)

	mu      sync.RWMutex
	session types.Session
	// confirmed is true once the session was established in-process, by a
	// login, a signup, or a session endpoint round trip. A session seeded
	// from the credentials file starts unconfirmed, so the first LoadUser
	// still runs the expiry check and asks the server.
	confirmed bool
}

// NewAuth creates the session store. onChange, when non-nil, fires after
// every session transition with a snapshot of the new state.
func NewAuth(a *api.Auth, creds *credentials.Store, onChange func(types.Session)) *Auth {
	token := creds.Token()
	return &Auth{
		api:      a,
		creds:    creds,
		onChange: onChange,
		session: types.Session{
			Token:           token,
			IsAuthenticated: token != "",
			User:            creds.User(),
		},
	}
}

// Session returns a snapshot of the current session state.
func (s *Auth) Session() types.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.session
}

// LoadUser restores the session from the stored token. With no token it
// settles into the anonymous state. With a locally expired token it clears
// the stored credentials without a network round trip. Otherwise it asks
// the session endpoint; success refreshes the cached user snapshot, failure
// clears all stored credentials. Safe to call repeatedly: once a session
// has been confirmed in-process it is returned as-is. A session restored
// from disk is never trusted outright, even when it carries a cached user.
func (s *Auth) LoadUser(ctx context.Context) (*types.User, error) {
	if s.creds.Token() == "" {
		s.transition(types.Session{})
		return nil, nil
	}

	s.mu.RLock()
	loaded := s.confirmed && s.session.IsAuthenticated && s.session.User != nil && !s.session.Loading
	user := s.session.User
	s.mu.RUnlock()
	if loaded {
		return user, nil
	}

	if s.creds.TokenExpired(time.Now()) {
		logging.Debug().Msg("Stored token expired, clearing session")
		s.clearCredentials()
		s.transition(types.Session{Error: msgSessionExpired})
		return nil, nil
	}

	s.setLoading(true)
	me, err := s.api.Me(ctx)
	if err != nil {
		s.clearCredentials()
		s.transition(types.Session{Error: errors.UserMessage(err, msgSessionExpired)})
		return nil, err
	}

	if err := s.creds.SetUser(me); err != nil {
		logging.Warn().Err(err).Msg("Failed to cache user snapshot")
	}
	s.confirm()
	s.transition(types.Session{
		Token:           s.creds.Token(),
		IsAuthenticated: true,
		User:            me,
	})
	return me, nil
}

// Login exchanges credentials for a session. The boolean lets callers
// distinguish "rejected" from "still submitting" without inspecting the
// session state. Failure clears any stale stored credentials.
func (s *Auth) Login(ctx context.Context, in types.LoginInput) (bool, error) {
	if err := in.Validate(); err != nil {
		s.setError(err.Error())
		return false, errors.WrapValidation("login", err)
	}

	s.setLoading(true)
	session, err := s.api.Login(ctx, in)
	if err != nil {
		s.clearCredentials()
		s.transition(types.Session{Error: errors.UserMessage(err, msgInvalidCredentials)})
		return false, err
	}

	s.storeSession(session)
	return true, nil
}

// Register creates an account and logs straight into it. Unlike the other
// auth operations the failure propagates, so callers can run their own
// recovery on top of the recorded error state.
func (s *Auth) Register(ctx context.Context, in types.SignupInput) error {
	if err := in.Validate(); err != nil {
		s.setError(err.Error())
		return errors.WrapValidation("signup", err)
	}

	s.setLoading(true)
	session, err := s.api.Signup(ctx, in)
	if err != nil {
		s.transition(types.Session{Error: errors.UserMessage(err, msgRegistrationFailed)})
		return err
	}

	s.storeSession(session)
	return nil
}

// Logout clears the durable credentials and resets the session. It is
// always effective locally; no server call has to succeed first.
func (s *Auth) Logout() {
	s.clearCredentials()
	s.transition(types.Session{})
}

// ForceLogout is the transport layer's 401 handler: the session is gone
// server-side, so clear it everywhere and tell the UI why.
func (s *Auth) ForceLogout() {
	s.clearCredentials()
	s.transition(types.Session{Error: msgSessionExpired})
}

// ClearErrors resets the session error without otherwise changing state.
func (s *Auth) ClearErrors() {
	s.mu.Lock()
	s.session.Error = ""
	s.mu.Unlock()
}

func (s *Auth) storeSession(session *api.Session) {
	user := session.User
	if err := s.creds.SetSession(session.Token, &user); err != nil {
		logging.Warn().Err(err).Msg("Failed to persist session")
	}
	s.confirm()
	s.transition(types.Session{
		Token:           session.Token,
		IsAuthenticated: true,
		User:            &user,
	})
}

func (s *Auth) confirm() {
	s.mu.Lock()
	s.confirmed = true
	s.mu.Unlock()
}

func (s *Auth) clearCredentials() {
	s.mu.Lock()
	s.confirmed = false
	s.mu.Unlock()
	if err := s.creds.Clear(); err != nil {
		logging.Warn().Err(err).Msg("Failed to clear stored credentials")
	}
}

func (s *Auth) setLoading(loading bool) {
	s.mu.Lock()
	s.session.Loading = loading
	s.mu.Unlock()
}

func (s *Auth) setError(msg string) {
	s.mu.Lock()
	s.session.Loading = false
	s.session.Error = msg
	s.mu.Unlock()
}

// transition replaces the session state and notifies the change hook.
func (s *Auth) transition(next types.Session) {
	s.mu.Lock()
	s.session = next
	snapshot := s.session
	s.mu.Unlock()

	if s.onChange != nil {
		s.onChange(snapshot)
	}
}
