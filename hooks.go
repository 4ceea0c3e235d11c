package eventhub

import (
	"sync"

	"github.com/agentstation/eventhub/pkg/types"
)

// Hook function types for client events.
type (
	// SessionHook is called after every session transition: login, logout,
	// forced logout, and session restore.
	SessionHook func(session types.Session)

	// RegistrationHook is called after the server creates or transitions a
	// registration: a new request, an approval, or a rejection.
	RegistrationHook func(registration types.Registration)
)

// hooks manages event callbacks for client state changes.
type hooks struct {
	mu             sync.RWMutex
	onSession      []SessionHook
	onRegistration []RegistrationHook
}

func newHooks() *hooks {
	return &hooks{}
}

// OnSessionChanged registers a callback for session transitions.
func (h *hooks) OnSessionChanged(fn SessionHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onSession = append(h.onSession, fn)
}

// OnRegistrationChanged registers a callback for registration changes.
func (h *hooks) OnRegistrationChanged(fn RegistrationHook) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.onRegistration = append(h.onRegistration, fn)
}

func (h *hooks) triggerSession(session types.Session) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onSession {
		hook(session)
	}
}

func (h *hooks) triggerRegistration(registration types.Registration) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, hook := range h.onRegistration {
		hook(registration)
	}
}
