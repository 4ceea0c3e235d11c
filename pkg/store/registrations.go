package store

import (
	"context"
	"net/http"
	"sync"

	"github.com/agentstation/eventhub/internal/api"
	"github.com/agentstation/eventhub/pkg/errors"
	"github.com/agentstation/eventhub/pkg/types"
)

// Default error messages for registration operations.
const (
	msgRegisterFailed      = "Registration failed"
	msgCancelFailed        = "Failed to cancel registration"
	msgApproveFailed       = "Failed to approve registration"
	msgRejectFailed        = "Failed to reject registration"
	msgFetchRegsFailed     = "Failed to fetch registrations"
	msgFetchStatsFailed    = "Failed to fetch registration stats"
	msgFetchEventRegFailed = "Failed to fetch event registrations"
)

// RegisterResult is what RegisterForEvent hands back. A 400 from the
// register endpoint is a soft rejection: the server's wording lands in
// Message and no error is raised, so the UI can show "Event is full"
// without an exception handler.
type RegisterResult struct {
	Registration *types.Registration
	Message      string
}

// Rejected reports whether the server declined the registration.
func (r *RegisterResult) Rejected() bool {
	return r.Registration == nil
}

// Registrations is the registration store: the caller's own registrations,
// the admin-wide list, one event's subset, and the cached aggregates.
// Approving or rejecting patches the single matching admin entry in place;
// per-event subsets and stats are NOT refreshed automatically — the change
// hook exists so interested parties can do that themselves.
type Registrations struct {
	events   *api.Events
	regs     *api.Registrations
	admin    *api.Admin
	onChange func(types.Registration)
	flight   inflight

	mu         sync.RWMutex
	mine       []types.Registration
	adminRegs  []types.Registration
	eventRegs  []types.Registration
	eventRegID string // event the eventRegs slice belongs to
	stats      *types.Stats
	eventStats types.EventStats
	loading    bool
	err        string
}

// NewRegistrations creates the registration store. onChange, when non-nil,
// fires after every registration the server created or transitioned.
func NewRegistrations(events *api.Events, regs *api.Registrations, admin *api.Admin, onChange func(types.Registration)) *Registrations {
	return &Registrations{events: events, regs: regs, admin: admin, onChange: onChange}
}

// GetUserRegistrations fetches the caller's registrations.
func (s *Registrations) GetUserRegistrations(ctx context.Context) ([]types.Registration, error) {
	ticket := s.flight.begin("mine")
	s.setLoading(true)

	regs, err := s.regs.Mine(ctx)
	if !s.flight.current("mine", ticket) {
		return regs, err
	}
	if err != nil {
		s.setError(errors.UserMessage(err, msgFetchRegsFailed))
		return nil, err
	}

	s.mu.Lock()
	s.mine = regs
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return regs, nil
}

// GetAdminRegistrations fetches the admin-wide registration list.
func (s *Registrations) GetAdminRegistrations(ctx context.Context) ([]types.Registration, error) {
	ticket := s.flight.begin("admin")
	s.setLoading(true)

	regs, err := s.admin.Registrations(ctx)
	if !s.flight.current("admin", ticket) {
		return regs, err
	}
	if err != nil {
		s.setError(errors.UserMessage(err, msgFetchRegsFailed))
		return nil, err
	}

	s.mu.Lock()
	s.adminRegs = regs
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return regs, nil
}

// GetAdminStats fetches the global registration aggregate.
func (s *Registrations) GetAdminStats(ctx context.Context) (*types.Stats, error) {
	ticket := s.flight.begin("stats")
	s.setLoading(true)

	stats, err := s.admin.Stats(ctx)
	if !s.flight.current("stats", ticket) {
		return stats, err
	}
	if err != nil {
		s.setError(errors.UserMessage(err, msgFetchStatsFailed))
		return nil, err
	}

	s.mu.Lock()
	s.stats = stats
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return stats, nil
}

// GetEventRegistrations fetches the admin view of one event's
// registrations into its own slice, independent of the admin-wide list.
func (s *Registrations) GetEventRegistrations(ctx context.Context, eventID string) ([]types.Registration, error) {
	ticket := s.flight.begin("eventRegs")
	s.setLoading(true)

	regs, err := s.admin.EventRegistrations(ctx, eventID)
	if !s.flight.current("eventRegs", ticket) {
		return regs, err
	}
	if err != nil {
		s.setError(errors.UserMessage(err, msgFetchEventRegFailed))
		return nil, err
	}

	s.mu.Lock()
	s.eventRegs = regs
	s.eventRegID = eventID
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return regs, nil
}

// GetEventRegistrationStats fetches the per-event breakdown for all events.
func (s *Registrations) GetEventRegistrationStats(ctx context.Context) (types.EventStats, error) {
	ticket := s.flight.begin("eventStats")
	s.setLoading(true)

	stats, err := s.admin.EventStats(ctx)
	if !s.flight.current("eventStats", ticket) {
		return stats, err
	}
	if err != nil {
		s.setError(errors.UserMessage(err, msgFetchStatsFailed))
		return nil, err
	}

	s.mu.Lock()
	s.eventStats = stats
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return stats, nil
}

// RegisterForEvent requests a registration. Success appends the pending
// registration to the caller's list. A 400 is returned as data (see
// RegisterResult); any other failure is recorded in the store AND returned,
// so callers can run their own recovery.
func (s *Registrations) RegisterForEvent(ctx context.Context, eventID string) (*RegisterResult, error) {
	s.setLoading(true)

	reg, err := s.events.Register(ctx, eventID)
	if err != nil {
		var apiErr *errors.APIError
		if errors.As(err, &apiErr) && apiErr.StatusCode == http.StatusBadRequest {
			s.setLoading(false)
			return &RegisterResult{Message: apiErr.Message(msgRegisterFailed)}, nil
		}
		s.setError(errors.UserMessage(err, msgRegisterFailed))
		return nil, err
	}

	s.mu.Lock()
	s.mine = append(s.mine, *reg)
	s.loading = false
	s.err = ""
	s.mu.Unlock()

	s.notify(*reg)
	return &RegisterResult{Registration: reg}, nil
}

// CancelRegistration withdraws one of the caller's registrations and drops
// it from the cached list.
func (s *Registrations) CancelRegistration(ctx context.Context, id string) error {
	s.setLoading(true)
	if err := s.regs.Cancel(ctx, id); err != nil {
		s.setError(errors.UserMessage(err, msgCancelFailed))
		return err
	}

	s.mu.Lock()
	kept := s.mine[:0]
	for _, reg := range s.mine {
		if reg.ID != id {
			kept = append(kept, reg)
		}
	}
	s.mine = kept
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return nil
}

// ApproveRegistration approves a registration and patches the matching
// admin entry in place. The failure is recorded and also returned.
func (s *Registrations) ApproveRegistration(ctx context.Context, id string) (*types.Registration, error) {
	s.setLoading(true)
	reg, err := s.admin.Approve(ctx, id)
	if err != nil {
		s.setError(errors.UserMessage(err, msgApproveFailed))
		return nil, err
	}

	s.patchAdmin(*reg)
	s.notify(*reg)
	return reg, nil
}

// RejectRegistration rejects a registration with a reason and patches the
// matching admin entry in place.
func (s *Registrations) RejectRegistration(ctx context.Context, id, reason string) (*types.Registration, error) {
	in := types.RejectInput{Reason: reason}
	if err := in.Validate(); err != nil {
		s.setError(err.Error())
		return nil, errors.WrapValidation("reason", err)
	}

	s.setLoading(true)
	reg, err := s.admin.Reject(ctx, id, in)
	if err != nil {
		s.setError(errors.UserMessage(err, msgRejectFailed))
		return nil, err
	}

	s.patchAdmin(*reg)
	s.notify(*reg)
	return reg, nil
}

// GetUserRegistrationForEvent refreshes the caller's registrations and
// returns the one for eventID, or nil when none exists. The scan handles
// both the populated-object and bare-id event shapes.
func (s *Registrations) GetUserRegistrationForEvent(ctx context.Context, eventID string) (*types.Registration, error) {
	regs, err := s.GetUserRegistrations(ctx)
	if err != nil {
		return nil, err
	}
	for i := range regs {
		if regs[i].EventID() == eventID {
			reg := regs[i]
			return &reg, nil
		}
	}
	return nil, nil
}

// Clear drops the per-event subset and any recorded error.
func (s *Registrations) Clear() {
	s.mu.Lock()
	s.eventRegs = nil
	s.eventRegID = ""
	s.err = ""
	s.mu.Unlock()
}

// ClearErrors resets the recorded error.
func (s *Registrations) ClearErrors() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// Mine returns a copy of the caller's registrations.
func (s *Registrations) Mine() []types.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Registration(nil), s.mine...)
}

// AdminRegistrations returns a copy of the admin-wide list.
func (s *Registrations) AdminRegistrations() []types.Registration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Registration(nil), s.adminRegs...)
}

// EventRegistrations returns the cached per-event subset and the event it
// belongs to.
func (s *Registrations) EventRegistrations() ([]types.Registration, string) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Registration(nil), s.eventRegs...), s.eventRegID
}

// Stats returns the cached global aggregate, or nil before the first fetch.
func (s *Registrations) Stats() *types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.stats == nil {
		return nil
	}
	stats := *s.stats
	return &stats
}

// EventStats returns the cached per-event breakdown.
func (s *Registrations) EventStats() types.EventStats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.eventStats == nil {
		return nil
	}
	stats := make(types.EventStats, len(s.eventStats))
	for id, counts := range s.eventStats {
		stats[id] = counts
	}
	return stats
}

// Loading reports whether a request is in flight.
func (s *Registrations) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the message the UI should render, or empty.
func (s *Registrations) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// patchAdmin replaces the single admin entry matching reg's id. Every
// other entry is left untouched, so patches applied out of order still
// land on their own rows.
func (s *Registrations) patchAdmin(reg types.Registration) {
	s.mu.Lock()
	for i := range s.adminRegs {
		if s.adminRegs[i].ID == reg.ID {
			s.adminRegs[i] = reg
			break
		}
	}
	s.loading = false
	s.err = ""
	s.mu.Unlock()
}

func (s *Registrations) notify(reg types.Registration) {
	if s.onChange != nil {
		s.onChange(reg)
	}
}

func (s *Registrations) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Registrations) setError(msg string) {
	s.mu.Lock()
	s.loading = false
	s.err = msg
	s.mu.Unlock()
}
