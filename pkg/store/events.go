package store

import (
	"context"
	"regexp"
	"sync"

	"github.com/agentstation/eventhub/internal/api"
	"github.com/agentstation/eventhub/pkg/errors"
	"github.com/agentstation/eventhub/pkg/types"
)

// Default error messages for event operations.
const (
	msgNoSearchCriteria  = "Please provide at least one search criteria"
	msgNoSearchResults   = "No events found matching your search criteria"
	msgEventNotFound     = "Event not found"
	msgFetchEventsFailed = "Failed to fetch events"
	msgFetchEventFailed  = "Failed to fetch event details"
	msgCreateEventFailed = "Failed to create event"
	msgUpdateEventFailed = "Failed to update event"
	msgDeleteEventFailed = "Failed to delete event"
)

// Events is the event store: the fetched list, a single current event, and
// an optional client-side filtered subset. Fetch failures clear the list
// rather than keep stale data; the brief empty flash is the accepted cost.
type Events struct {
	api    *api.Events
	flight inflight

	mu       sync.RWMutex
	events   []types.Event
	filter   *regexp.Regexp // non-nil while a client-side filter is active
	filtered []types.Event  // derived from events whenever either changes
	current  *types.Event
	loading  bool
	err      string
}

// NewEvents creates the event store.
func NewEvents(a *api.Events) *Events {
	return &Events{api: a}
}

// GetEvents fetches the event list, optionally narrowed by search
// criteria, and replaces the store's list with the response. On failure
// the list is cleared so the UI never renders data the server no longer
// vouches for.
func (s *Events) GetEvents(ctx context.Context, search *types.EventSearch) ([]types.Event, error) {
	ticket := s.flight.begin("list")
	s.setLoading(true)

	events, err := s.api.List(ctx, search)
	if !s.flight.current("list", ticket) {
		return events, err
	}

	if err != nil {
		s.mu.Lock()
		s.events = nil
		s.refilter()
		s.loading = false
		s.err = errors.UserMessage(err, msgFetchEventsFailed)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.events = events
	s.refilter()
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return events, nil
}

// SearchEvents validates that at least one criterion is present before
// delegating to GetEvents. A search that matches nothing keeps its valid,
// empty result list and overlays a "no results" message on top: error and
// data coexist deliberately.
func (s *Events) SearchEvents(ctx context.Context, search types.EventSearch) ([]types.Event, error) {
	if search.IsEmpty() {
		s.mu.Lock()
		s.err = msgNoSearchCriteria
		s.mu.Unlock()
		return nil, errors.ErrNoSearchCriteria
	}

	events, err := s.GetEvents(ctx, &search)
	if err != nil {
		return nil, err
	}

	if len(events) == 0 {
		s.mu.Lock()
		s.err = msgNoSearchResults
		s.mu.Unlock()
		return events, errors.ErrNoResults
	}
	return events, nil
}

// GetEvent fetches a single event into the current slot. A response with
// no event is a domain error, not a transport one.
func (s *Events) GetEvent(ctx context.Context, id string) (*types.Event, error) {
	ticket := s.flight.begin("get")
	s.setLoading(true)

	event, err := s.api.Get(ctx, id)
	if !s.flight.current("get", ticket) {
		return event, err
	}

	if err != nil {
		fallback := msgFetchEventFailed
		if errors.IsNotFound(err) {
			fallback = msgEventNotFound
		}
		s.mu.Lock()
		s.current = nil
		s.loading = false
		s.err = errors.UserMessage(err, fallback)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.current = event
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return event, nil
}

// AddEvent creates an event and prepends the server's copy to the list.
// No full re-fetch: the single response is trusted.
func (s *Events) AddEvent(ctx context.Context, in types.EventInput) (*types.Event, error) {
	if err := in.Validate(); err != nil {
		s.setError(err.Error())
		return nil, errors.WrapValidation("event", err)
	}

	s.setLoading(true)
	event, err := s.api.Create(ctx, in)
	if err != nil {
		s.setError(errors.UserMessage(err, msgCreateEventFailed))
		return nil, err
	}

	s.mu.Lock()
	s.events = append([]types.Event{*event}, s.events...)
	s.refilter()
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return event, nil
}

// UpdateEvent replaces an event and reconciles the cached copy by id.
func (s *Events) UpdateEvent(ctx context.Context, id string, in types.EventInput) (*types.Event, error) {
	if err := in.Validate(); err != nil {
		s.setError(err.Error())
		return nil, errors.WrapValidation("event", err)
	}

	s.setLoading(true)
	event, err := s.api.Update(ctx, id, in)
	if err != nil {
		s.setError(errors.UserMessage(err, msgUpdateEventFailed))
		return nil, err
	}

	s.mu.Lock()
	for i := range s.events {
		if s.events[i].ID == id {
			s.events[i] = *event
			break
		}
	}
	if s.current != nil && s.current.ID == id {
		s.current = event
	}
	s.refilter()
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return event, nil
}

// DeleteEvent removes an event and drops it from the cached list.
func (s *Events) DeleteEvent(ctx context.Context, id string) error {
	s.setLoading(true)
	if err := s.api.Delete(ctx, id); err != nil {
		s.setError(errors.UserMessage(err, msgDeleteEventFailed))
		return err
	}

	s.mu.Lock()
	kept := s.events[:0]
	for _, event := range s.events {
		if event.ID != id {
			kept = append(kept, event)
		}
	}
	s.events = kept
	if s.current != nil && s.current.ID == id {
		s.current = nil
	}
	s.refilter()
	s.loading = false
	s.err = ""
	s.mu.Unlock()
	return nil
}

// Filter narrows the already-loaded list locally: a case-insensitive match
// against title or description. The filter stays active across list
// mutations, so the subset tracks adds, updates, and deletes until
// ClearFilter. Text that is not a valid pattern is matched literally.
func (s *Events) Filter(text string) []types.Event {
	pattern, err := regexp.Compile("(?i)" + text)
	if err != nil {
		pattern = regexp.MustCompile("(?i)" + regexp.QuoteMeta(text))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.filter = pattern
	s.refilter()
	return append([]types.Event(nil), s.filtered...)
}

// ClearFilter drops the active filter and its subset.
func (s *Events) ClearFilter() {
	s.mu.Lock()
	s.filter = nil
	s.filtered = nil
	s.mu.Unlock()
}

// refilter re-derives the filtered subset from the current list. Callers
// hold the write lock.
func (s *Events) refilter() {
	if s.filter == nil {
		s.filtered = nil
		return
	}
	filtered := make([]types.Event, 0, len(s.events))
	for _, event := range s.events {
		if s.filter.MatchString(event.Title) || s.filter.MatchString(event.Description) {
			filtered = append(filtered, event)
		}
	}
	s.filtered = filtered
}

// ClearEvent drops the current event.
func (s *Events) ClearEvent() {
	s.mu.Lock()
	s.current = nil
	s.mu.Unlock()
}

// ClearErrors resets the recorded error.
func (s *Events) ClearErrors() {
	s.mu.Lock()
	s.err = ""
	s.mu.Unlock()
}

// Events returns a copy of the full event list.
func (s *Events) Events() []types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]types.Event(nil), s.events...)
}

// Visible returns the filtered subset when a filter is active, otherwise
// the full list.
func (s *Events) Visible() []types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.filtered != nil {
		return append([]types.Event(nil), s.filtered...)
	}
	return append([]types.Event(nil), s.events...)
}

// Current returns a copy of the current event, or nil.
func (s *Events) Current() *types.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.current == nil {
		return nil
	}
	event := *s.current
	return &event
}

// Loading reports whether a request is in flight.
func (s *Events) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// Error returns the message the UI should render, or empty.
func (s *Events) Error() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

func (s *Events) setLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	s.mu.Unlock()
}

func (s *Events) setError(msg string) {
	s.mu.Lock()
	s.loading = false
	s.err = msg
	s.mu.Unlock()
}
