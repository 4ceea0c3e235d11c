package api

import (
	"context"
	"net/url"

	"github.com/agentstation/eventhub/internal/transport"
	"github.com/agentstation/eventhub/pkg/errors"
	"github.com/agentstation/eventhub/pkg/types"
)

// Events binds the event endpoints.
type Events struct {
	t *transport.Client
}

// List fetches events, optionally narrowed by search criteria. Only
// non-empty criteria become query parameters.
func (e *Events) List(ctx context.Context, search *types.EventSearch) ([]types.Event, error) {
	path := "/events"
	if search != nil {
		if query := search.Values().Encode(); query != "" {
			path += "?" + query
		}
	}

	var events []types.Event
	if err := e.t.Get(ctx, path, &events); err != nil {
		return nil, err
	}
	return events, nil
}

// Get fetches one event. A success response with no payload is a domain
// not-found, not a transport problem.
func (e *Events) Get(ctx context.Context, id string) (*types.Event, error) {
	var event types.Event
	if err := e.t.Get(ctx, "/events/"+url.PathEscape(id), &event); err != nil {
		return nil, err
	}
	if event.ID == "" {
		return nil, errors.NewNotFoundError("event", id)
	}
	return &event, nil
}

// Create posts a new event and returns the server's copy.
func (e *Events) Create(ctx context.Context, in types.EventInput) (*types.Event, error) {
	var event types.Event
	if err := e.t.Post(ctx, "/events", in, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Update replaces an event's fields and returns the server's copy.
func (e *Events) Update(ctx context.Context, id string, in types.EventInput) (*types.Event, error) {
	var event types.Event
	if err := e.t.Put(ctx, "/events/"+url.PathEscape(id), in, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

// Delete removes an event.
func (e *Events) Delete(ctx context.Context, id string) error {
	return e.t.Delete(ctx, "/events/"+url.PathEscape(id), nil)
}

// Register requests a registration for the event and returns the pending
// registration the server created.
func (e *Events) Register(ctx context.Context, id string) (*types.Registration, error) {
	var reg types.Registration
	if err := e.t.Post(ctx, "/events/"+url.PathEscape(id)+"/register", nil, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}
