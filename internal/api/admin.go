package api

import (
	"context"
	"net/url"

	"github.com/agentstation/eventhub/internal/transport"
	"github.com/agentstation/eventhub/pkg/types"
)

// Admin binds the admin-only endpoints.
type Admin struct {
	t *transport.Client
}

// Registrations fetches every registration across all events.
func (a *Admin) Registrations(ctx context.Context) ([]types.Registration, error) {
	var regs []types.Registration
	if err := a.t.Get(ctx, "/admin/registrations", &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// Approve marks a registration approved and returns the updated entry.
func (a *Admin) Approve(ctx context.Context, id string) (*types.Registration, error) {
	var reg types.Registration
	if err := a.t.Put(ctx, "/admin/registrations/"+url.PathEscape(id)+"/approve", nil, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Reject marks a registration rejected with a reason and returns the
// updated entry.
func (a *Admin) Reject(ctx context.Context, id string, in types.RejectInput) (*types.Registration, error) {
	var reg types.Registration
	if err := a.t.Put(ctx, "/admin/registrations/"+url.PathEscape(id)+"/reject", in, &reg); err != nil {
		return nil, err
	}
	return &reg, nil
}

// Stats fetches the global registration aggregate.
func (a *Admin) Stats(ctx context.Context) (*types.Stats, error) {
	var stats types.Stats
	if err := a.t.Get(ctx, "/admin/stats", &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

// EventRegistrations fetches one event's registrations.
func (a *Admin) EventRegistrations(ctx context.Context, eventID string) ([]types.Registration, error) {
	var regs []types.Registration
	if err := a.t.Get(ctx, "/admin/events/"+url.PathEscape(eventID)+"/registrations", &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// EventStats fetches the per-event registration breakdown for all events.
func (a *Admin) EventStats(ctx context.Context) (types.EventStats, error) {
	var stats types.EventStats
	if err := a.t.Get(ctx, "/admin/events/registration-stats", &stats); err != nil {
		return nil, err
	}
	return stats, nil
}
