package api

import (
	"context"
	"net/url"

	"github.com/agentstation/eventhub/internal/transport"
	"github.com/agentstation/eventhub/pkg/types"
)

// Registrations binds the caller's own registration endpoints.
type Registrations struct {
	t *transport.Client
}

// Mine fetches the caller's registrations.
func (r *Registrations) Mine(ctx context.Context) ([]types.Registration, error) {
	var regs []types.Registration
	if err := r.t.Get(ctx, "/registrations", &regs); err != nil {
		return nil, err
	}
	return regs, nil
}

// Cancel withdraws one of the caller's registrations.
func (r *Registrations) Cancel(ctx context.Context, id string) error {
	return r.t.Delete(ctx, "/registrations/"+url.PathEscape(id), nil)
}
