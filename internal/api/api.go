// Package api provides typed bindings for the EventHub REST endpoints.
// Each resource gets its own binding over the shared transport; the stores
// sit on top of these and own all client-side state.
package api

import "github.com/agentstation/eventhub/internal/transport"

// API bundles the per-resource endpoint bindings.
type API struct {
	Auth          *Auth
	Events        *Events
	Registrations *Registrations
	Admin         *Admin
}

// New creates bindings for every resource over the shared transport.
func New(t *transport.Client) *API {
	return &API{
		Auth:          &Auth{t: t},
		Events:        &Events{t: t},
		Registrations: &Registrations{t: t},
		Admin:         &Admin{t: t},
	}
}
