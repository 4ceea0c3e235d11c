package store

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/eventhub/pkg/errors"
	"github.com/agentstation/eventhub/pkg/types"
)

const adminRegsJSON = `[
	{"id":"r1","event":{"id":"e1","title":"Go Meetup"},"user":{"id":"u1","username":"alice"},"status":"pending"},
	{"id":"r2","event":{"id":"e2","title":"Jazz Night"},"user":{"id":"u2","username":"bob"},"status":"pending"},
	{"id":"r3","event":"e1","user":"u3","status":"pending"}
]`

func newRegStore(t *testing.T, mux http.Handler, onChange func(types.Registration)) *Registrations {
	t.Helper()
	a, _ := newTestAPI(t, mux)
	return NewRegistrations(a.Events, a.Registrations, a.Admin, onChange)
}

func TestRegistrationsRegisterForEvent(t *testing.T) {
	var changed []types.Registration
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/e1/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusCreated, `{"id":"r9","event":"e1","user":"u1","status":"pending"}`)
	})
	store := newRegStore(t, mux, func(reg types.Registration) { changed = append(changed, reg) })

	result, err := store.RegisterForEvent(context.Background(), "e1")
	require.NoError(t, err)
	require.NotNil(t, result.Registration)
	assert.False(t, result.Rejected())
	assert.Equal(t, types.StatusPending, result.Registration.Status)

	mine := store.Mine()
	require.Len(t, mine, 1)
	assert.Equal(t, "r9", mine[0].ID)

	require.Len(t, changed, 1)
	assert.Equal(t, "r9", changed[0].ID)
}

func TestRegistrationsRegisterForEventDeclined(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/e2/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusBadRequest, `{"error":"Event is full"}`)
	})
	store := newRegStore(t, mux, nil)

	result, err := store.RegisterForEvent(context.Background(), "e2")
	require.NoError(t, err, "a declined registration is data, not an error")
	assert.True(t, result.Rejected())
	assert.Equal(t, "Event is full", result.Message)
	assert.Empty(t, store.Mine())
	assert.Empty(t, store.Error())
}

func TestRegistrationsRegisterForEventServerError(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /events/e1/register", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusInternalServerError, `{"error":"boom"}`)
	})
	store := newRegStore(t, mux, nil)

	_, err := store.RegisterForEvent(context.Background(), "e1")
	require.Error(t, err)
	assert.True(t, errors.IsServerUnavailable(err))
	assert.NotEmpty(t, store.Error())
}

func TestRegistrationsCancel(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /registrations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"r1","event":"e1","user":"u1","status":"pending"},{"id":"r2","event":"e2","user":"u1","status":"approved"}]`)
	})
	mux.HandleFunc("DELETE /registrations/r1", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"message":"Registration cancelled"}`)
	})
	store := newRegStore(t, mux, nil)

	_, err := store.GetUserRegistrations(context.Background())
	require.NoError(t, err)
	require.Len(t, store.Mine(), 2)

	require.NoError(t, store.CancelRegistration(context.Background(), "r1"))
	mine := store.Mine()
	require.Len(t, mine, 1)
	assert.Equal(t, "r2", mine[0].ID)
}

func TestRegistrationsApprovePatchesByID(t *testing.T) {
	var changed []types.Registration
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/registrations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, adminRegsJSON)
	})
	mux.HandleFunc("PUT /admin/registrations/r2/approve", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"r2","event":{"id":"e2","title":"Jazz Night"},"user":{"id":"u2","username":"bob"},"status":"approved"}`)
	})
	mux.HandleFunc("PUT /admin/registrations/r1/reject", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"id":"r1","event":{"id":"e1","title":"Go Meetup"},"user":{"id":"u1","username":"alice"},"status":"rejected","reason":"Duplicate entry"}`)
	})
	store := newRegStore(t, mux, func(reg types.Registration) { changed = append(changed, reg) })

	_, err := store.GetAdminRegistrations(context.Background())
	require.NoError(t, err)

	// Approve the middle entry, then reject the first: each patch lands
	// only on its own row regardless of order.
	reg, err := store.ApproveRegistration(context.Background(), "r2")
	require.NoError(t, err)
	assert.Equal(t, types.StatusApproved, reg.Status)

	_, err = store.RejectRegistration(context.Background(), "r1", "Duplicate entry")
	require.NoError(t, err)

	admin := store.AdminRegistrations()
	require.Len(t, admin, 3)
	assert.Equal(t, types.StatusRejected, admin[0].Status)
	assert.Equal(t, "Duplicate entry", admin[0].Reason)
	assert.Equal(t, types.StatusApproved, admin[1].Status)
	assert.Equal(t, types.StatusPending, admin[2].Status, "untouched rows stay pending")

	require.Len(t, changed, 2)
	assert.Equal(t, "r2", changed[0].ID)
	assert.Equal(t, "r1", changed[1].ID)
}

func TestRegistrationsApproveFailure(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("PUT /admin/registrations/r1/approve", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusForbidden, `{"error":"Not authorized as admin"}`)
	})
	store := newRegStore(t, mux, nil)

	_, err := store.ApproveRegistration(context.Background(), "r1")
	require.Error(t, err)
	assert.Equal(t, "Not authorized as admin", store.Error())
}

func TestRegistrationsRejectValidation(t *testing.T) {
	store := newRegStore(t, unreachable(t), nil)

	_, err := store.RejectRegistration(context.Background(), "r1", "")
	require.Error(t, err)
	assert.True(t, errors.IsValidation(err))
}

func TestRegistrationsForEvent(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /registrations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[
			{"id":"r1","event":{"id":"e1","title":"Go Meetup"},"user":"u1","status":"approved"},
			{"id":"r2","event":"e2","user":"u1","status":"pending"}
		]`)
	})
	store := newRegStore(t, mux, nil)

	// Populated event object.
	reg, err := store.GetUserRegistrationForEvent(context.Background(), "e1")
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Equal(t, "r1", reg.ID)

	// Bare id reference.
	reg, err = store.GetUserRegistrationForEvent(context.Background(), "e2")
	require.NoError(t, err)
	require.NotNil(t, reg)
	assert.Equal(t, "r2", reg.ID)

	// No registration at all.
	reg, err = store.GetUserRegistrationForEvent(context.Background(), "e9")
	require.NoError(t, err)
	assert.Nil(t, reg)
}

func TestRegistrationsStats(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"registrations":{"total":10,"pending":4,"approved":5,"rejected":1}}`)
	})
	mux.HandleFunc("GET /admin/events/registration-stats", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `{"e1":{"total":6,"pending":2,"approved":3,"rejected":1},"e2":{"total":4,"pending":2,"approved":2,"rejected":0}}`)
	})
	store := newRegStore(t, mux, nil)

	stats, err := store.GetAdminStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, stats.Registrations.Total)
	assert.Equal(t, 4, stats.Registrations.Pending)
	require.NotNil(t, store.Stats())

	eventStats, err := store.GetEventRegistrationStats(context.Background())
	require.NoError(t, err)
	require.Len(t, eventStats, 2)
	assert.Equal(t, 3, eventStats["e1"].Approved)
}

func TestRegistrationsEventSubset(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /admin/events/e1/registrations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, `[{"id":"r1","event":"e1","user":{"id":"u1","username":"alice"},"status":"pending"}]`)
	})
	store := newRegStore(t, mux, nil)

	regs, err := store.GetEventRegistrations(context.Background(), "e1")
	require.NoError(t, err)
	require.Len(t, regs, 1)

	cached, eventID := store.EventRegistrations()
	assert.Len(t, cached, 1)
	assert.Equal(t, "e1", eventID)

	store.Clear()
	cached, eventID = store.EventRegistrations()
	assert.Empty(t, cached)
	assert.Empty(t, eventID)
}
