package types

import "github.com/agentstation/utc"

// RegistrationStatus is the server-owned registration state. The client
// never transitions it locally beyond trusting the status a successful API
// response carries.
type RegistrationStatus string

// Registration statuses.
const (
	StatusPending  RegistrationStatus = "pending"
	StatusApproved RegistrationStatus = "approved"
	StatusRejected RegistrationStatus = "rejected"
)

// Valid reports whether the status is one the server can produce.
func (s RegistrationStatus) Valid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected:
		return true
	}
	return false
}

// Registration is a user's request to attend an event. Event and User are
// dual-shape references: populated objects from admin endpoints, bare ids
// elsewhere.
type Registration struct {
	ID         string             `json:"id"`
	Event      Ref[Event]         `json:"event"`
	User       Ref[User]          `json:"user"`
	Status     RegistrationStatus `json:"status"`
	Reason     string             `json:"reason,omitempty"`
	CreatedAt  utc.Time           `json:"createdAt,omitzero"`
	ApprovedAt *utc.Time          `json:"approvedAt,omitempty"`
	RejectedAt *utc.Time          `json:"rejectedAt,omitempty"`
}

// EventID returns the registered event's id regardless of wire shape.
func (r *Registration) EventID() string {
	return r.Event.ID()
}

// EventTitle returns the embedded event's title, or empty when the
// reference is a bare id. The snapshot may be stale relative to the event
// store; views render it anyway rather than joining across stores.
func (r *Registration) EventTitle() string {
	if event, ok := r.Event.Value(); ok {
		return event.Title
	}
	return ""
}

// Username returns the embedded user's name, or empty for a bare id.
func (r *Registration) Username() string {
	if user, ok := r.User.Value(); ok {
		return user.Username
	}
	return ""
}
