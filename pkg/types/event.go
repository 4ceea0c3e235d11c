package types

import (
	"net/url"
	"strings"

	"github.com/agentstation/utc"
)

// Event is a published event as the API returns it. Capacity accounting is
// server-owned: the client never recomputes availableSpots, it only renders
// whatever the last fetch returned.
type Event struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Date           utc.Time `json:"date"`
	Location       string   `json:"location"`
	Price          float64  `json:"price"`
	Category       string   `json:"category"`
	Capacity       int      `json:"capacity"`
	AvailableSpots int      `json:"availableSpots"`
	CreatedAt      utc.Time `json:"createdAt,omitzero"`
	UpdatedAt      utc.Time `json:"updatedAt,omitzero"`
}

// RegisteredCount returns the dashboard's "registered" figure. This is the
// legacy capacity - availableSpots math: it is only correct while every
// non-available spot corresponds to a registration, which is the server's
// documented semantic.
func (e *Event) RegisteredCount() int {
	return e.Capacity - e.AvailableSpots
}

// IsFull reports whether no spots remain.
func (e *Event) IsFull() bool {
	return e.AvailableSpots <= 0
}

// EventSearch holds the server-side search criteria for the event listing.
// Date is the raw string the date picker produced; the server interprets it.
type EventSearch struct {
	Title    string
	Date     string
	Category string
}

// IsEmpty reports whether every criterion is blank or whitespace.
func (s EventSearch) IsEmpty() bool {
	return strings.TrimSpace(s.Title) == "" &&
		strings.TrimSpace(s.Date) == "" &&
		strings.TrimSpace(s.Category) == ""
}

// Values encodes only the non-empty criteria as query parameters.
func (s EventSearch) Values() url.Values {
	values := url.Values{}
	if v := strings.TrimSpace(s.Title); v != "" {
		values.Set("title", v)
	}
	if v := strings.TrimSpace(s.Date); v != "" {
		values.Set("date", v)
	}
	if v := strings.TrimSpace(s.Category); v != "" {
		values.Set("category", v)
	}
	return values
}
