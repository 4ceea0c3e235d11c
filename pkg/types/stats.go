package types

// RegistrationCounts is a server-computed breakdown of registrations by
// status. The client treats it as a cached read-through: it reflects the
// last successful fetch, nothing more.
type RegistrationCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// Stats is the global admin dashboard aggregate.
type Stats struct {
	Registrations RegistrationCounts `json:"registrations"`
}

// EventStats maps event ids to their registration breakdowns.
type EventStats map[string]RegistrationCounts
