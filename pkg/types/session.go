package types

// Session is the auth store's state snapshot. Invariants:
// IsAuthenticated == (Token != ""), and User is non-nil whenever
// IsAuthenticated is true and Loading is false.
type Session struct {
	Token           string
	IsAuthenticated bool
	User            *User
	Loading         bool
	Error           string
}

// Anonymous reports whether no session is active.
func (s Session) Anonymous() bool {
	return !s.IsAuthenticated
}
