// Package store holds the client-side state for the EventHub API: the auth
// session, the event list, and the registration views. Each store owns its
// slice of state exclusively, guards it with a mutex, and hands out copies
// on read. Store operations are request/response pairs: loading is flagged
// around every call, failures land in an error string the UI renders, and a
// per-operation sequence guard drops responses that a newer call has
// already superseded.
package store

import "sync"

// inflight tracks the newest request per logical operation. Two overlapping
// calls to the same operation race on the network; only the one started
// last may apply its result.
type inflight struct {
	mu  sync.Mutex
	seq map[string]uint64
}

// begin registers a new request for op and returns its ticket.
func (f *inflight) begin(op string) uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.seq == nil {
		f.seq = make(map[string]uint64)
	}
	f.seq[op]++
	return f.seq[op]
}

// current reports whether ticket is still the newest request for op.
func (f *inflight) current(op string, ticket uint64) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.seq[op] == ticket
}
