// Package requests tracks in-flight fetches per logical query key.
//
// There is no true cancellation: each issued fetch carries a ticket, and
// a response is applied only when its ticket is still the latest for its
// key. Superseded responses are discarded silently.
package requests

// Ticket identifies one issued request for a logical key.
type Ticket struct {
	Key string
	Seq uint64
}

// Coordinator hands out monotonically increasing tickets per key and
// answers whether a ticket is still the latest outstanding one. It is
// owned by the UI update loop and needs no locking.
type Coordinator struct {
	latest map[string]uint64
	seq    uint64
}

// NewCoordinator creates an empty coordinator.
func NewCoordinator() *Coordinator {
	return &Coordinator{
		latest: make(map[string]uint64),
	}
}

// Begin issues a new ticket for key, superseding any outstanding one.
func (c *Coordinator) Begin(key string) Ticket {
	c.seq++
	c.latest[key] = c.seq
	return Ticket{Key: key, Seq: c.seq}
}

// Current reports whether t is still the latest ticket for its key.
func (c *Coordinator) Current(t Ticket) bool {
	return c.latest[t.Key] == t.Seq
}

// Supersede invalidates any outstanding ticket for key without issuing
// a new fetch. Used when a view unmounts or a selection is cleared.
func (c *Coordinator) Supersede(key string) {
	c.seq++
	c.latest[key] = c.seq
}
