package logic

import "time"

// QuietPeriod is the gap with no edits required before a search term is
// considered settled.
const QuietPeriod = 300 * time.Millisecond

// Debouncer delays propagation of a rapidly-changing search term until
// input quiesces. Each edit arms a new timer carried by a monotonic
// sequence token; only the timer whose token is still current when it
// fires emits the settled value. Intermediate values are discarded, not
// queued.
type Debouncer struct {
	seq   uint64
	value string
}

// Touch records a new raw value and returns the token the caller should
// attach to the timer it schedules.
func (d *Debouncer) Touch(value string) uint64 {
	d.seq++
	d.value = value
	return d.seq
}

// Resolve reports whether the timer with the given token is still the
// latest; when it is, the settled value is returned.
func (d *Debouncer) Resolve(seq uint64) (string, bool) {
	if seq != d.seq {
		return "", false
	}
	return d.value, true
}

// Value returns the latest raw value, settled or not.
func (d *Debouncer) Value() string {
	return d.value
}
