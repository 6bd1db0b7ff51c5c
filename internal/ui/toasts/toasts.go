// Package toasts keeps the ephemeral notification list. Each toast is
// removed a fixed TTL after its own push, independent of later pushes.
package toasts

import (
	"time"

	"github.com/google/uuid"
)

// TTL is how long a toast stays visible.
const TTL = 4 * time.Second

// Kind classifies a toast for styling.
type Kind string

const (
	KindInfo    Kind = "info"
	KindSuccess Kind = "success"
	KindError   Kind = "error"
)

// Toast is one short-lived notification message.
type Toast struct {
	ID        string
	Text      string
	Kind      Kind
	CreatedAt time.Time
}

// Queue holds the currently visible toasts in arrival order. No
// capacity limit is enforced.
type Queue struct {
	toasts []Toast
}

// NewQueue creates an empty queue.
func NewQueue() *Queue {
	return &Queue{}
}

// Push appends a toast with a fresh identifier. The caller is
// responsible for scheduling Expire(t.ID) after TTL.
func (q *Queue) Push(text string, kind Kind) Toast {
	t := Toast{
		ID:        uuid.NewString(),
		Text:      text,
		Kind:      kind,
		CreatedAt: time.Now(),
	}
	q.toasts = append(q.toasts, t)
	return t
}

// Expire removes the toast with the given id, if still present.
func (q *Queue) Expire(id string) {
	kept := q.toasts[:0]
	for _, t := range q.toasts {
		if t.ID != id {
			kept = append(kept, t)
		}
	}
	q.toasts = kept
}

// Toasts returns the visible toasts in arrival order.
func (q *Queue) Toasts() []Toast {
	return append([]Toast(nil), q.toasts...)
}

// Len returns the number of visible toasts.
func (q *Queue) Len() int {
	return len(q.toasts)
}
