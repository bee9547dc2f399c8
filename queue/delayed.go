package queue

import (
	"time"

	"github.com/OperatorFoundation/peersend/message"
)

// Delayed wraps a message with the time it was enqueued and how long after that it becomes eligible to
// send. ReadyAt is derived from EnqueuedAt and Delay alone, so it does not change as the clock advances.
type Delayed struct {
	Message    message.Message
	EnqueuedAt time.Time
	Delay      time.Duration
}

// NewDelayed constructs a Delayed message ready at enqueuedAt+delay.
func NewDelayed(msg message.Message, enqueuedAt time.Time, delay time.Duration) Delayed {
	return Delayed{Message: msg, EnqueuedAt: enqueuedAt, Delay: delay}
}

// ReadyAt returns the earliest time this message may be sent.
func (d Delayed) ReadyAt() time.Time {
	return d.EnqueuedAt.Add(d.Delay)
}

// IsReady reports whether now has reached ReadyAt.
func (d Delayed) IsReady(now time.Time) bool {
	return !now.Before(d.ReadyAt())
}
