package scheduler

import "errors"

var (
	// ErrSendBufferFull is returned when the message's class is already at its byte ceiling, or when the
	// message could never fit in a single frame. Expected and frequent under load; callers apply
	// backpressure and decide whether to retry or drop.
	ErrSendBufferFull = errors.New("scheduler: send buffer full")

	// ErrOutOfMemory is returned when queueing the message failed due to allocation failure. It is
	// reported without mutating rate-limiter accounting, since the push happens strictly before Add.
	ErrOutOfMemory = errors.New("scheduler: out of memory")
)
