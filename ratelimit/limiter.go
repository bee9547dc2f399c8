// Package ratelimit tracks per-class outstanding byte counts and admits or rejects new messages against a
// configured per-class ceiling. It holds no knowledge of queues, priorities, or framing; it only answers
// "does this class have room" and keeps the books once a caller has committed to adding or removing bytes.
package ratelimit

import (
	"github.com/OperatorFoundation/peersend/message"
)

// Class is the rate-limiting bucket a message falls into, derived 1:1 from message.Type.
type Class int

const (
	ClassDefault Class = iota
	ClassExtenderCommunication
	ClassNoise
	ClassRelayData

	numClasses
)

// ClassOf maps a message.Type to its rate-limit Class. This mapping MUST be applied identically at both
// admission (Add) and release (Subtract) time, or the per-class counters drift from the queued bytes they
// are meant to track.
func ClassOf(t message.Type) Class {
	switch t {
	case message.ExtenderCommunication:
		return ClassExtenderCommunication
	case message.Noise:
		return ClassNoise
	case message.RelayData:
		return ClassRelayData
	default:
		return ClassDefault
	}
}

const (
	// KiB and MiB are the usual binary units, used below to keep the default limits readable.
	KiB = 1024
	MiB = 1024 * KiB

	// DefaultDefaultBytes, DefaultExtenderCommunicationBytes, and DefaultRelayDataBytes are the default
	// per-class budgets for application-adjacent traffic.
	DefaultDefaultBytes               = 1 * MiB
	DefaultExtenderCommunicationBytes = 1 * MiB
	DefaultRelayDataBytes             = 1 * MiB

	// DefaultNoiseBytes is deliberately the smallest budget: noise is filler traffic used to shape the
	// outward byte stream, and must never be allowed to starve real traffic of send-queue room.
	DefaultNoiseBytes = 256 * KiB
)

// Limits holds the configured per-class byte ceiling. Zero-value Limits admits nothing; use
// DefaultLimits for sane defaults.
type Limits struct {
	Default               uint64
	ExtenderCommunication uint64
	Noise                 uint64
	RelayData             uint64
}

// DefaultLimits returns the module's documented default per-class limits.
func DefaultLimits() Limits {
	return Limits{
		Default:               DefaultDefaultBytes,
		ExtenderCommunication: DefaultExtenderCommunicationBytes,
		Noise:                 DefaultNoiseBytes,
		RelayData:             DefaultRelayDataBytes,
	}
}

func (l Limits) max(c Class) uint64 {
	switch c {
	case ClassExtenderCommunication:
		return l.ExtenderCommunication
	case ClassNoise:
		return l.Noise
	case ClassRelayData:
		return l.RelayData
	default:
		return l.Default
	}
}

// Limiter tracks current_bytes[class] against a fixed max_bytes[class] per spec. Zero value is not usable;
// construct with New.
type Limiter struct {
	limits  Limits
	current [numClasses]uint64
}

// New constructs a Limiter with all counters at zero and the given per-class ceilings.
func New(limits Limits) *Limiter {
	return &Limiter{limits: limits}
}

// CanAdmit reports whether size more bytes of class c would fit without exceeding the class's ceiling.
// The check compares size against the remaining headroom rather than computing current+size, so it
// cannot overflow even when the ceiling is near the top of the uint64 range.
func (l *Limiter) CanAdmit(c Class, size uint64) bool {
	max := l.limits.max(c)
	cur := l.current[c]
	return cur <= max && size <= max-cur
}

// Add records size more bytes of class c as outstanding. The caller must have just verified CanAdmit(c,
// size); Add does not re-check.
func (l *Limiter) Add(c Class, size uint64) {
	l.current[c] += size
}

// Subtract releases size bytes of class c. The caller must ensure size does not exceed the current
// outstanding count for c.
func (l *Limiter) Subtract(c Class, size uint64) {
	if size > l.current[c] {
		panic("ratelimit: Subtract underflow — caller released more bytes than were outstanding")
	}
	l.current[c] -= size
}

// Current returns the outstanding byte count for class c, for tests and diagnostics.
func (l *Limiter) Current(c Class) uint64 {
	return l.current[c]
}

// Max returns the configured ceiling for class c.
func (l *Limiter) Max(c Class) uint64 {
	return l.limits.max(c)
}
