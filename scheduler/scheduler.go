// Package scheduler implements the per-peer send core: admission against a rate limiter, placement on one
// of three priority queues, and packing of ready messages into a size-bounded transport frame. One
// Scheduler instance manages one peer; it keeps no state shared with any other peer and performs no
// retransmission, reordering, or reliability work of its own.
//
// A Scheduler is single-writer by convention: callers are expected to serialize Enqueue and PackFrame
// through whatever synchronization the surrounding peer context already has. Nothing here takes an
// internal lock.
package scheduler

import (
	"bytes"
	"time"

	"github.com/OperatorFoundation/peersend/clock"
	"github.com/OperatorFoundation/peersend/message"
	"github.com/OperatorFoundation/peersend/peerlog"
	"github.com/OperatorFoundation/peersend/queue"
	"github.com/OperatorFoundation/peersend/ratelimit"
)

var log = peerlog.Get("scheduler")

// Scheduler owns the three priority queues and the rate limiter for a single peer's outbound traffic.
type Scheduler struct {
	queues  queue.Queues
	limiter *ratelimit.Limiter
	clock   clock.Clock

	// maxFrameDataSize is the transport layer's compile-time frame size cap, injected here since the
	// transport socket itself is out of this module's scope.
	maxFrameDataSize int
}

// New constructs an empty Scheduler. maxFrameDataSize bounds both the per-call PackFrame output and, as an
// admission-time check, the largest message Enqueue will accept (see the Open Question in spec §9: a
// message whose size alone exceeds this cap would otherwise sit permanently at the head of its queue).
func New(limits ratelimit.Limits, c clock.Clock, maxFrameDataSize int) *Scheduler {
	return &Scheduler{
		limiter:          ratelimit.New(limits),
		clock:            c,
		maxFrameDataSize: maxFrameDataSize,
	}
}

// Enqueue admits msg for sending at the given priority, waking it at enqueue-time+delay if priority is
// Delayed. It returns ErrSendBufferFull if msg's class is at its byte ceiling (or msg could never fit in a
// single frame), ErrOutOfMemory if queueing it failed, or a *PriorityError for an unrecognized priority.
// On any error, the scheduler's state — rate-limiter counters and all three queues — is left exactly as it
// was before the call.
func (s *Scheduler) Enqueue(msg message.Message, priority Priority, delay time.Duration) error {
	class := ratelimit.ClassOf(msg.Type())
	size := uint64(msg.Size())

	if size > uint64(s.maxFrameDataSize) {
		// This message's raw size alone already exceeds what a frame can hold; no amount of rate-limiter
		// headroom will ever let it be sent. Reject now rather than let it livelock at the queue head.
		return ErrSendBufferFull
	}

	if !s.limiter.CanAdmit(class, size) {
		return ErrSendBufferFull
	}

	if err := s.push(msg, priority, delay); err != nil {
		return err
	}

	s.limiter.Add(class, size)
	return nil
}

// push places msg on the queue selected by priority. A panic during the underlying append/allocation
// (the Go analogue of the original C++ catch-all around an out-of-memory allocation failure) is converted to
// ErrOutOfMemory; since Add is only ever called after push returns successfully, no rollback is needed.
func (s *Scheduler) push(msg message.Message, priority Priority, delay time.Duration) (err error) {
	defer func() {
		if r := recover(); r != nil {
			log.Warningf("push: recovered panic, treating as out of memory: %v", r)
			err = ErrOutOfMemory
		}
	}()

	switch priority {
	case Normal:
		s.queues.Normal.PushBack(msg)
	case Expedited:
		s.queues.Expedited.PushBack(msg)
	case Delayed:
		s.queues.Delayed.PushBack(queue.NewDelayed(msg, s.clock.Now(), delay))
	default:
		return &PriorityError{Priority: priority}
	}
	return nil
}

// PackFrame appends as many ready messages as fit into buffer, which may be non-empty on entry. It
// returns success=false only when a framing/encryption failure stopped the call — buffer is not fully
// populated in that case, but nothing is corrupted, and the offending message remains at its queue's head
// for the caller to investigate or drop via a session teardown. A full buffer is a normal stop and reports
// success=true. count is the number of messages appended during this call.
//
// If the expedited queue is non-empty, exactly one expedited message is packed (if it fits) and the call
// returns immediately — expedited traffic is never concatenated with anything, even when concatenate is
// true, since expedited exists to minimize latency and batching would defeat that purpose. Otherwise normal
// messages are packed first, then ready delayed messages if room remains and the normal queue is
// exhausted without being stopped for some other reason. If concatenate is false, at most one message
// total is packed, and the delayed queue is consulted only when the normal queue was empty.
func (s *Scheduler) PackFrame(buffer *bytes.Buffer, key message.SymmetricKey, concatenate bool) (success bool, count int) {
	if !s.queues.Expedited.Empty() {
		return s.packExpedited(buffer, key)
	}

	success = true
	stop := false

	var scratch bytes.Buffer

	for !s.queues.Normal.Empty() {
		msg := s.queues.Normal.Front()

		scratch.Reset()
		if !msg.Write(&scratch, key) {
			success = false
			break
		}

		if buffer.Len()+scratch.Len() > s.maxFrameDataSize {
			stop = true
			break
		}

		buffer.Write(scratch.Bytes())
		s.queues.Normal.PopFront()
		s.limiter.Subtract(ratelimit.ClassOf(msg.Type()), uint64(msg.Size()))
		count++

		if !concatenate {
			stop = true
			break
		}
	}

	if success && !stop {
		for !s.queues.Delayed.Empty() {
			d := s.queues.Delayed.Front()
			if !d.IsReady(s.clock.Now()) {
				// FIFO order is preserved: we don't skip past an unready front to check behind it.
				// Readiness is re-evaluated on the next call.
				break
			}

			scratch.Reset()
			if !d.Message.Write(&scratch, key) {
				success = false
				break
			}

			if buffer.Len()+scratch.Len() > s.maxFrameDataSize {
				break
			}

			buffer.Write(scratch.Bytes())
			s.queues.Delayed.PopFront()
			s.limiter.Subtract(ratelimit.ClassOf(d.Message.Type()), uint64(d.Message.Size()))
			count++

			if !concatenate {
				break
			}
		}
	}

	if count > 1 {
		log.Debugf("packed %d messages into one frame", count)
	}

	return success, count
}

// packExpedited packs exactly one message from the expedited queue, never concatenating. If the framed
// message does not fit under maxFrameDataSize, nothing is packed and the call still reports success.
func (s *Scheduler) packExpedited(buffer *bytes.Buffer, key message.SymmetricKey) (bool, int) {
	msg := s.queues.Expedited.Front()

	var scratch bytes.Buffer
	if !msg.Write(&scratch, key) {
		return false, 0
	}
	if buffer.Len()+scratch.Len() > s.maxFrameDataSize {
		return true, 0
	}

	buffer.Write(scratch.Bytes())
	s.queues.Expedited.PopFront()
	s.limiter.Subtract(ratelimit.ClassOf(msg.Type()), uint64(msg.Size()))
	return true, 1
}

// Stats reports queue lengths, for diagnostics and tests. Rate-limiter occupancy is read with CurrentBytes.
type Stats struct {
	ExpeditedQueued int
	NormalQueued    int
	DelayedQueued   int
}

// Stats returns a snapshot of the scheduler's current queue lengths.
func (s *Scheduler) Stats() Stats {
	return Stats{
		ExpeditedQueued: s.queues.Expedited.Len(),
		NormalQueued:    s.queues.Normal.Len(),
		DelayedQueued:   s.queues.Delayed.Len(),
	}
}

// CurrentBytes returns the rate limiter's outstanding byte count for c, for diagnostics and tests.
func (s *Scheduler) CurrentBytes(c ratelimit.Class) uint64 {
	return s.limiter.Current(c)
}
