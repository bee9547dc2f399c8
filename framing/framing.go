// Package framing holds the transport-layer constants the scheduler is handed from outside: the maximum
// size of a packed frame. The framing operation itself lives on message.Message.Write, since the scheduler
// only ever calls through that interface — this package has no serialization logic of its own.
package framing

// DefaultMaxFrameDataSize is the default ceiling on the number of bytes scheduler.Scheduler.PackFrame may
// append to its output buffer in a single call. It is a default, not a law of nature: callers with a
// different transport MTU should construct their scheduler with their own value.
const DefaultMaxFrameDataSize = 16 * 1024
