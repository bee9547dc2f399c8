package crypting

import (
	"bytes"

	"github.com/OperatorFoundation/peersend/message"
)

// Payload is the concrete message.Message implementation this module ships: a byte payload tagged with a
// message.Type, framed with Seal when written. Producers that don't need their own message representation
// can use this directly; the scheduler itself never refers to it.
type Payload struct {
	typ  message.Type
	data []byte
}

// NewPayload wraps data as a message of type t. data is not copied; the caller must not mutate it after
// handing it to the scheduler.
func NewPayload(t message.Type, data []byte) *Payload {
	return &Payload{typ: t, data: data}
}

// Type implements message.Message.
func (p *Payload) Type() message.Type {
	return p.typ
}

// Size implements message.Message, returning the raw payload size (the queued cost), not the framed wire
// size. Framing overhead (FrameOverhead) is not included in this value.
func (p *Payload) Size() int {
	return len(p.data)
}

// Write implements message.Message by sealing the payload under key with Seal.
func (p *Payload) Write(dst *bytes.Buffer, key message.SymmetricKey) bool {
	symkey, ok := key.(*SymmetricKey)
	if !ok {
		log.Errorf("Write: key is not a *crypting.SymmetricKey (%T)", key)
		return false
	}
	return Seal(dst, symkey, p.data)
}

var _ message.Message = (*Payload)(nil)
