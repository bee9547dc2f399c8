package crypting

import (
	"bytes"

	"golang.org/x/crypto/chacha20poly1305"

	"github.com/OperatorFoundation/peersend/peerlog"
)

var log = peerlog.Get("crypting")

// FrameOverhead is the number of bytes AEADFramer adds beyond a message's raw payload: a 2-byte length
// prefix, the AEAD nonce, and its authentication tag. Seal uses it to bound the payload it will frame.
// scheduler.Enqueue does not add it: Enqueue compares a message's raw Size() with the scheduler's own
// frame cap.
const FrameOverhead = 2 + chacha20poly1305.NonceSize + chacha20poly1305.Overhead

// Seal frames payload under key and appends the result to dst: a 2-byte big-endian length, the nonce, the
// ciphertext, and the authentication tag. It returns false — a non-retryable framing failure, per
// message.Message.Write's contract — when the key is broken or the payload is too large to represent.
func Seal(dst *bytes.Buffer, key *SymmetricKey, payload []byte) bool {
	if key.broken {
		return false
	}
	if len(payload)+FrameOverhead > 0xFFFF {
		return false
	}

	aead, err := chacha20poly1305.New(key.secret[:])
	if err != nil {
		log.Errorf("frame: constructing AEAD: %v", err)
		return false
	}

	nonce := key.nextNonce()
	sealed := aead.Seal(nil, nonce[:], payload, nil)

	wireSize := len(nonce) + len(sealed)
	dst.WriteByte(byte(wireSize >> 8))
	dst.WriteByte(byte(wireSize))
	dst.Write(nonce[:])
	dst.Write(sealed)
	return true
}

// WireSize returns the number of bytes Seal would append for a payload of size payloadLen, without
// performing the seal. Used by callers that want to admission-check a message before enqueuing it.
func WireSize(payloadLen int) int {
	return 2 + chacha20poly1305.NonceSize + payloadLen + chacha20poly1305.Overhead
}
