// Package crypting supplies a concrete symmetric-key framer for peersend, built on
// golang.org/x/crypto/chacha20poly1305. The scheduler and message packages never import this package
// directly — they depend only on message.SymmetricKey and message.Message.Write — but a real deployment
// needs one concrete implementation, and this is it.
package crypting

import (
	"crypto/rand"
	"sync/atomic"

	"golang.org/x/crypto/chacha20poly1305"
)

// KeyLen is the size in bytes of a SymmetricKey's secret.
const KeyLen = chacha20poly1305.KeySize

// SymmetricKey holds a chacha20poly1305 secret plus a monotonically increasing nonce counter, so
// successive frames sealed under the same key never reuse a nonce. It implements message.SymmetricKey
// (an empty interface) by virtue of being passed through unchanged.
type SymmetricKey struct {
	secret  [KeyLen]byte
	nonceCt uint64
	broken  bool
}

// NewSymmetricKey wraps secret for use as a per-peer frame key. secret is copied; the caller may reuse or
// discard its original array afterward.
func NewSymmetricKey(secret [KeyLen]byte) *SymmetricKey {
	return &SymmetricKey{secret: secret}
}

// GenerateSymmetricKey returns a fresh, randomly generated key, for tests and demo tooling. Real sessions
// derive their key from the handshake layer, which is out of this module's scope.
func GenerateSymmetricKey() (*SymmetricKey, error) {
	var secret [KeyLen]byte
	if _, err := rand.Read(secret[:]); err != nil {
		return nil, err
	}
	return NewSymmetricKey(secret), nil
}

// BrokenSymmetricKey returns a key that always fails to seal. It exists solely so tests can exercise the
// fatal-framing-error path of scheduler.PackFrame (spec scenario: inject a framer that returns false on
// write) without needing a real cryptographic failure.
func BrokenSymmetricKey() *SymmetricKey {
	return &SymmetricKey{broken: true}
}

// nextNonce returns the next 12-byte nonce for this key, built from the monotonic counter so it can never
// repeat for the lifetime of the key.
func (k *SymmetricKey) nextNonce() [chacha20poly1305.NonceSize]byte {
	var nonce [chacha20poly1305.NonceSize]byte
	n := atomic.AddUint64(&k.nonceCt, 1)
	for i := 0; i < 8; i++ {
		nonce[chacha20poly1305.NonceSize-1-i] = byte(n >> (8 * i))
	}
	return nonce
}
