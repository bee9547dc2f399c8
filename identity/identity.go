// Package identity gives a send scheduler instance a stable peer label for logging and demo tooling. It
// plays no part in admission, scheduling, or framing — session establishment and key agreement are
// external collaborators per spec — but every real deployment needs something to print in its log lines,
// and the teacher's own DustCrypto keypair handling is the model for how that's done here.
package identity

import (
	"crypto/rand"
	"encoding/base32"
	"strings"

	"github.com/OperatorFoundation/ed25519"
)

// KeyPair is a peer's long-term identity keypair.
type KeyPair struct {
	Public  *[ed25519.PublicKeySize]byte
	Private *[ed25519.PrivateKeySize]byte
}

// Generate creates a fresh random keypair.
func Generate() (*KeyPair, error) {
	public, private, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, err
	}
	return &KeyPair{Public: public, Private: private}, nil
}

// Fingerprint returns the unpadded base32 encoding of the public key, a short stable label suitable for
// log lines. It is never consulted by the scheduler or framer.
func (kp *KeyPair) Fingerprint() string {
	return fingerprint(kp.Public[:])
}

// PublicFingerprint returns the same label given only the raw public key bytes, for peers known only by
// their public identity.
func PublicFingerprint(public *[ed25519.PublicKeySize]byte) string {
	return fingerprint(public[:])
}

func fingerprint(public []byte) string {
	padded := base32.StdEncoding.EncodeToString(public)
	return strings.TrimRight(padded, "=")
}
