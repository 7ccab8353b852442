package keyedmap

import (
	"crypto/rand"
	"encoding/binary"
	"io"

	"github.com/dchest/siphash"
)

// secretSize is the size in bytes of a table's hashing secret, matching the
// 128-bit key SipHash expects
const secretSize = 16

// keyer derives 64-bit digests from string keys using SipHash-2-4 keyed with a
// per-table secret. Without knowledge of the secret the digests are
// unpredictable, so an attacker cannot craft keys that pile up in one bucket.
type keyer struct {
	k0, k1 uint64
}

// newKeyer reads a fresh secret from src and returns a keyer for it. A nil src
// falls back to crypto/rand. ok is false if the source cannot provide enough
// bytes, in which case the keyer is unusable.
func newKeyer(src io.Reader) (kr keyer, ok bool) {
	if src == nil {
		src = rand.Reader
	}
	var secret [secretSize]byte
	if _, err := io.ReadFull(src, secret[:]); err != nil {
		return keyer{}, false
	}
	// the two SipHash key words are the little-endian halves of the secret
	kr.k0 = binary.LittleEndian.Uint64(secret[0:8])
	kr.k1 = binary.LittleEndian.Uint64(secret[8:16])
	return kr, true
}

// digest hashes key with the table's secret. Deterministic for the lifetime of
// one table, unpredictable across tables.
func (kr keyer) digest(key string) uint64 {
	return siphash.Hash(kr.k0, kr.k1, []byte(key))
}
