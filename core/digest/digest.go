// Package digest computes content fingerprints for chunk payloads and
// whole files. SHA-256 is the primary hash; BLAKE3 is reported alongside
// it for fast comparison of large payloads.
package digest

import (
	"crypto/sha256"
	"encoding/hex"

	"github.com/zeebo/blake3"
)

// Pair holds both fingerprints of one byte blob.
type Pair struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
}

// Sum computes both fingerprints of data.
func Sum(data []byte) Pair {
	s := sha256.Sum256(data)
	b := blake3.Sum256(data)
	return Pair{
		SHA256: hex.EncodeToString(s[:]),
		BLAKE3: hex.EncodeToString(b[:]),
	}
}

// SHA256Hex computes only the primary fingerprint. The catalog stores this
// one per chunk payload.
func SHA256Hex(data []byte) string {
	s := sha256.Sum256(data)
	return hex.EncodeToString(s[:])
}
