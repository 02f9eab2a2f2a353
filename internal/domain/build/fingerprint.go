package build

import (
	"crypto/sha256"
	"encoding/hex"
	"hash"
)

// Fingerprint hashes every content source seen during one build pass. It is
// recorded for inspection only; builds never skip work based on it.
type Fingerprint struct {
	h     hash.Hash
	count int
}

func NewFingerprint() *Fingerprint {
	return &Fingerprint{h: sha256.New()}
}

func (f *Fingerprint) Add(name string, content []byte) {
	f.h.Write([]byte(name))
	f.h.Write([]byte{0})
	f.h.Write(content)
	f.h.Write([]byte{0})
	f.count++
}

func (f *Fingerprint) Count() int { return f.count }

func (f *Fingerprint) Sum() string {
	return hex.EncodeToString(f.h.Sum(nil))
}
