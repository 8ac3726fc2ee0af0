// Package id mints opaque session identifiers.
package id

import (
	"crypto/rand"
	"encoding/hex"
)

// Generator returns a unique identifier per call.
type Generator interface {
	New() string
}

// RandomHex produces 24 hex characters from crypto/rand, plenty for
// one identifier per session.
type RandomHex struct{}

func (RandomHex) New() string {
	buf := make([]byte, 12)
	_, _ = rand.Read(buf)
	return hex.EncodeToString(buf)
}
