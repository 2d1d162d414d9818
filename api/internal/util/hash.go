package util

import (
	"crypto/sha256"
	"encoding/hex"
)

func SHA256Hex(s string) string {
	h := sha256.Sum256([]byte(s))
	return hex.EncodeToString(h[:])
}

// ShortHash is used to build unguessable webhook paths from a secret.
func ShortHash(s string) string {
	return SHA256Hex(s)[:16]
}
