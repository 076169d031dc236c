package fingerprint

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
)

// Compute returns the content hash of an email used to detect duplicate
// ingestion. Each field is length-prefixed so that ("ab", "c") and ("a", "bc")
// never hash the same.
func Compute(sender, subject, body string) string {
	h := sha256.New()
	var size [8]byte
	for _, field := range []string{sender, subject, body} {
		binary.BigEndian.PutUint64(size[:], uint64(len(field)))
		h.Write(size[:])
		h.Write([]byte(field))
	}
	return hex.EncodeToString(h.Sum(nil))
}
