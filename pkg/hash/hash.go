package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// SourceKey derives a stable dedup key for a submission source (URL or
// filename). Case and surrounding whitespace are normalized first so the
// same video submitted twice maps to the same key.
func SourceKey(source string) string {
	return SHA256Hex(strings.ToLower(strings.TrimSpace(source)))
}

// ShortHash returns the first prefixLen characters of SHA256(input).
// Used for log correlation without writing raw identifiers.
func ShortHash(input string, prefixLen int) string {
	full := SHA256Hex(input)
	if prefixLen > len(full) {
		return full
	}
	return full[:prefixLen]
}

// HashIP hashes an IP address with a salt so request logs carry an
// irreversible correlation token instead of raw PII.
func HashIP(ip, salt string) string {
	return SHA256Hex(salt + ip)
}
