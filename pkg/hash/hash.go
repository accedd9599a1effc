package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// SHA256Hex returns the hex-encoded SHA256 hash of the input string.
func SHA256Hex(input string) string {
	h := sha256.Sum256([]byte(input))
	return hex.EncodeToString(h[:])
}

// Prefix returns the first prefixLen characters of SHA256(input).
func Prefix(input string, prefixLen int) string {
	full := SHA256Hex(input)
	if prefixLen > len(full) {
		return full
	}
	return full[:prefixLen]
}

// Fingerprint hashes the JSON encoding of v to a prefixLen-character key.
// Struct fields encode in declaration order, so equal values give equal keys.
func Fingerprint(v any, prefixLen int) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", err
	}
	return Prefix(string(b), prefixLen), nil
}
