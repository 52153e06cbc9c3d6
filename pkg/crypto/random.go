package crypto

import (
	"crypto/rand"
	"encoding/hex"
	"io"
)

// RandomBytes returns size cryptographically secure random bytes.
func RandomBytes(size int) ([]byte, error) {
	return ReadBytes(rand.Reader, size)
}

// ReadBytes fills a buffer of the given size from r. Callers that need
// deterministic values in tests can pass their own reader.
func ReadBytes(r io.Reader, size int) ([]byte, error) {
	value := make([]byte, size)
	if _, err := io.ReadFull(r, value); err != nil {
		return nil, err
	}
	return value, nil
}

// ReadHex reads size random bytes from r and returns them hex-encoded,
// producing a string of 2*size characters.
func ReadHex(r io.Reader, size int) (string, error) {
	value, err := ReadBytes(r, size)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(value), nil
}
