package crypto

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"io"

	"golang.org/x/crypto/hkdf"
)

// HKDF info strings keep the data-encryption key and the token-signing
// key cryptographically independent even though both derive from the
// same master material.
const (
	infoDataEncryption = "ciphermind/data-encryption/v1"
	infoTokenSigning   = "ciphermind/token-signing/v1"
)

// ErrNoKeyMaterial is returned when no master key material is available
// and ephemeral key generation is not permitted.
var ErrNoKeyMaterial = errors.New("no master key material configured")

// DeriveKey stretches master material into a fixed-length key bound to
// the given info string using HKDF-SHA256.
func DeriveKey(material []byte, info string) ([]byte, error) {
	if len(material) == 0 {
		return nil, ErrNoKeyMaterial
	}

	key := make([]byte, KeySize)
	r := hkdf.New(sha256.New, material, nil, []byte(info))
	if _, err := io.ReadFull(r, key); err != nil {
		return nil, fmt.Errorf("key derivation failed: %w", err)
	}
	return key, nil
}

// DeriveTokenKey derives the HMAC key used to sign session tokens.
func DeriveTokenKey(material []byte) ([]byte, error) {
	return DeriveKey(material, infoTokenSigning)
}

// ResolveMaterial decides what master material the engine runs with.
// Explicit material wins. With none, an ephemeral key is generated only
// when allowed; ephemeral keys make previously stored ciphertext
// unrecoverable after restart, so production callers must treat
// ErrNoKeyMaterial as fatal instead.
func ResolveMaterial(material []byte, allowEphemeral bool) (resolved []byte, ephemeral bool, err error) {
	if len(material) > 0 {
		return material, false, nil
	}
	if !allowEphemeral {
		return nil, false, ErrNoKeyMaterial
	}

	generated, err := RandomBytes(KeySize)
	if err != nil {
		return nil, false, err
	}
	return generated, true, nil
}
