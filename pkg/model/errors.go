package model

import (
	"errors"

	"github.com/ciphermind/ciphermind/pkg/crypto"
)

// Error taxonomy for vault operations. Callers branch on kind with
// errors.Is; the transport layer maps each kind to a status code.
// Validation and permission failures are terminal per request. ErrStore
// may be transient and retried by the calling layer, never by the core.
var (
	// ErrValidation indicates malformed or unacceptable input.
	ErrValidation = errors.New("validation failed")

	// ErrAuth indicates bad credentials or an invalid session token.
	ErrAuth = errors.New("authentication failed")

	// ErrPermission indicates an insufficient role or an ownership
	// violation.
	ErrPermission = errors.New("permission denied")

	// ErrNotFound indicates a missing secret or user within the
	// caller's visibility scope.
	ErrNotFound = errors.New("not found")

	// ErrStore indicates a persistence failure, transient or permanent.
	ErrStore = errors.New("store failure")

	// ErrConfig indicates missing required key material or an
	// unreachable database at startup. Always fatal.
	ErrConfig = errors.New("configuration error")

	// ErrEncryption and ErrDecryption are the encryption engine's
	// failure kinds, re-exported so callers can branch on every kind
	// from one place. ErrDecryption signals tamper or a wrong key and
	// must never be retried.
	ErrEncryption = crypto.ErrEncryption
	ErrDecryption = crypto.ErrDecryption
)
