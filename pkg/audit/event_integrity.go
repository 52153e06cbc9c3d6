package audit

import (
	"fmt"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// IntegrityEvent records a decryption failure on read: either the
// stored ciphertext was tampered with or the wrong key is in use.
// Recorded under the read action so the attempted access shows up in
// the ledger alongside successful reads.
type IntegrityEvent struct {
	User   string
	Secret string
}

func (e IntegrityEvent) Action() model.Action {
	return model.ActionReadSecret
}

func (e IntegrityEvent) Username() string {
	return e.User
}

func (e IntegrityEvent) Target() string {
	return e.Secret
}

func (e IntegrityEvent) Message() string {
	return fmt.Sprintf("%s failed to decrypt secret %s: possible integrity violation", e.User, e.Secret)
}

func (e IntegrityEvent) Severity() Severity {
	return SeverityError
}
