package audit

import (
	"fmt"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// RotateEvent records a secret rotation.
type RotateEvent struct {
	User   string
	Secret string
	Owner  string
}

func (e RotateEvent) Action() model.Action {
	return model.ActionRotateSecret
}

func (e RotateEvent) Username() string {
	return e.User
}

func (e RotateEvent) Target() string {
	return e.Secret
}

func (e RotateEvent) Message() string {
	if e.Owner != "" && e.Owner != e.User {
		return fmt.Sprintf("%s rotated secret %s owned by %s", e.User, e.Secret, e.Owner)
	}
	return fmt.Sprintf("%s rotated secret %s", e.User, e.Secret)
}

func (e RotateEvent) Severity() Severity {
	return SeverityInfo
}
