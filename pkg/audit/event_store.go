package audit

import (
	"fmt"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// StoreEvent records a secret being written.
type StoreEvent struct {
	User   string
	Secret string
}

func (e StoreEvent) Action() model.Action {
	return model.ActionStoreSecret
}

func (e StoreEvent) Username() string {
	return e.User
}

func (e StoreEvent) Target() string {
	return e.Secret
}

func (e StoreEvent) Message() string {
	return fmt.Sprintf("%s stored secret %s", e.User, e.Secret)
}

func (e StoreEvent) Severity() Severity {
	return SeverityInfo
}
