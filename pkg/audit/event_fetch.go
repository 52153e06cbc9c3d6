package audit

import (
	"fmt"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// FetchEvent records a secret read.
type FetchEvent struct {
	User   string
	Secret string
}

func (e FetchEvent) Action() model.Action {
	return model.ActionReadSecret
}

func (e FetchEvent) Username() string {
	return e.User
}

func (e FetchEvent) Target() string {
	return e.Secret
}

func (e FetchEvent) Message() string {
	return fmt.Sprintf("%s fetched secret %s", e.User, e.Secret)
}

func (e FetchEvent) Severity() Severity {
	return SeverityInfo
}
