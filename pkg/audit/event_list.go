package audit

import (
	"fmt"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// ListEvent records a secrets listing.
type ListEvent struct {
	User  string
	Scope string // owner scope applied; empty means all owners
	Count int
}

func (e ListEvent) Action() model.Action {
	return model.ActionListSecrets
}

func (e ListEvent) Username() string {
	return e.User
}

func (e ListEvent) Target() string {
	if e.Scope == "" {
		return "*"
	}
	return e.Scope
}

func (e ListEvent) Message() string {
	scope := e.Scope
	if scope == "" {
		scope = "all owners"
	}
	return fmt.Sprintf("%s listed %d secrets (%s)", e.User, e.Count, scope)
}

func (e ListEvent) Severity() Severity {
	return SeverityInfo
}
