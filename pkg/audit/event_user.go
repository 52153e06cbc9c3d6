package audit

import (
	"fmt"

	"github.com/ciphermind/ciphermind/pkg/model"
)

// UserCreatedEvent records a successful account registration. Actor is
// the registering admin, or the new username itself during bootstrap.
type UserCreatedEvent struct {
	Actor   string
	NewUser string
	Role    model.Role
}

func (e UserCreatedEvent) Action() model.Action {
	return model.ActionCreateUser
}

func (e UserCreatedEvent) Username() string {
	return e.Actor
}

func (e UserCreatedEvent) Target() string {
	return e.NewUser
}

func (e UserCreatedEvent) Message() string {
	return fmt.Sprintf("%s created user %s with role %s", e.Actor, e.NewUser, e.Role)
}

func (e UserCreatedEvent) Severity() Severity {
	return SeverityInfo
}
