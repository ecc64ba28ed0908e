package commands

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/guard"
)

var ErrSetActorActiveCommandIsNotConstructed = errors.New(
	"SetActorActiveCommand must be created via NewSetActorActiveCommand constructor",
)

// SetActorActiveCommand enables or disables an account.
type SetActorActiveCommand struct {
	principal actor.Principal
	actorID   kernel.UUID
	active    bool

	guard guard.ConstructorGuard
}

func NewSetActorActiveCommand(principal actor.Principal, actorID kernel.UUID, active bool) (SetActorActiveCommand, error) {
	if err := errors.Join(principal.Validate(), actorID.Validate()); err != nil {
		return SetActorActiveCommand{}, err
	}
	return SetActorActiveCommand{
		principal: principal,
		actorID:   actorID,
		active:    active,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c SetActorActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetActorActiveCommandIsNotConstructed)
}

func (c SetActorActiveCommand) Principal() actor.Principal { return c.principal }

func (c SetActorActiveCommand) ActorID() kernel.UUID { return c.actorID }

func (c SetActorActiveCommand) Active() bool { return c.active }
