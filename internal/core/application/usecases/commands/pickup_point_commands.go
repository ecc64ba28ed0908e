package commands

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/pickuppoint"
	"repair/internal/pkg/guard"
)

var (
	ErrCreatePickupPointCommandIsNotConstructed = errors.New(
		"CreatePickupPointCommand must be created via NewCreatePickupPointCommand constructor",
	)
	ErrSetPickupPointActiveCommandIsNotConstructed = errors.New(
		"SetPickupPointActiveCommand must be created via NewSetPickupPointActiveCommand constructor",
	)
)

type CreatePickupPointCommand struct {
	principal actor.Principal
	id        kernel.UUID
	ownerID   *kernel.UUID
	profile   pickuppoint.Profile

	guard guard.ConstructorGuard
}

// NewCreatePickupPointCommand builds the command. ownerID is honoured only
// for administrators.
func NewCreatePickupPointCommand(
	principal actor.Principal,
	id kernel.UUID,
	ownerID *kernel.UUID,
	profile pickuppoint.Profile,
) (CreatePickupPointCommand, error) {
	problems := []error{principal.Validate(), id.Validate()}
	if ownerID != nil {
		problems = append(problems, ownerID.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return CreatePickupPointCommand{}, err
	}
	return CreatePickupPointCommand{
		principal: principal,
		id:        id,
		ownerID:   ownerID,
		profile:   profile,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreatePickupPointCommand) Validate() error {
	return c.guard.Validate(ErrCreatePickupPointCommandIsNotConstructed)
}

func (c CreatePickupPointCommand) Principal() actor.Principal { return c.principal }

func (c CreatePickupPointCommand) ID() kernel.UUID { return c.id }

func (c CreatePickupPointCommand) OwnerID() *kernel.UUID { return c.ownerID }

func (c CreatePickupPointCommand) Profile() pickuppoint.Profile { return c.profile }

type SetPickupPointActiveCommand struct {
	principal     actor.Principal
	pickupPointID kernel.UUID
	active        bool

	guard guard.ConstructorGuard
}

func NewSetPickupPointActiveCommand(
	principal actor.Principal,
	pickupPointID kernel.UUID,
	active bool,
) (SetPickupPointActiveCommand, error) {
	if err := errors.Join(principal.Validate(), pickupPointID.Validate()); err != nil {
		return SetPickupPointActiveCommand{}, err
	}
	return SetPickupPointActiveCommand{
		principal:     principal,
		pickupPointID: pickupPointID,
		active:        active,
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c SetPickupPointActiveCommand) Validate() error {
	return c.guard.Validate(ErrSetPickupPointActiveCommandIsNotConstructed)
}

func (c SetPickupPointActiveCommand) Principal() actor.Principal { return c.principal }

func (c SetPickupPointActiveCommand) PickupPointID() kernel.UUID { return c.pickupPointID }

func (c SetPickupPointActiveCommand) Active() bool { return c.active }
