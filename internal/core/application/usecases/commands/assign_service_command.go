package commands

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/guard"
)

var ErrAssignServiceCommandIsNotConstructed = errors.New(
	"AssignServiceCommand must be created via NewAssignServiceCommand constructor",
)

// AssignServiceCommand puts a service on an order. A service actor claims
// the order for itself and passes a nil serviceID; an administrator names
// the service explicitly.
type AssignServiceCommand struct {
	principal actor.Principal
	orderID   kernel.UUID
	serviceID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignServiceCommand(
	principal actor.Principal,
	orderID kernel.UUID,
	serviceID *kernel.UUID,
) (AssignServiceCommand, error) {
	problems := []error{principal.Validate(), orderID.Validate()}
	if serviceID != nil {
		problems = append(problems, serviceID.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return AssignServiceCommand{}, err
	}
	return AssignServiceCommand{
		principal: principal,
		orderID:   orderID,
		serviceID: serviceID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AssignServiceCommand) Validate() error {
	return c.guard.Validate(ErrAssignServiceCommandIsNotConstructed)
}

func (c AssignServiceCommand) Principal() actor.Principal { return c.principal }

func (c AssignServiceCommand) OrderID() kernel.UUID { return c.orderID }

func (c AssignServiceCommand) ServiceID() *kernel.UUID { return c.serviceID }
