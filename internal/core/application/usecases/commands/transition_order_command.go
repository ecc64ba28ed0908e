package commands

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/pkg/guard"
)

var ErrTransitionOrderCommandIsNotConstructed = errors.New(
	"TransitionOrderCommand must be created via NewTransitionOrderCommand constructor",
)

// TransitionOrderCommand moves an order along its lifecycle.
//
// Example:
//
//	payload, _ := order.NewPayload(map[string]any{"proposed_price": 2500.0})
//	cmd, err := commands.NewTransitionOrderCommand(principal, orderID, order.StatusPriceProposed, payload)
type TransitionOrderCommand struct {
	principal actor.Principal
	orderID   kernel.UUID
	target    order.Status
	payload   order.Payload

	guard guard.ConstructorGuard
}

func NewTransitionOrderCommand(
	principal actor.Principal,
	orderID kernel.UUID,
	target order.Status,
	payload order.Payload,
) (TransitionOrderCommand, error) {
	if err := errors.Join(principal.Validate(), orderID.Validate(), target.Validate()); err != nil {
		return TransitionOrderCommand{}, err
	}
	return TransitionOrderCommand{
		principal: principal,
		orderID:   orderID,
		target:    target,
		payload:   payload,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c TransitionOrderCommand) Validate() error {
	return c.guard.Validate(ErrTransitionOrderCommandIsNotConstructed)
}

func (c TransitionOrderCommand) Principal() actor.Principal { return c.principal }

func (c TransitionOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c TransitionOrderCommand) Target() order.Status { return c.target }

func (c TransitionOrderCommand) Payload() order.Payload { return c.payload }
