package commands

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand places a new order on behalf of a client. The caller
// picks the order id so it can read the order back afterwards.
//
// Example:
//
//	orderID := kernel.NewUUID()
//	cmd, err := commands.NewCreateOrderCommand(principal, orderID, receiveID, deliveryID, order.Details{
//	    Category:      kernel.CategoryTech,
//	    Description:   "cracked screen",
//	    PaymentMethod: order.PaymentOnline,
//	})
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	principal     actor.Principal
	orderID       kernel.UUID
	receivePVZID  kernel.UUID
	deliveryPVZID kernel.UUID
	details       order.Details

	guard guard.ConstructorGuard
}

func NewCreateOrderCommand(
	principal actor.Principal,
	orderID, receivePVZID, deliveryPVZID kernel.UUID,
	details order.Details,
) (CreateOrderCommand, error) {
	c := CreateOrderCommand{details: details, guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		c.setPrincipal(principal),
		c.setOrderID(orderID),
		c.setPickupPoints(receivePVZID, deliveryPVZID),
	); err != nil {
		return CreateOrderCommand{}, err
	}
	return c, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Principal() actor.Principal { return c.principal }

func (c CreateOrderCommand) OrderID() kernel.UUID { return c.orderID }

func (c CreateOrderCommand) ReceivePVZID() kernel.UUID { return c.receivePVZID }

func (c CreateOrderCommand) DeliveryPVZID() kernel.UUID { return c.deliveryPVZID }

func (c CreateOrderCommand) Details() order.Details { return c.details }

func (c *CreateOrderCommand) setPrincipal(p actor.Principal) error {
	if err := p.Validate(); err != nil {
		return err
	}
	c.principal = p
	return nil
}

func (c *CreateOrderCommand) setOrderID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	c.orderID = id
	return nil
}

func (c *CreateOrderCommand) setPickupPoints(receive, delivery kernel.UUID) error {
	var problems []error
	if err := receive.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("receive_pvz_id", err))
	}
	if err := delivery.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("delivery_pvz_id", err))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	c.receivePVZID = receive
	c.deliveryPVZID = delivery
	return nil
}
