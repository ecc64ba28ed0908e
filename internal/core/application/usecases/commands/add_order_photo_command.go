package commands

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/pkg/guard"
)

var ErrAddOrderPhotoCommandIsNotConstructed = errors.New(
	"AddOrderPhotoCommand must be created via NewAddOrderPhotoCommand constructor",
)

// AddOrderPhotoCommand attaches a photo URL to an order.
type AddOrderPhotoCommand struct {
	principal actor.Principal
	orderID   kernel.UUID
	photo     *order.Photo

	guard guard.ConstructorGuard
}

// NewAddOrderPhotoCommand validates the photo itself; whether the caller may
// add it is decided by the handler.
func NewAddOrderPhotoCommand(
	principal actor.Principal,
	orderID kernel.UUID,
	stage order.PhotoStage,
	rawURL string,
) (AddOrderPhotoCommand, error) {
	photo, photoErr := order.NewPhoto(kernel.NewUUID(), orderID, stage, rawURL, timeNow())
	if err := errors.Join(principal.Validate(), photoErr); err != nil {
		return AddOrderPhotoCommand{}, err
	}
	return AddOrderPhotoCommand{
		principal: principal,
		orderID:   orderID,
		photo:     photo,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c AddOrderPhotoCommand) Validate() error {
	return c.guard.Validate(ErrAddOrderPhotoCommandIsNotConstructed)
}

func (c AddOrderPhotoCommand) Principal() actor.Principal { return c.principal }

func (c AddOrderPhotoCommand) OrderID() kernel.UUID { return c.orderID }

func (c AddOrderPhotoCommand) Photo() *order.Photo { return c.photo }
