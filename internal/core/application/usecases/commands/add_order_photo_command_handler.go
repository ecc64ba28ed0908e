package commands

import (
	"context"
	"log/slog"
	"time"

	"repair/internal/core/domain/services"
)

// timeNow is the clock of command constructors.
var timeNow = time.Now

// AddOrderPhotoCommandHandler stores a photo once the caller's role, its
// relationship to the order and the stage agree.
type AddOrderPhotoCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
	log        *slog.Logger
}

func NewAddOrderPhotoCommandHandler(uowFactory OrderUoWFactory, log *slog.Logger) AddOrderPhotoCommandHandler {
	return AddOrderPhotoCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
		log:        log.With("component", "add_order_photo"),
	}
}

func (h AddOrderPhotoCommandHandler) Handle(ctx context.Context, command AddOrderPhotoCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if err = h.policy.AuthorizePhoto(command.Principal(), o, command.Photo().Stage()); err != nil {
		return err
	}
	if err = repo.AddPhoto(ctx, command.Photo()); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "order photo added",
		"order_id", o.ID().String(), "stage", command.Photo().Stage().String())
	return nil
}
