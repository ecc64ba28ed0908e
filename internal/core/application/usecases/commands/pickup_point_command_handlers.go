package commands

import (
	"context"
	"log/slog"
	"time"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/pickuppoint"
	"repair/internal/pkg/errs"
)

// CreatePickupPointCommandHandler registers a pickup point. A pvz actor
// operates at most one point.
type CreatePickupPointCommandHandler struct {
	uowFactory PickupPointUoWFactory
	log        *slog.Logger
}

func NewCreatePickupPointCommandHandler(uowFactory PickupPointUoWFactory, log *slog.Logger) CreatePickupPointCommandHandler {
	return CreatePickupPointCommandHandler{uowFactory: uowFactory, log: log.With("component", "create_pickup_point")}
}

func (h CreatePickupPointCommandHandler) Handle(ctx context.Context, command CreatePickupPointCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	p := command.Principal()
	if p.Role() != actor.RolePVZ && !p.IsAdmin() {
		return errs.NewForbiddenError("create pickup point")
	}
	ownerID := resolveOwner(p, command.OwnerID())

	point, err := pickuppoint.NewPickupPoint(command.ID(), ownerID, command.Profile(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.PickupPointRepository()
	_, lookupErr := repo.GetByOwner(ctx, ownerID)
	if err = ensureNoneOwned(lookupErr, "pickup point"); err != nil {
		return err
	}
	if err = repo.Add(ctx, point); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "pickup point created", "pickup_point_id", point.ID().String(), "owner_id", ownerID.String())
	return nil
}

type SetPickupPointActiveCommandHandler struct {
	uowFactory PickupPointUoWFactory
	log        *slog.Logger
}

func NewSetPickupPointActiveCommandHandler(uowFactory PickupPointUoWFactory, log *slog.Logger) SetPickupPointActiveCommandHandler {
	return SetPickupPointActiveCommandHandler{uowFactory: uowFactory, log: log.With("component", "set_pickup_point_active")}
}

func (h SetPickupPointActiveCommandHandler) Handle(ctx context.Context, command SetPickupPointActiveCommand) error {
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

	repo := uow.PickupPointRepository()
	point, err := repo.Get(ctx, command.PickupPointID())
	if err != nil {
		return err
	}
	if err = ensureOwnerOrAdmin(command.Principal(), point.OwnerID(), "change pickup point status"); err != nil {
		return err
	}

	point.SetActive(command.Active(), time.Now())
	if err = repo.Update(ctx, point); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "pickup point status changed",
		"pickup_point_id", point.ID().String(), "active", point.IsActive())
	return nil
}
