package commands

import (
	"context"
	"log/slog"
	"time"

	"repair/internal/core/domain/services"
)

// AssignServiceCommandHandler claims or overrides the service of an order.
type AssignServiceCommandHandler struct {
	uowFactory AssignmentUoWFactory
	policy     services.OrderAccessPolicy
	log        *slog.Logger
}

func NewAssignServiceCommandHandler(uowFactory AssignmentUoWFactory, log *slog.Logger) AssignServiceCommandHandler {
	return AssignServiceCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
		log:        log.With("component", "assign_service"),
	}
}

// Handle returns errs.ErrForbidden when the caller may not assign,
// errs.ErrConflict when the order is already taken or not waiting for a
// service, and errs.ErrObjectNotFound for an unknown order or profile.
func (h AssignServiceCommandHandler) Handle(ctx context.Context, command AssignServiceCommand) error {
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

	orders := uow.OrderRepository()
	o, err := orders.Get(ctx, command.OrderID())
	if err != nil {
		return err
	}

	assignment, err := h.policy.AuthorizeAssignment(command.Principal(), command.ServiceID())
	if err != nil {
		return err
	}
	if _, err = uow.ServiceProfileRepository().Get(ctx, assignment.ServiceID); err != nil {
		return err
	}

	now := time.Now()
	if assignment.Override {
		err = o.OverrideService(assignment.ServiceID, now)
	} else {
		err = o.ClaimService(assignment.ServiceID, now)
	}
	if err != nil {
		return err
	}

	if err = orders.Update(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "service assigned",
		"order_id", o.ID().String(), "service_id", assignment.ServiceID.String(), "override", assignment.Override)
	return nil
}
