package commands

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/core/domain/services"
	"repair/internal/pkg/errs"
)

// LeaveReviewCommandHandler stores the review and updates the running
// average of the service in the same transaction.
type LeaveReviewCommandHandler struct {
	uowFactory ReviewUoWFactory
	policy     services.OrderAccessPolicy
	log        *slog.Logger
}

func NewLeaveReviewCommandHandler(uowFactory ReviewUoWFactory, log *slog.Logger) LeaveReviewCommandHandler {
	return LeaveReviewCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
		log:        log.With("component", "leave_review"),
	}
}

// Handle returns errs.ErrConflict if the order is not delivered yet or was
// already reviewed.
func (h LeaveReviewCommandHandler) Handle(ctx context.Context, command LeaveReviewCommand) error {
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

	o, err := uow.OrderRepository().Get(ctx, command.OrderID())
	if err != nil {
		return err
	}
	if err = h.policy.AuthorizeReview(command.Principal(), o); err != nil {
		return err
	}
	if o.Status() != order.StatusDelivered || o.ServiceID() == nil {
		return errs.NewConflictErrorWithCause("order",
			fmt.Errorf("only delivered orders can be reviewed, order is %s", o.Status()))
	}

	profiles := uow.ServiceProfileRepository()
	profile, err := profiles.Get(ctx, *o.ServiceID())
	if err != nil {
		return err
	}

	now := time.Now()
	review, err := serviceprofile.NewReview(kernel.NewUUID(), o.ID(), o.ClientID(), profile.ID(),
		command.Rating(), command.Text(), now)
	if err != nil {
		return err
	}
	if err = uow.ReviewRepository().Add(ctx, review); err != nil {
		return err
	}
	if err = profile.AddRating(review.Rating(), now); err != nil {
		return err
	}
	if err = profiles.Update(ctx, profile); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "review left", "order_id", o.ID().String(), "service_id", profile.ID().String())
	return nil
}
