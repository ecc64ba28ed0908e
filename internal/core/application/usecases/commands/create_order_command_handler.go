package commands

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/core/domain/model/pickuppoint"
	"repair/internal/core/domain/services"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"
)

// MaxOrderNumberAttempts bounds retries after an order number collision.
const MaxOrderNumberAttempts = 5

// CreateOrderCommandHandler validates both pickup points and stores the new
// order. Each attempt runs in a fresh unit of work so a unique violation on
// one number cannot poison the next attempt.
type CreateOrderCommandHandler struct {
	uowFactory OrderPlacementUoWFactory
	numbers    order.NumberSource
	policy     services.OrderAccessPolicy
	log        *slog.Logger
}

func NewCreateOrderCommandHandler(
	uowFactory OrderPlacementUoWFactory,
	numbers order.NumberSource,
	log *slog.Logger,
) CreateOrderCommandHandler {
	if numbers == nil {
		numbers = order.GenerateNumber
	}
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		numbers:    numbers,
		policy:     services.NewOrderAccessPolicy(),
		log:        log.With("component", "create_order"),
	}
}

func (h CreateOrderCommandHandler) Handle(ctx context.Context, command CreateOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if err := h.policy.AuthorizeCreate(command.Principal()); err != nil {
		return err
	}

	var lastErr error
	for attempt := 1; attempt <= MaxOrderNumberAttempts; attempt++ {
		lastErr = h.attempt(ctx, command)
		if lastErr == nil {
			return nil
		}
		if !errors.Is(lastErr, errs.ErrConflict) {
			return lastErr
		}
		h.log.WarnContext(ctx, "order number collision", "attempt", attempt)
	}
	return lastErr
}

func (h CreateOrderCommandHandler) attempt(ctx context.Context, command CreateOrderCommand) error {
	now := time.Now().UTC()
	number, err := h.numbers(now)
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

	details := command.Details()
	points := uow.PickupPointRepository()
	receive, err := activePickupPoint(ctx, points, command.ReceivePVZID())
	if err != nil {
		return err
	}
	if err = receive.EnsureCanServe("receive_pvz_id", details.Category); err != nil {
		return err
	}
	delivery, err := activePickupPoint(ctx, points, command.DeliveryPVZID())
	if err != nil {
		return err
	}
	if err = delivery.EnsureCanServe("delivery_pvz_id", details.Category); err != nil {
		return err
	}

	o, err := order.NewOrder(command.OrderID(), number, command.Principal().ActorID(),
		receive.ID(), delivery.ID(), details, now)
	if err != nil {
		return err
	}
	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "order created", "order_id", o.ID().String(), "number", o.Number())
	return nil
}

// activePickupPoint treats an inactive point the same as a missing one.
func activePickupPoint(
	ctx context.Context,
	points ports.PickupPointRepository,
	id kernel.UUID,
) (*pickuppoint.PickupPoint, error) {
	p, err := points.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if !p.IsActive() {
		return nil, errs.NewObjectNotFoundErrorWithCause("pickup point", id.String(), errors.New("inactive"))
	}
	return p, nil
}
