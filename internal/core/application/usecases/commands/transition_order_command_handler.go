package commands

import (
	"context"
	"log/slog"
	"time"

	"repair/internal/core/domain/services"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"
)

// TransitionOrderCommandHandler applies a lifecycle transition.
//
// The checks run in a fixed order so that a stranger learns nothing about an
// order beyond its existence: the order must exist and not be terminal, the
// caller must be authorized for the edge, and only then are the graph edge
// and the payload examined. The write is a compare-and-swap; a lost race is
// errs.ErrConflict.
type TransitionOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     services.OrderAccessPolicy
	events     ports.OrderEventPublisher
	log        *slog.Logger
}

// NewTransitionOrderCommandHandler wires the handler. events may be nil.
func NewTransitionOrderCommandHandler(
	uowFactory OrderUoWFactory,
	events ports.OrderEventPublisher,
	log *slog.Logger,
) TransitionOrderCommandHandler {
	return TransitionOrderCommandHandler{
		uowFactory: uowFactory,
		policy:     services.NewOrderAccessPolicy(),
		events:     events,
		log:        log.With("component", "transition_order"),
	}
}

func (h TransitionOrderCommandHandler) Handle(ctx context.Context, command TransitionOrderCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	event, err := h.apply(ctx, command)
	if err != nil {
		return err
	}

	h.log.InfoContext(ctx, "order transitioned",
		"order_id", event.OrderID.String(), "from", event.From.String(), "to", event.To.String(),
		"actor_id", event.ActorID.String())

	h.publish(ctx, event)
	return nil
}

// apply runs the transition inside one unit of work. The transaction is
// finished when it returns, so events never go out for uncommitted state.
func (h TransitionOrderCommandHandler) apply(
	ctx context.Context,
	command TransitionOrderCommand,
) (ports.OrderStatusChanged, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return ports.OrderStatusChanged{}, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.OrderRepository()
	o, err := repo.Get(ctx, command.OrderID())
	if err != nil {
		return ports.OrderStatusChanged{}, err
	}

	from := o.Status()
	if from.IsTerminal() {
		return ports.OrderStatusChanged{}, errs.NewInvalidTransitionError(from, command.Target())
	}
	if err = h.policy.AuthorizeTransition(command.Principal(), o, command.Target()); err != nil {
		return ports.OrderStatusChanged{}, err
	}

	if err = o.Transition(command.Target(), command.Payload(), time.Now()); err != nil {
		return ports.OrderStatusChanged{}, err
	}
	if err = repo.Update(ctx, o); err != nil {
		return ports.OrderStatusChanged{}, err
	}
	if err = uow.Commit(ctx); err != nil {
		return ports.OrderStatusChanged{}, err
	}

	return ports.OrderStatusChanged{
		OrderID:    o.ID(),
		Number:     o.Number(),
		From:       from,
		To:         o.Status(),
		ActorID:    command.Principal().ActorID(),
		OccurredAt: o.UpdatedAt(),
	}, nil
}

func (h TransitionOrderCommandHandler) publish(ctx context.Context, event ports.OrderStatusChanged) {
	if h.events == nil {
		return
	}
	if err := h.events.PublishStatusChanged(ctx, event); err != nil {
		h.log.WarnContext(ctx, "failed to publish order event",
			"order_id", event.OrderID.String(), "error", err)
	}
}
