package ports

import (
	"context"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
)

// OrderStatusChanged is emitted after a transition has been committed.
type OrderStatusChanged struct {
	OrderID    kernel.UUID
	Number     string
	From       order.Status
	To         order.Status
	ActorID    kernel.UUID
	OccurredAt time.Time
}

// OrderEventPublisher hands events to a broker. Callers treat failures as
// non-fatal; the transition is already durable.
type OrderEventPublisher interface {
	PublishStatusChanged(ctx context.Context, event OrderStatusChanged) error
}
