// Package ports defines the contracts between the core and its adapters:
// repositories bound to a unit of work, the code store, the SMS notifier,
// session tokens and the order event publisher.
package ports

import (
	"context"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
)

// OrderRepository persists order aggregates and their photos.
type OrderRepository interface {
	// Add persists a new order. A duplicate order number is reported as
	// errs.ErrConflict so the caller can retry with a fresh number.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update writes the order only if the stored version still equals
	// aggregate.Version(); otherwise it returns errs.ErrConflict. This is the
	// compare-and-swap that serializes racing transitions.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get returns errs.ErrObjectNotFound for unknown ids.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)

	// AddPhoto appends a photo. Photos are never updated or removed.
	AddPhoto(ctx context.Context, photo *order.Photo) error
}
