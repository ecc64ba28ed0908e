package ports

import (
	"context"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
)

// ActorRepository persists actors. Phone numbers are unique.
type ActorRepository interface {
	Add(ctx context.Context, aggregate *actor.Actor) error
	Update(ctx context.Context, aggregate *actor.Actor) error
	Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error)
	// GetByPhone returns errs.ErrObjectNotFound when nobody registered the number.
	GetByPhone(ctx context.Context, phone kernel.PhoneNumber) (*actor.Actor, error)
}
