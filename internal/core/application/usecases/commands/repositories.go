// Package commands contains the operations that change state. Each command
// is validated at construction, and each handler runs inside its own unit of
// work: Begin, deferred Rollback, Commit.
package commands

import (
	"context"

	"repair/internal/core/ports"
)

// Each handler depends on the narrowest unit of work that covers the
// repositories it touches.
type (
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ActorRepoFactory interface {
		ActorRepository() ports.ActorRepository
	}

	OrderRepoFactory interface {
		OrderRepository() ports.OrderRepository
	}

	PickupPointRepoFactory interface {
		PickupPointRepository() ports.PickupPointRepository
	}

	ServiceProfileRepoFactory interface {
		ServiceProfileRepository() ports.ServiceProfileRepository
	}

	ReviewRepoFactory interface {
		ReviewRepository() ports.ReviewRepository
	}

	// ActorUoW covers sign-in and account administration.
	ActorUoW interface {
		TxManager
		ActorRepoFactory
	}

	ActorUoWFactory interface {
		Create() ActorUoW
	}

	// OrderUoW covers operations on a single order.
	OrderUoW interface {
		TxManager
		OrderRepoFactory
	}

	OrderUoWFactory interface {
		Create() OrderUoW
	}

	// OrderPlacementUoW reads pickup points while creating an order.
	OrderPlacementUoW interface {
		TxManager
		OrderRepoFactory
		PickupPointRepoFactory
	}

	OrderPlacementUoWFactory interface {
		Create() OrderPlacementUoW
	}

	// AssignmentUoW reads service profiles while assigning one to an order.
	AssignmentUoW interface {
		TxManager
		OrderRepoFactory
		ServiceProfileRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	// ReviewUoW stores a review and folds it into the service rating.
	//
	//	uow := factory.Create()
	//	if err := uow.Begin(ctx); err != nil {
	//	    return err
	//	}
	//	defer func() { _ = uow.Rollback(ctx) }()
	//	... uow.ReviewRepository().Add(ctx, review)
	//	... uow.ServiceProfileRepository().Update(ctx, profile)
	//	return uow.Commit(ctx)
	ReviewUoW interface {
		TxManager
		OrderRepoFactory
		ServiceProfileRepoFactory
		ReviewRepoFactory
	}

	ReviewUoWFactory interface {
		Create() ReviewUoW
	}

	PickupPointUoW interface {
		TxManager
		PickupPointRepoFactory
	}

	PickupPointUoWFactory interface {
		Create() PickupPointUoW
	}

	ServiceProfileUoW interface {
		TxManager
		ServiceProfileRepoFactory
	}

	ServiceProfileUoWFactory interface {
		Create() ServiceProfileUoW
	}
)
