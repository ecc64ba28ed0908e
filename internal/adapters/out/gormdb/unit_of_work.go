// Package gormdb implements storage on gorm: a unit of work bounding every
// business transaction and the repositories bound to it.
//
// Both postgres (production) and sqlite (development and tests) are
// supported. Every transaction runs under a timeout; when it expires the
// database driver rolls the transaction back and callers see
// errs.ErrUpstreamUnavailable.
//
//	factory := gormdb.NewGormUnitOfWorkFactory(db, 5*time.Second)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//	...
//	return uow.Commit(ctx)
package gormdb

import (
	"context"
	"time"

	"repair/internal/adapters/out/gormdb/actorrepo"
	"repair/internal/adapters/out/gormdb/dberr"
	"repair/internal/adapters/out/gormdb/orderrepo"
	"repair/internal/adapters/out/gormdb/pickuppointrepo"
	"repair/internal/adapters/out/gormdb/reviewrepo"
	"repair/internal/adapters/out/gormdb/serviceprofilerepo"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"

	"gorm.io/gorm"
)

// DefaultTimeout bounds a unit of work when the factory is given none.
const DefaultTimeout = 5 * time.Second

// trackedAggregate is an aggregate written during the unit of work.
type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates isolated units of work over one connection pool.
type GormUnitOfWorkFactory struct {
	db      *gorm.DB
	timeout time.Duration
}

func NewGormUnitOfWorkFactory(db *gorm.DB, timeout time.Duration) *GormUnitOfWorkFactory {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GormUnitOfWorkFactory{db: db, timeout: timeout}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		timeout:           f.timeout,
		trackedAggregates: make([]trackedAggregate, 0),
	}
}

// GormUnitOfWork is one transaction. It is not safe for concurrent use.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	timeout           time.Duration
	cancel            context.CancelFunc
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it twice is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	txCtx, cancel := context.WithTimeout(ctx, uow.timeout)
	tx := uow.db.WithContext(txCtx).Begin()
	if tx.Error != nil {
		cancel()
		return dberr.Wrap("transaction", tx.Error)
	}

	uow.tx = tx
	uow.cancel = cancel
	return nil
}

func (uow *GormUnitOfWork) Commit(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.finish()
	return dberr.Wrap("transaction", err)
}

// Rollback discards the transaction. After a successful Commit it returns
// gorm.ErrInvalidTransaction, which deferred calls ignore.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.finish()
	return err
}

func (uow *GormUnitOfWork) finish() {
	uow.tx = nil
	if uow.cancel != nil {
		uow.cancel()
		uow.cancel = nil
	}
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) ActorRepository() ports.ActorRepository {
	return actorrepo.NewGormActorRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PickupPointRepository() ports.PickupPointRepository {
	return pickuppointrepo.NewGormPickupPointRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ServiceProfileRepository() ports.ServiceProfileRepository {
	return serviceprofilerepo.NewGormServiceProfileRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ReviewRepository() ports.ReviewRepository {
	return reviewrepo.NewGormReviewRepository(uow.conn(), uow)
}

// TrackAggregate records an aggregate written by a repository of this unit.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

// TrackedCount is the number of aggregates written so far.
func (uow *GormUnitOfWork) TrackedCount() int {
	return len(uow.trackedAggregates)
}
