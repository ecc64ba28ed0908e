package commands_test

import (
	"context"
	"time"

	"repair/internal/core/application/usecases/commands"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/core/domain/model/pickuppoint"
	"repair/internal/core/ports"

	"github.com/stretchr/testify/mock"
)

type MockCodeStore struct{ mock.Mock }

func (m *MockCodeStore) Set(ctx context.Context, key, code string, ttl time.Duration) error {
	args := m.Called(ctx, key, code, ttl)
	return args.Error(0)
}

func (m *MockCodeStore) Take(ctx context.Context, key string) (string, bool, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockCodeStore) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

type MockNotifier struct{ mock.Mock }

func (m *MockNotifier) Send(ctx context.Context, phone kernel.PhoneNumber, message string) error {
	args := m.Called(ctx, phone, message)
	return args.Error(0)
}

type MockTokenIssuer struct{ mock.Mock }

func (m *MockTokenIssuer) Issue(phone kernel.PhoneNumber) (ports.Session, error) {
	args := m.Called(phone)
	return args.Get(0).(ports.Session), args.Error(1)
}

type MockEventPublisher struct{ mock.Mock }

func (m *MockEventPublisher) PublishStatusChanged(ctx context.Context, ev ports.OrderStatusChanged) error {
	args := m.Called(ctx, ev)
	return args.Error(0)
}

type MockActorRepository struct{ mock.Mock }

func (m *MockActorRepository) Add(ctx context.Context, a *actor.Actor) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActorRepository) Update(ctx context.Context, a *actor.Actor) error {
	args := m.Called(ctx, a)
	return args.Error(0)
}

func (m *MockActorRepository) Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actor.Actor), args.Error(1)
}

func (m *MockActorRepository) GetByPhone(ctx context.Context, phone kernel.PhoneNumber) (*actor.Actor, error) {
	args := m.Called(ctx, phone)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*actor.Actor), args.Error(1)
}

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) AddPhoto(ctx context.Context, p *order.Photo) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

type MockPickupPointRepository struct{ mock.Mock }

func (m *MockPickupPointRepository) Add(ctx context.Context, p *pickuppoint.PickupPoint) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPickupPointRepository) Update(ctx context.Context, p *pickuppoint.PickupPoint) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPickupPointRepository) Get(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickuppoint.PickupPoint), args.Error(1)
}

func (m *MockPickupPointRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*pickuppoint.PickupPoint, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pickuppoint.PickupPoint), args.Error(1)
}

// MockUoW satisfies every unit of work interface of the commands package.
// Repositories that a test does not set up are nil.
type MockUoW struct {
	mock.Mock

	actors   ports.ActorRepository
	orders   ports.OrderRepository
	points   ports.PickupPointRepository
	profiles ports.ServiceProfileRepository
	reviews  ports.ReviewRepository
}

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) ActorRepository() ports.ActorRepository { return m.actors }

func (m *MockUoW) OrderRepository() ports.OrderRepository { return m.orders }

func (m *MockUoW) PickupPointRepository() ports.PickupPointRepository { return m.points }

func (m *MockUoW) ServiceProfileRepository() ports.ServiceProfileRepository { return m.profiles }

func (m *MockUoW) ReviewRepository() ports.ReviewRepository { return m.reviews }

// factory adapts a constructor function to any of the UoW factory interfaces.
type factory[T any] func() T

func (f factory[T]) Create() T { return f() }

func actorFactory(uow *MockUoW) commands.ActorUoWFactory {
	return factory[commands.ActorUoW](func() commands.ActorUoW { return uow })
}

func orderFactory(uow *MockUoW) commands.OrderUoWFactory {
	return factory[commands.OrderUoW](func() commands.OrderUoW { return uow })
}

func placementFactory(uow *MockUoW) commands.OrderPlacementUoWFactory {
	return factory[commands.OrderPlacementUoW](func() commands.OrderPlacementUoW { return uow })
}

// Compile-time checks.
var (
	_ commands.ReviewUoW          = (*MockUoW)(nil)
	_ commands.AssignmentUoW      = (*MockUoW)(nil)
	_ ports.OrderRepository       = (*MockOrderRepository)(nil)
	_ ports.PickupPointRepository = (*MockPickupPointRepository)(nil)
	_ ports.CodeStore             = (*MockCodeStore)(nil)
)
