package gormdb_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"repair/internal/adapters/out/gormdb"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/core/domain/model/pickuppoint"
	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"

	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

var now = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

// RepositorySuite runs against any migrated database. Each test starts
// from empty tables.
type RepositorySuite struct {
	suite.Suite
	db      *gorm.DB
	factory *gormdb.GormUnitOfWorkFactory
}

func (s *RepositorySuite) SetupTest() {
	for _, table := range []string{
		"reviews", "service_offerings", "service_profiles", "pickup_points", "order_photos", "orders", "actors",
	} {
		s.Require().NoError(s.db.Exec("DELETE FROM " + table).Error)
	}
	s.factory = gormdb.NewGormUnitOfWorkFactory(s.db, 5*time.Second)
}

// inTx runs fn in its own committed unit of work.
func (s *RepositorySuite) inTx(fn func(uow ports.UnitOfWork) error) error {
	ctx := context.Background()
	uow := s.factory.Create()
	s.Require().NoError(uow.Begin(ctx))
	defer func() { _ = uow.Rollback(ctx) }()

	if err := fn(uow); err != nil {
		return err
	}
	return uow.Commit(ctx)
}

func newTestOrder(t *testing.T, number string) *order.Order {
	t.Helper()
	limit := 3000.0
	o, err := order.NewOrder(kernel.NewUUID(), number, kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(),
		order.Details{
			Category:      kernel.CategoryShoes,
			Subcategory:   "boots",
			Description:   "sole replacement",
			PaymentMethod: order.PaymentCash,
			PriceLimit:    &limit,
		}, now)
	require.NoError(t, err)
	return o
}

func (s *RepositorySuite) TestOrder_RoundTrip() {
	ctx := context.Background()
	o := newTestOrder(s.T(), "ORD-20250301-00000001")
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, o)
	}))

	var loaded *order.Order
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		var err error
		loaded, err = uow.OrderRepository().Get(ctx, o.ID())
		return err
	}))

	s.Equal(o.Number(), loaded.Number())
	s.Equal(order.StatusCreated, loaded.Status())
	s.Equal(kernel.CategoryShoes, loaded.Details().Category)
	s.Equal(order.PaymentCash, loaded.Details().PaymentMethod)
	s.InDelta(3000.0, *loaded.Details().PriceLimit, 1e-9)
	s.True(o.ClientID().IsEqual(loaded.ClientID()))
	s.Nil(loaded.ServiceID())
	s.Equal(0, loaded.Version())
}

func (s *RepositorySuite) TestOrder_GetUnknown() {
	err := s.inTx(func(uow ports.UnitOfWork) error {
		_, err := uow.OrderRepository().Get(context.Background(), kernel.NewUUID())
		return err
	})

	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RepositorySuite) TestOrder_DuplicateNumberIsConflict() {
	ctx := context.Background()
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, newTestOrder(s.T(), "ORD-20250301-0000000A"))
	}))

	err := s.inTx(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, newTestOrder(s.T(), "ORD-20250301-0000000A"))
	})

	s.Require().ErrorIs(err, errs.ErrConflict)
}

func (s *RepositorySuite) TestOrder_UpdateIsCompareAndSwap() {
	ctx := context.Background()
	o := newTestOrder(s.T(), "ORD-20250301-000000BB")
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Add(ctx, o)
	}))

	load := func() *order.Order {
		var loaded *order.Order
		s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
			var err error
			loaded, err = uow.OrderRepository().Get(ctx, o.ID())
			return err
		}))
		return loaded
	}
	first, second := load(), load()
	s.Require().NoError(first.Transition(order.StatusReceived, order.EmptyPayload(), now.Add(time.Minute)))
	s.Require().NoError(second.Transition(order.StatusReceived, order.EmptyPayload(), now.Add(2*time.Minute)))

	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Update(ctx, first)
	}))
	err := s.inTx(func(uow ports.UnitOfWork) error {
		return uow.OrderRepository().Update(ctx, second)
	})
	s.Require().ErrorIs(err, errs.ErrConflict)

	stored := load()
	s.Equal(order.StatusReceived, stored.Status())
	s.Equal(1, stored.Version())
	s.Require().NotNil(stored.ReceivedAt())
	s.True(now.Add(time.Minute).Equal(*stored.ReceivedAt()))
}

func (s *RepositorySuite) TestOrder_RollbackDiscardsWrites() {
	ctx := context.Background()
	o := newTestOrder(s.T(), "ORD-20250301-000000CC")

	err := s.inTx(func(uow ports.UnitOfWork) error {
		if err := uow.OrderRepository().Add(ctx, o); err != nil {
			return err
		}
		return fmt.Errorf("abort")
	})
	s.Require().EqualError(err, "abort")

	err = s.inTx(func(uow ports.UnitOfWork) error {
		_, err := uow.OrderRepository().Get(ctx, o.ID())
		return err
	})
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RepositorySuite) TestOrder_AddPhoto() {
	ctx := context.Background()
	o := newTestOrder(s.T(), "ORD-20250301-000000DD")
	photo, err := order.NewPhoto(kernel.NewUUID(), o.ID(), order.PhotoStageInitial, "https://cdn.example/a.jpg", now)
	s.Require().NoError(err)

	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		if err := uow.OrderRepository().Add(ctx, o); err != nil {
			return err
		}
		return uow.OrderRepository().AddPhoto(ctx, photo)
	}))

	var count int64
	s.Require().NoError(s.db.Table("order_photos").Where("order_id = ?", o.ID().Bytes()).Count(&count).Error)
	s.Equal(int64(1), count)
}

func (s *RepositorySuite) TestActor_PhoneIsUnique() {
	ctx := context.Background()
	phone, err := kernel.NewPhoneNumber("89123456789")
	s.Require().NoError(err)
	a, err := actor.NewActor(kernel.NewUUID(), phone, actor.RoleClient, now)
	s.Require().NoError(err)
	twin, err := actor.NewActor(kernel.NewUUID(), phone, actor.RoleClient, now)
	s.Require().NoError(err)

	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error { return uow.ActorRepository().Add(ctx, a) }))
	err = s.inTx(func(uow ports.UnitOfWork) error { return uow.ActorRepository().Add(ctx, twin) })
	s.Require().ErrorIs(err, errs.ErrConflict)

	a.SetActive(false)
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error { return uow.ActorRepository().Update(ctx, a) }))

	var loaded *actor.Actor
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		loaded, err = uow.ActorRepository().GetByPhone(ctx, phone)
		return err
	}))
	s.True(loaded.ID().IsEqual(a.ID()))
	s.False(loaded.IsActive())
	s.Equal(actor.RoleClient, loaded.Role())
}

func (s *RepositorySuite) TestPickupPoint_RoundTrip() {
	ctx := context.Background()
	loc, err := kernel.NewGeoPoint(59.93, 30.31)
	s.Require().NoError(err)
	operator, err := kernel.NewPhoneNumber("9001234567")
	s.Require().NoError(err)
	p, err := pickuppoint.NewPickupPoint(kernel.NewUUID(), kernel.NewUUID(), pickuppoint.Profile{
		Name:          "Nevsky",
		Address:       "Nevsky pr. 1",
		Location:      loc,
		OperatorPhone: &operator,
		Accepts:       []kernel.Category{kernel.CategoryClothes},
	}, now)
	s.Require().NoError(err)

	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error { return uow.PickupPointRepository().Add(ctx, p) }))
	p.SetActive(false, now.Add(time.Hour))
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error { return uow.PickupPointRepository().Update(ctx, p) }))

	var loaded *pickuppoint.PickupPoint
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		loaded, err = uow.PickupPointRepository().GetByOwner(ctx, p.OwnerID())
		return err
	}))
	s.False(loaded.IsActive())
	s.True(loaded.Accepts(kernel.CategoryClothes))
	s.False(loaded.Accepts(kernel.CategoryTech))
	s.Require().NotNil(loaded.Profile().OperatorPhone)
	s.True(operator.IsEqual(*loaded.Profile().OperatorPhone))
	s.InDelta(59.93, loaded.Profile().Location.Lat(), 1e-9)
}

func (s *RepositorySuite) TestServiceProfile_RatingAndOfferings() {
	ctx := context.Background()
	p, err := serviceprofile.NewProfile(kernel.NewUUID(), kernel.NewUUID(), serviceprofile.Company{
		Name:         "Fix-It",
		ActivityType: "repair",
	}, now)
	s.Require().NoError(err)
	offering, err := serviceprofile.NewOffering(kernel.NewUUID(), p.ID(), serviceprofile.OfferingDetails{
		Name:         "Diagnostics",
		DurationDays: 1,
	}, now)
	s.Require().NoError(err)

	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		if err := uow.ServiceProfileRepository().Add(ctx, p); err != nil {
			return err
		}
		return uow.ServiceProfileRepository().AddOffering(ctx, offering)
	}))

	s.Require().NoError(p.AddRating(4, now))
	s.Require().NoError(p.AddRating(5, now))
	offering.Deactivate()
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		if err := uow.ServiceProfileRepository().Update(ctx, p); err != nil {
			return err
		}
		return uow.ServiceProfileRepository().UpdateOffering(ctx, offering)
	}))

	var loaded *serviceprofile.Profile
	var loadedOffering *serviceprofile.Offering
	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error {
		if loaded, err = uow.ServiceProfileRepository().Get(ctx, p.ID()); err != nil {
			return err
		}
		loadedOffering, err = uow.ServiceProfileRepository().GetOffering(ctx, p.ID(), offering.ID())
		return err
	}))
	s.InDelta(4.5, loaded.AverageRating(), 1e-9)
	s.Equal(2, loaded.TotalReviews())
	s.False(loadedOffering.IsActive())

	err = s.inTx(func(uow ports.UnitOfWork) error {
		_, err := uow.ServiceProfileRepository().GetOffering(ctx, kernel.NewUUID(), offering.ID())
		return err
	})
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *RepositorySuite) TestReview_OnePerOrder() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	review := func() *serviceprofile.Review {
		r, err := serviceprofile.NewReview(kernel.NewUUID(), orderID, kernel.NewUUID(), kernel.NewUUID(), 5, "", now)
		s.Require().NoError(err)
		return r
	}

	s.Require().NoError(s.inTx(func(uow ports.UnitOfWork) error { return uow.ReviewRepository().Add(ctx, review()) }))
	err := s.inTx(func(uow ports.UnitOfWork) error { return uow.ReviewRepository().Add(ctx, review()) })

	s.Require().ErrorIs(err, errs.ErrConflict)
}
