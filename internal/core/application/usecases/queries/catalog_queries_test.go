package queries_test

import (
	"time"

	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"
)

func (s *QuerySuite) TestNearbyPickupPoints() {
	owner := kernel.NewUUID()
	// Kremlin as origin; Arbat is ~1 km away, Sokolniki ~6 km, Zelenograd ~37 km.
	arbat := s.seedPoint(owner, "Arbat", 55.7520, 37.5927, kernel.CategoryTech)
	sokolniki := s.seedPoint(kernel.NewUUID(), "Sokolniki", 55.7890, 37.6800, kernel.CategoryTech, kernel.CategoryShoes)
	s.seedPoint(kernel.NewUUID(), "Zelenograd", 55.9825, 37.1814, kernel.CategoryTech)
	closed := s.seedPoint(kernel.NewUUID(), "Closed", 55.7530, 37.6200, kernel.CategoryTech)
	closed.SetActive(false, time.Now())
	s.inTx(func(uow ports.UnitOfWork) error { return uow.PickupPointRepository().Update(s.ctx, closed) })

	kremlin, err := kernel.NewGeoPoint(55.7520, 37.6175)
	s.Require().NoError(err)
	handler := queries.NewListPickupPointsQueryHandler(s.db)

	query, err := queries.NewNearbyPickupPointsQuery(kremlin, nil, nil)
	s.Require().NoError(err)
	views, err := handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Require().Len(views, 1, "default radius is 5 km and closed points are hidden")
	s.True(views[0].ID.IsEqual(arbat.ID()))
	s.Require().NotNil(views[0].DistanceKm)
	s.InDelta(1.6, *views[0].DistanceKm, 0.3)

	query, err = queries.NewNearbyPickupPointsQuery(kremlin, ptr(10.0), nil)
	s.Require().NoError(err)
	views, err = handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.True(views[0].ID.IsEqual(arbat.ID()), "sorted by distance")
	s.True(views[1].ID.IsEqual(sokolniki.ID()))

	query, err = queries.NewNearbyPickupPointsQuery(kremlin, ptr(10.0), ptr(kernel.CategoryShoes))
	s.Require().NoError(err)
	views, err = handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Require().Len(views, 1)
	s.Equal([]kernel.Category{kernel.CategoryTech, kernel.CategoryShoes}, views[0].Accepts)
}

func (s *QuerySuite) TestListPickupPoints_WithoutOrigin() {
	s.seedPoint(kernel.NewUUID(), "Beta", 55.0, 37.0, kernel.CategoryClothes)
	s.seedPoint(kernel.NewUUID(), "Alpha", 56.0, 38.0, kernel.CategoryTech)

	query, err := queries.NewListPickupPointsQuery(nil, nil, nil)
	s.Require().NoError(err)
	views, err := queries.NewListPickupPointsQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Require().Len(views, 2)
	s.Equal("Alpha", views[0].Name)
	s.Nil(views[0].DistanceKm)
}

func (s *QuerySuite) TestListPickupPointsQuery_Validation() {
	_, err := queries.NewListPickupPointsQuery(nil, nil, ptr(3.0))
	s.Require().ErrorIs(err, errs.ErrValueIsRequired)

	origin, err := kernel.NewGeoPoint(55, 37)
	s.Require().NoError(err)
	_, err = queries.NewNearbyPickupPointsQuery(origin, ptr(-1.0), nil)
	s.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (s *QuerySuite) TestGetPickupPoint() {
	p := s.seedPoint(kernel.NewUUID(), "Arbat", 55.75, 37.59, kernel.CategoryTech)
	handler := queries.NewGetPickupPointQueryHandler(s.db)

	query, err := queries.NewGetPickupPointQuery(p.ID())
	s.Require().NoError(err)
	view, err := handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Equal("Arbat", view.Name)
	s.True(view.OwnerID.IsEqual(p.OwnerID()))
	s.InDelta(55.75, view.Location.Lat(), 1e-9)

	query, err = queries.NewGetPickupPointQuery(kernel.NewUUID())
	s.Require().NoError(err)
	_, err = handler.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QuerySuite) TestListServiceProfiles() {
	good := s.seedProfile(kernel.NewUUID(), "Good", "shoes", serviceprofile.VerificationVerified, 4.5, 10)
	best := s.seedProfile(kernel.NewUUID(), "Best", "shoes", serviceprofile.VerificationVerified, 4.9, 3)
	pending := s.seedProfile(kernel.NewUUID(), "New", "shoes", serviceprofile.VerificationPending, 0, 0)
	s.seedProfile(kernel.NewUUID(), "Other", "electronics", serviceprofile.VerificationVerified, 5, 1)
	handler := queries.NewListServiceProfilesQueryHandler(s.db)

	list := func(activity string, v *serviceprofile.VerificationStatus, minRating *float64) []kernel.UUID {
		query, err := queries.NewListServiceProfilesQuery(activity, v, minRating)
		s.Require().NoError(err)
		views, err := handler.Handle(s.ctx, query)
		s.Require().NoError(err)
		out := make([]kernel.UUID, len(views))
		for i, v := range views {
			out[i] = v.ID
		}
		return out
	}

	s.Equal(ids(best, good, pending), list("shoes", nil, nil))
	s.Equal(ids(best, good), list("shoes", ptr(serviceprofile.VerificationVerified), nil))
	s.Equal(ids(best), list("shoes", nil, ptr(4.6)))
	s.Len(list("", nil, nil), 4)

	_, err := queries.NewListServiceProfilesQuery("", nil, ptr(7.0))
	s.Require().ErrorIs(err, errs.ErrValueIsOutOfRange)
}

func (s *QuerySuite) TestGetServiceProfileAndOfferings() {
	profile := s.seedProfile(kernel.NewUUID(), "Shoe Doctor", "shoes", serviceprofile.VerificationPending, 0, 0)

	query, err := queries.NewGetServiceProfileQuery(profile.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetServiceProfileQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Equal("Shoe Doctor", view.CompanyName)
	s.Equal(serviceprofile.VerificationPending, view.Verification)

	now := time.Now()
	kept, err := serviceprofile.NewOffering(kernel.NewUUID(), profile.ID(),
		serviceprofile.OfferingDetails{Name: "Heels", Price: ptr(800.0), DurationDays: 1}, now)
	s.Require().NoError(err)
	dropped, err := serviceprofile.NewOffering(kernel.NewUUID(), profile.ID(),
		serviceprofile.OfferingDetails{Name: "Dyeing", DurationDays: 3}, now.Add(time.Second))
	s.Require().NoError(err)
	dropped.Deactivate()
	s.inTx(func(uow ports.UnitOfWork) error {
		repo := uow.ServiceProfileRepository()
		if err := repo.AddOffering(s.ctx, kept); err != nil {
			return err
		}
		return repo.AddOffering(s.ctx, dropped)
	})

	offeringsQuery, err := queries.NewListOfferingsQuery(profile.ID())
	s.Require().NoError(err)
	offerings, err := queries.NewListOfferingsQueryHandler(s.db).Handle(s.ctx, offeringsQuery)
	s.Require().NoError(err)
	s.Require().Len(offerings, 1)
	s.Equal("Heels", offerings[0].Name)
	s.Require().NotNil(offerings[0].Price)

	missing, err := queries.NewGetServiceProfileQuery(kernel.NewUUID())
	s.Require().NoError(err)
	_, err = queries.NewGetServiceProfileQueryHandler(s.db).Handle(s.ctx, missing)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (s *QuerySuite) TestListActors() {
	admin := s.principal(s.seedActor(actor.RoleAdmin, true), nil, nil)
	client := s.seedActor(actor.RoleClient, true)
	s.seedActor(actor.RoleClient, false)
	s.seedActor(actor.RolePVZ, true)
	handler := queries.NewListActorsQueryHandler(s.db)

	query, err := queries.NewListActorsQuery(admin, ptr(actor.RoleClient))
	s.Require().NoError(err)
	views, err := handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Require().Len(views, 1, "inactive accounts are not listed")
	s.True(views[0].ID.IsEqual(client.ID()))

	query, err = queries.NewListActorsQuery(admin, nil)
	s.Require().NoError(err)
	views, err = handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Len(views, 3)

	query, err = queries.NewListActorsQuery(s.principal(client, nil, nil), nil)
	s.Require().NoError(err)
	_, err = handler.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrForbidden)
}

func (s *QuerySuite) TestGetActor_WithAffiliation() {
	operator := s.seedActor(actor.RolePVZ, true)
	point := s.seedPoint(operator.ID(), "Arbat", 55.75, 37.59, kernel.CategoryTech)
	me := s.principal(operator, nil, nil)
	handler := queries.NewGetActorQueryHandler(s.db)

	query, err := queries.NewGetActorQuery(me, operator.ID())
	s.Require().NoError(err)
	view, err := handler.Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Equal(actor.RolePVZ, view.Role)
	s.Require().NotNil(view.PickupPointID)
	s.True(view.PickupPointID.IsEqual(point.ID()))
	s.Nil(view.ServiceID)

	other := s.seedActor(actor.RoleClient, true)
	query, err = queries.NewGetActorQuery(me, other.ID())
	s.Require().NoError(err)
	_, err = handler.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrForbidden)
}
