package queries_test

import (
	"time"

	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"
)

type orderWorld struct {
	client, otherClient, admin       actor.Principal
	receivePVZ, deliveryPVZ, idlePVZ actor.Principal
	service, otherService            actor.Principal
	first, second, foreign           *order.Order
}

// seedOrderWorld creates three orders: first and second belong to client,
// foreign to otherClient; only first is assigned to service.
func (s *QuerySuite) seedOrderWorld() orderWorld {
	var w orderWorld
	clientActor := s.seedActor(actor.RoleClient, true)
	otherActor := s.seedActor(actor.RoleClient, true)
	w.client = s.principal(clientActor, nil, nil)
	w.otherClient = s.principal(otherActor, nil, nil)
	w.admin = s.principal(s.seedActor(actor.RoleAdmin, true), nil, nil)

	receiveID, deliveryID, serviceID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()
	w.receivePVZ = s.principal(s.seedActor(actor.RolePVZ, true), &receiveID, nil)
	w.deliveryPVZ = s.principal(s.seedActor(actor.RolePVZ, true), &deliveryID, nil)
	w.idlePVZ = s.principal(s.seedActor(actor.RolePVZ, true), nil, nil)
	w.service = s.principal(s.seedActor(actor.RoleService, true), nil, &serviceID)
	w.otherService = s.principal(s.seedActor(actor.RoleService, true), nil, ptr(kernel.NewUUID()))

	base := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	w.first = s.seedOrder(clientActor.ID(), receiveID, deliveryID, &serviceID, order.StatusDiagnosing, base)
	w.second = s.seedOrder(clientActor.ID(), receiveID, receiveID, nil, order.StatusCreated, base.Add(time.Hour))
	w.foreign = s.seedOrder(otherActor.ID(), kernel.NewUUID(), deliveryID, nil, order.StatusCreated, base.Add(2*time.Hour))
	return w
}

func (s *QuerySuite) listOrders(p actor.Principal, status *order.Status) []kernel.UUID {
	query, err := queries.NewListOrdersQuery(p, status)
	s.Require().NoError(err)
	views, err := queries.NewListOrdersQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().NoError(err)
	out := make([]kernel.UUID, len(views))
	for i, v := range views {
		out[i] = v.ID
	}
	return out
}

func (s *QuerySuite) TestListOrders_ScopeByRole() {
	w := s.seedOrderWorld()

	s.Equal(ids(w.second, w.first), s.listOrders(w.client, nil), "newest first")
	s.Equal(ids(w.foreign), s.listOrders(w.otherClient, nil))
	s.Equal(ids(w.second, w.first), s.listOrders(w.receivePVZ, nil))
	s.Equal(ids(w.foreign, w.first), s.listOrders(w.deliveryPVZ, nil))
	s.Equal(ids(w.first), s.listOrders(w.service, nil))
	s.Empty(s.listOrders(w.otherService, nil))
	s.Empty(s.listOrders(w.idlePVZ, nil), "a pvz actor without a point sees nothing")
	s.Equal(ids(w.foreign, w.second, w.first), s.listOrders(w.admin, nil))
}

func (s *QuerySuite) TestListOrders_StatusFilterAppliesInsideScope() {
	w := s.seedOrderWorld()

	s.Equal(ids(w.second), s.listOrders(w.client, ptr(order.StatusCreated)))
	s.Equal(ids(w.foreign, w.second), s.listOrders(w.admin, ptr(order.StatusCreated)))
	s.Empty(s.listOrders(w.service, ptr(order.StatusCreated)))
}

func (s *QuerySuite) TestListOrders_MapsColumns() {
	w := s.seedOrderWorld()

	query, err := queries.NewListOrdersQuery(w.service, nil)
	s.Require().NoError(err)
	views, err := queries.NewListOrdersQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().NoError(err)
	s.Require().Len(views, 1)

	v := views[0]
	s.Equal(w.first.Number(), v.Number)
	s.Equal(order.StatusDiagnosing, v.Status)
	s.Equal(kernel.CategoryClothes, v.Category)
	s.Equal(order.PaymentCash, v.PaymentMethod)
	s.Require().NotNil(v.ServiceID)
	sid, _ := w.service.ServiceID()
	s.True(v.ServiceID.IsEqual(sid))
	s.Nil(v.ReceivedAt)
}

func (s *QuerySuite) TestGetOrder_WithPhotos() {
	w := s.seedOrderWorld()
	taken := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	for i, stage := range []order.PhotoStage{order.PhotoStageReceived, order.PhotoStageInitial} {
		photo, err := order.NewPhoto(kernel.NewUUID(), w.first.ID(), stage, "https://cdn.example.com/a.jpg",
			taken.Add(time.Duration(i)*time.Minute))
		s.Require().NoError(err)
		s.inTx(func(uow ports.UnitOfWork) error { return uow.OrderRepository().AddPhoto(s.ctx, photo) })
	}

	query, err := queries.NewGetOrderQuery(w.client, w.first.ID())
	s.Require().NoError(err)
	view, err := queries.NewGetOrderQueryHandler(s.db).Handle(s.ctx, query)
	s.Require().NoError(err)

	s.True(view.ID.IsEqual(w.first.ID()))
	s.Require().Len(view.Photos, 2)
	s.Equal(order.PhotoStageReceived, view.Photos[0].Stage)
	s.Equal(order.PhotoStageInitial, view.Photos[1].Stage)
}

func (s *QuerySuite) TestGetOrder_ForeignAndMissing() {
	w := s.seedOrderWorld()
	handler := queries.NewGetOrderQueryHandler(s.db)

	query, err := queries.NewGetOrderQuery(w.otherClient, w.first.ID())
	s.Require().NoError(err)
	_, err = handler.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrForbidden)

	query, err = queries.NewGetOrderQuery(w.admin, kernel.NewUUID())
	s.Require().NoError(err)
	_, err = handler.Handle(s.ctx, query)
	s.Require().ErrorIs(err, errs.ErrObjectNotFound)
}
