package services_test

import (
	"testing"
	"time"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/core/domain/services"
	"repair/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

type OrderAccessPolicySuite struct {
	suite.Suite

	policy services.OrderAccessPolicy
	order  *order.Order

	client, strangerClient   actor.Principal
	service, strangerService actor.Principal
	receivePVZ, deliveryPVZ  actor.Principal
	strangerPVZ, admin       actor.Principal
}

func TestOrderAccessPolicySuite(t *testing.T) {
	suite.Run(t, new(OrderAccessPolicySuite))
}

func principal(t *testing.T, role actor.Role, pvzID, serviceID *kernel.UUID) actor.Principal {
	t.Helper()
	phone, err := kernel.NewPhoneNumber("+7 912 345-67-89")
	require.NoError(t, err)
	a, err := actor.NewActor(kernel.NewUUID(), phone, role, time.Now())
	require.NoError(t, err)
	p, err := actor.NewPrincipal(a, pvzID, serviceID)
	require.NoError(t, err)
	return p
}

func ptr(id kernel.UUID) *kernel.UUID { return &id }

func (s *OrderAccessPolicySuite) SetupTest() {
	t := s.T()
	s.policy = services.NewOrderAccessPolicy()

	receiveID, deliveryID, serviceID := kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()

	s.client = principal(t, actor.RoleClient, nil, nil)
	s.strangerClient = principal(t, actor.RoleClient, nil, nil)
	s.service = principal(t, actor.RoleService, nil, ptr(serviceID))
	s.strangerService = principal(t, actor.RoleService, nil, ptr(kernel.NewUUID()))
	s.receivePVZ = principal(t, actor.RolePVZ, ptr(receiveID), nil)
	s.deliveryPVZ = principal(t, actor.RolePVZ, ptr(deliveryID), nil)
	s.strangerPVZ = principal(t, actor.RolePVZ, ptr(kernel.NewUUID()), nil)
	s.admin = principal(t, actor.RoleAdmin, nil, nil)

	o, err := order.NewOrder(kernel.NewUUID(), "ORD-20250301-0000ABCD", s.client.ActorID(), receiveID, deliveryID,
		order.Details{
			Category:      kernel.CategoryTech,
			Description:   "does not charge",
			PaymentMethod: order.PaymentCash,
		}, time.Now())
	require.NoError(t, err)
	require.NoError(t, o.Transition(order.StatusReceived, order.EmptyPayload(), time.Now()))
	require.NoError(t, o.Transition(order.StatusSentToService, order.EmptyPayload(), time.Now()))
	require.NoError(t, o.ClaimService(serviceID, time.Now()))
	s.order = o
}

func (s *OrderAccessPolicySuite) TestAuthorizeTransition_Matrix() {
	allowed := map[order.Status]actor.Principal{
		order.StatusReceived:       s.receivePVZ,
		order.StatusSentToService:  s.receivePVZ,
		order.StatusDiagnosing:     s.service,
		order.StatusPriceProposed:  s.service,
		order.StatusInWork:         s.service,
		order.StatusReady:          s.service,
		order.StatusConfirmed:      s.client,
		order.StatusRejected:       s.client,
		order.StatusReadyForPickup: s.deliveryPVZ,
		order.StatusDelivered:      s.deliveryPVZ,
	}
	everyone := []actor.Principal{
		s.client, s.strangerClient, s.service, s.strangerService,
		s.receivePVZ, s.deliveryPVZ, s.strangerPVZ,
	}

	for target, owner := range allowed {
		s.Run(target.String(), func() {
			for _, p := range everyone {
				err := s.policy.AuthorizeTransition(p, s.order, target)
				if p.ActorID().IsEqual(owner.ActorID()) {
					s.Require().NoError(err)
					continue
				}
				s.Require().ErrorIs(err, errs.ErrForbidden)
				s.Equal("forbidden: transition order", err.Error())
			}
			s.Require().NoError(s.policy.AuthorizeTransition(s.admin, s.order, target))
		})
	}
}

func (s *OrderAccessPolicySuite) TestAuthorizeTransition_ServiceWithoutProfile() {
	bare := principal(s.T(), actor.RoleService, nil, nil)

	err := s.policy.AuthorizeTransition(bare, s.order, order.StatusDiagnosing)

	s.Require().ErrorIs(err, errs.ErrForbidden)
}

func (s *OrderAccessPolicySuite) TestCanView() {
	for _, p := range []actor.Principal{s.client, s.service, s.receivePVZ, s.deliveryPVZ, s.admin} {
		s.True(s.policy.CanView(p, s.order), p.Role().String())
	}
	for _, p := range []actor.Principal{s.strangerClient, s.strangerService, s.strangerPVZ} {
		s.False(s.policy.CanView(p, s.order), p.Role().String())
		s.Require().ErrorIs(s.policy.AuthorizeView(p, s.order), errs.ErrForbidden)
	}
}

func (s *OrderAccessPolicySuite) TestListScope() {
	s.True(s.policy.ListScope(s.admin).All)

	clientScope := s.policy.ListScope(s.client)
	s.Require().NotNil(clientScope.ClientID)
	s.True(clientScope.ClientID.IsEqual(s.client.ActorID()))

	pvzScope := s.policy.ListScope(s.receivePVZ)
	s.Require().NotNil(pvzScope.PickupPointID)
	s.True(pvzScope.PickupPointID.IsEqual(s.order.ReceivePVZID()))

	s.True(s.policy.ListScope(principal(s.T(), actor.RolePVZ, nil, nil)).IsEmpty())
}

func (s *OrderAccessPolicySuite) TestAuthorizeAssignment() {
	own, _ := s.service.ServiceID()

	a, err := s.policy.AuthorizeAssignment(s.service, nil)
	s.Require().NoError(err)
	s.True(a.ServiceID.IsEqual(own))
	s.False(a.Override)

	_, err = s.policy.AuthorizeAssignment(s.service, ptr(kernel.NewUUID()))
	s.Require().ErrorIs(err, errs.ErrForbidden)

	_, err = s.policy.AuthorizeAssignment(s.client, nil)
	s.Require().ErrorIs(err, errs.ErrForbidden)

	_, err = s.policy.AuthorizeAssignment(s.admin, nil)
	s.Require().ErrorIs(err, errs.ErrValueIsRequired)

	target := kernel.NewUUID()
	a, err = s.policy.AuthorizeAssignment(s.admin, &target)
	s.Require().NoError(err)
	s.True(a.Override)
	s.True(a.ServiceID.IsEqual(target))
}

func (s *OrderAccessPolicySuite) TestAuthorizePhoto() {
	s.Require().NoError(s.policy.AuthorizePhoto(s.receivePVZ, s.order, order.PhotoStageReceived))
	s.Require().NoError(s.policy.AuthorizePhoto(s.deliveryPVZ, s.order, order.PhotoStageDelivered))
	s.Require().NoError(s.policy.AuthorizePhoto(s.admin, s.order, order.PhotoStageInitial))

	s.Require().ErrorIs(s.policy.AuthorizePhoto(s.receivePVZ, s.order, order.PhotoStageDelivered), errs.ErrForbidden)
	s.Require().ErrorIs(s.policy.AuthorizePhoto(s.service, s.order, order.PhotoStageReceived), errs.ErrForbidden)
	s.Require().ErrorIs(s.policy.AuthorizePhoto(s.strangerClient, s.order, order.PhotoStageInitial), errs.ErrForbidden)
	s.Require().ErrorIs(s.policy.AuthorizePhoto(s.client, s.order, order.PhotoStageInitial), errs.ErrConflict)
}

func (s *OrderAccessPolicySuite) TestAuthorizeCreateAndReview() {
	s.Require().NoError(s.policy.AuthorizeCreate(s.client))
	s.Require().ErrorIs(s.policy.AuthorizeCreate(s.receivePVZ), errs.ErrForbidden)

	s.Require().NoError(s.policy.AuthorizeReview(s.client, s.order))
	s.Require().ErrorIs(s.policy.AuthorizeReview(s.strangerClient, s.order), errs.ErrForbidden)
	s.Require().ErrorIs(s.policy.AuthorizeReview(s.admin, s.order), errs.ErrForbidden)
}

func TestOrderScope_IsEmpty(t *testing.T) {
	assert.True(t, services.OrderScope{}.IsEmpty())
	assert.False(t, services.OrderScope{All: true}.IsEmpty())
}
