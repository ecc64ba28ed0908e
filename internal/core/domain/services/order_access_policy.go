package services

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/pkg/errs"
)

// Actions named in Forbidden errors. They describe the attempt, never the
// failed relationship.
const (
	ActionCreateOrder     = "create order"
	ActionViewOrder       = "view order"
	ActionTransitionOrder = "transition order"
	ActionAssignService   = "assign service"
	ActionAddPhoto        = "add order photo"
	ActionLeaveReview     = "review order"
)

// OrderScope restricts order listings to what a principal may see. All
// means no restriction; otherwise each non-nil field is an OR-ed condition.
// A scope with no condition and All unset matches nothing.
type OrderScope struct {
	All           bool
	ClientID      *kernel.UUID
	ServiceID     *kernel.UUID
	PickupPointID *kernel.UUID
}

// IsEmpty reports whether the scope matches no order at all.
func (s OrderScope) IsEmpty() bool {
	return !s.All && s.ClientID == nil && s.ServiceID == nil && s.PickupPointID == nil
}

// Assignment is the outcome of an authorized service assignment.
type Assignment struct {
	ServiceID kernel.UUID
	Override  bool
}

// OrderAccessPolicy implements the role and relationship matrix.
//
// Example:
//
//	policy := services.NewOrderAccessPolicy()
//	if err := policy.AuthorizeTransition(principal, o, order.StatusReceived); err != nil {
//	    return err // errs.ErrForbidden
//	}
type OrderAccessPolicy struct{}

func NewOrderAccessPolicy() OrderAccessPolicy {
	return OrderAccessPolicy{}
}

// AuthorizeCreate allows clients, and administrators acting as clients.
func (OrderAccessPolicy) AuthorizeCreate(p actor.Principal) error {
	switch p.Role() {
	case actor.RoleClient, actor.RoleAdmin:
		return nil
	case actor.RoleUnknown, actor.RoleService, actor.RolePVZ:
		return errs.NewForbiddenError(ActionCreateOrder)
	}
	return errs.NewForbiddenError(ActionCreateOrder)
}

// AuthorizeTransition checks whether p may move o to target. It says nothing
// about whether the edge exists in the lifecycle graph.
func (OrderAccessPolicy) AuthorizeTransition(p actor.Principal, o *order.Order, target order.Status) error {
	if allowedEdge(p, o, target) {
		return nil
	}
	return errs.NewForbiddenError(ActionTransitionOrder)
}

func allowedEdge(p actor.Principal, o *order.Order, target order.Status) bool {
	switch p.Role() {
	case actor.RoleAdmin:
		return true
	case actor.RoleClient:
		switch target { //nolint:exhaustive // other targets are not client edges
		case order.StatusConfirmed, order.StatusRejected:
			return isClient(p, o)
		}
		return false
	case actor.RoleService:
		switch target { //nolint:exhaustive // other targets are not service edges
		case order.StatusDiagnosing, order.StatusPriceProposed, order.StatusInWork, order.StatusReady:
			return isAssignedService(p, o)
		}
		return false
	case actor.RolePVZ:
		switch target { //nolint:exhaustive // other targets are not pickup point edges
		case order.StatusReceived, order.StatusSentToService:
			return operates(p, o.ReceivePVZID())
		case order.StatusReadyForPickup, order.StatusDelivered:
			return operates(p, o.DeliveryPVZID())
		}
		return false
	case actor.RoleUnknown:
		return false
	}
	return false
}

// CanView reports whether p may read o.
func (OrderAccessPolicy) CanView(p actor.Principal, o *order.Order) bool {
	switch p.Role() {
	case actor.RoleAdmin:
		return true
	case actor.RoleClient:
		return isClient(p, o)
	case actor.RoleService:
		return isAssignedService(p, o)
	case actor.RolePVZ:
		return operates(p, o.ReceivePVZID()) || operates(p, o.DeliveryPVZID())
	case actor.RoleUnknown:
		return false
	}
	return false
}

// AuthorizeView is CanView as an error.
func (pol OrderAccessPolicy) AuthorizeView(p actor.Principal, o *order.Order) error {
	if pol.CanView(p, o) {
		return nil
	}
	return errs.NewForbiddenError(ActionViewOrder)
}

// ListScope returns the listing restriction for p. A pickup point operator
// sees orders where its point is either the receiving or the delivering one.
func (OrderAccessPolicy) ListScope(p actor.Principal) OrderScope {
	switch p.Role() {
	case actor.RoleAdmin:
		return OrderScope{All: true}
	case actor.RoleClient:
		id := p.ActorID()
		return OrderScope{ClientID: &id}
	case actor.RoleService:
		if id, ok := p.ServiceID(); ok {
			return OrderScope{ServiceID: &id}
		}
	case actor.RolePVZ:
		if id, ok := p.PickupPointID(); ok {
			return OrderScope{PickupPointID: &id}
		}
	case actor.RoleUnknown:
	}
	return OrderScope{}
}

// AuthorizeAssignment decides which service ends up on o. A service may only
// claim for itself, so requested must be nil or its own profile. An
// administrator must name the service and may replace an existing one.
func (OrderAccessPolicy) AuthorizeAssignment(
	p actor.Principal,
	requested *kernel.UUID,
) (Assignment, error) {
	switch p.Role() {
	case actor.RoleAdmin:
		if requested == nil {
			return Assignment{}, errs.NewValueIsRequiredError("service_id")
		}
		return Assignment{ServiceID: *requested, Override: true}, nil
	case actor.RoleService:
		own, ok := p.ServiceID()
		if !ok || (requested != nil && !requested.IsEqual(own)) {
			return Assignment{}, errs.NewForbiddenError(ActionAssignService)
		}
		return Assignment{ServiceID: own}, nil
	case actor.RoleUnknown, actor.RoleClient, actor.RolePVZ:
		return Assignment{}, errs.NewForbiddenError(ActionAssignService)
	}
	return Assignment{}, errs.NewForbiddenError(ActionAssignService)
}

var errStageMismatch = errors.New("photo stage does not match the order status")

// AuthorizePhoto checks that the stage belongs to the caller: the client
// documents the item while the order is created, the receiving point on
// intake and the delivering point on hand-over.
func (OrderAccessPolicy) AuthorizePhoto(p actor.Principal, o *order.Order, stage order.PhotoStage) error {
	switch p.Role() {
	case actor.RoleAdmin:
		return nil
	case actor.RoleClient:
		if stage != order.PhotoStageInitial || !isClient(p, o) {
			return errs.NewForbiddenError(ActionAddPhoto)
		}
		if o.Status() != order.StatusCreated {
			return errs.NewConflictErrorWithCause("stage", errStageMismatch)
		}
		return nil
	case actor.RolePVZ:
		switch stage { //nolint:exhaustive // initial photos belong to the client
		case order.PhotoStageReceived:
			if operates(p, o.ReceivePVZID()) {
				return nil
			}
		case order.PhotoStageDelivered:
			if operates(p, o.DeliveryPVZID()) {
				return nil
			}
		}
		return errs.NewForbiddenError(ActionAddPhoto)
	case actor.RoleUnknown, actor.RoleService:
		return errs.NewForbiddenError(ActionAddPhoto)
	}
	return errs.NewForbiddenError(ActionAddPhoto)
}

// AuthorizeReview lets only the order's own client review it.
func (OrderAccessPolicy) AuthorizeReview(p actor.Principal, o *order.Order) error {
	if p.Role() == actor.RoleClient && isClient(p, o) {
		return nil
	}
	return errs.NewForbiddenError(ActionLeaveReview)
}

func isClient(p actor.Principal, o *order.Order) bool {
	return o.ClientID().IsEqual(p.ActorID())
}

func isAssignedService(p actor.Principal, o *order.Order) bool {
	id, ok := p.ServiceID()
	return ok && o.IsServicedBy(id)
}

func operates(p actor.Principal, pickupPointID kernel.UUID) bool {
	id, ok := p.PickupPointID()
	return ok && id.IsEqual(pickupPointID)
}
