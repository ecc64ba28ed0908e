package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

const (
	MaxSubcategoryLength = 100
	MaxDescriptionLength = 2000
	MaxJustificationLen  = 1000
)

// ErrOrderIsNotConstructed is returned for an Order built without NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// Details are the client-supplied attributes of a new order.
type Details struct {
	Category      kernel.Category
	Subcategory   string
	Description   string
	PaymentMethod PaymentMethod
	PriceLimit    *float64
}

// Order is the aggregate root of the repair lifecycle.
//
// Invariants:
//   - status only moves forward along the lifecycle graph
//   - receivedAt is set exactly when the order enters received, deliveredAt when it enters delivered
//   - price_proposed always carries a proposed price
//   - once assigned, the service changes only through an override
//
// version is the optimistic-lock counter loaded from storage; repositories
// write only when the stored version still matches it.
type Order struct {
	id            kernel.UUID
	number        string
	clientID      kernel.UUID
	serviceID     *kernel.UUID
	receivePVZID  kernel.UUID
	deliveryPVZID kernel.UUID
	details       Details

	status             Status
	proposedPrice      *float64
	finalPrice         *float64
	priceJustification *string

	createdAt   time.Time
	updatedAt   time.Time
	receivedAt  *time.Time
	deliveredAt *time.Time

	version int

	guard guard.ConstructorGuard
}

// NewOrder creates an order in the created status. Checking that both pickup
// points exist and are active is the caller's job; the aggregate cannot see them.
//
// Example:
//
//	number, _ := order.GenerateNumber(now)
//	o, err := order.NewOrder(kernel.NewUUID(), number, clientID, receiveID, deliveryID, order.Details{
//	    Category:      kernel.CategoryShoes,
//	    Description:   "heel came off",
//	    PaymentMethod: order.PaymentCash,
//	}, now)
func NewOrder(
	id kernel.UUID,
	number string,
	clientID kernel.UUID,
	receivePVZID kernel.UUID,
	deliveryPVZID kernel.UUID,
	details Details,
	now time.Time,
) (*Order, error) {
	now = now.UTC()
	o := &Order{
		status:    StatusCreated,
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setClientID(clientID),
		o.setPickupPoints(receivePVZID, deliveryPVZID),
		o.setDetails(details),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot is the persisted state of an order.
type Snapshot struct {
	ID                 kernel.UUID
	Number             string
	ClientID           kernel.UUID
	ServiceID          *kernel.UUID
	ReceivePVZID       kernel.UUID
	DeliveryPVZID      kernel.UUID
	Details            Details
	Status             Status
	ProposedPrice      *float64
	FinalPrice         *float64
	PriceJustification *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ReceivedAt         *time.Time
	DeliveredAt        *time.Time
	Version            int
}

// RestoreOrder rebuilds an order from storage.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		serviceID:          s.ServiceID,
		proposedPrice:      s.ProposedPrice,
		finalPrice:         s.FinalPrice,
		priceJustification: s.PriceJustification,
		createdAt:          s.CreatedAt.UTC(),
		updatedAt:          s.UpdatedAt.UTC(),
		receivedAt:         s.ReceivedAt,
		deliveredAt:        s.DeliveredAt,
		version:            s.Version,
		guard:              guard.NewConstructorGuard(),
	}

	var statusErr error
	if statusErr = s.Status.Validate(); statusErr == nil {
		o.status = s.Status
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setNumber(s.Number),
		o.setClientID(s.ClientID),
		o.setPickupPoints(s.ReceivePVZID, s.DeliveryPVZID),
		o.setDetails(s.Details),
		statusErr,
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate reports whether the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

func (o *Order) ID() kernel.UUID { return o.id }

func (o *Order) Number() string { return o.number }

func (o *Order) ClientID() kernel.UUID { return o.clientID }

// ServiceID returns the assigned service profile or nil.
func (o *Order) ServiceID() *kernel.UUID { return o.serviceID }

func (o *Order) ReceivePVZID() kernel.UUID { return o.receivePVZID }

func (o *Order) DeliveryPVZID() kernel.UUID { return o.deliveryPVZID }

func (o *Order) Details() Details { return o.details }

func (o *Order) Status() Status { return o.status }

func (o *Order) ProposedPrice() *float64 { return o.proposedPrice }

func (o *Order) FinalPrice() *float64 { return o.finalPrice }

func (o *Order) PriceJustification() *string { return o.priceJustification }

func (o *Order) CreatedAt() time.Time { return o.createdAt }

func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

func (o *Order) ReceivedAt() *time.Time { return o.receivedAt }

func (o *Order) DeliveredAt() *time.Time { return o.deliveredAt }

// Version is the optimistic-lock counter this instance was loaded with.
func (o *Order) Version() int { return o.version }

// IsServicedBy reports whether serviceID is the assigned service.
func (o *Order) IsServicedBy(serviceID kernel.UUID) bool {
	return o.serviceID != nil && o.serviceID.IsEqual(serviceID)
}

// Transition moves the order to target. It rejects terminal orders, edges
// that are not in the graph and payload fields the edge does not accept, in
// that order, and leaves the order untouched on any error.
//
// Example:
//
//	payload, _ := order.NewPayload(map[string]any{"proposed_price": 2500.0})
//	err := o.Transition(order.StatusPriceProposed, payload, time.Now())
func (o *Order) Transition(target Status, payload Payload, now time.Time) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(o.status, target)
	}

	next, err := o.status.TransitionTo(target)
	if err != nil {
		return err
	}

	if err = payload.ValidateFor(target); err != nil {
		return err
	}

	if next == StatusDiagnosing && o.serviceID == nil {
		return errs.NewValueIsRequiredErrorWithCause("service_id",
			errors.New("a service must be assigned before diagnosing"))
	}

	if next == StatusPriceProposed && payload.PriceJustification() != nil &&
		len(*payload.PriceJustification()) > MaxJustificationLen {
		return errs.NewValueIsOutOfRangeError(string(FieldPriceJustification),
			len(*payload.PriceJustification()), 0, MaxJustificationLen)
	}

	now = now.UTC()
	switch next { //nolint:exhaustive // only these edges carry data or timestamps
	case StatusReceived:
		o.receivedAt = &now
	case StatusPriceProposed:
		o.proposedPrice = payload.ProposedPrice()
		o.priceJustification = payload.PriceJustification()
	case StatusConfirmed:
		if payload.FinalPrice() != nil {
			o.finalPrice = payload.FinalPrice()
		} else {
			o.finalPrice = o.proposedPrice
		}
	case StatusDelivered:
		o.deliveredAt = &now
	}

	o.status = next
	o.updatedAt = now
	return nil
}

// ClaimService assigns serviceID to an unassigned order that is waiting for
// a service. This is how a service takes an order.
func (o *Order) ClaimService(serviceID kernel.UUID, now time.Time) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	if o.serviceID != nil {
		return errs.NewConflictErrorWithCause("service_id", errors.New("order already has a service"))
	}
	if o.status != StatusSentToService {
		return errs.NewConflictErrorWithCause("status",
			fmt.Errorf("order in %s cannot be claimed, it must be %s", o.status, StatusSentToService))
	}
	o.serviceID = &serviceID
	o.updatedAt = now.UTC()
	return nil
}

// OverrideService sets or replaces the service of a non-terminal order.
func (o *Order) OverrideService(serviceID kernel.UUID, now time.Time) error {
	if err := serviceID.Validate(); err != nil {
		return err
	}
	if o.status.IsTerminal() {
		return errs.NewConflictErrorWithCause("status", fmt.Errorf("order is %s", o.status))
	}
	o.serviceID = &serviceID
	o.updatedAt = now.UTC()
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if err := ValidateNumber(number); err != nil {
		return err
	}
	o.number = number
	return nil
}

func (o *Order) setClientID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("client_id", err)
	}
	o.clientID = id
	return nil
}

func (o *Order) setPickupPoints(receive, delivery kernel.UUID) error {
	var problems []error
	if err := receive.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("receive_pvz_id", err))
	}
	if err := delivery.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("delivery_pvz_id", err))
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.receivePVZID = receive
	o.deliveryPVZID = delivery
	return nil
}

func (o *Order) setDetails(d Details) error {
	d.Subcategory = strings.TrimSpace(d.Subcategory)
	d.Description = strings.TrimSpace(d.Description)

	var problems []error
	if err := d.Category.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := d.PaymentMethod.Validate(); err != nil {
		problems = append(problems, err)
	}
	if len(d.Subcategory) > MaxSubcategoryLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("subcategory", len(d.Subcategory), 0, MaxSubcategoryLength))
	}
	if d.Description == "" {
		problems = append(problems, errs.NewValueIsRequiredError("description"))
	} else if len(d.Description) > MaxDescriptionLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("description", len(d.Description), 1, MaxDescriptionLength))
	}
	if d.PriceLimit != nil {
		if err := ValidatePrice("price_limit", *d.PriceLimit); err != nil {
			problems = append(problems, err)
		}
	}
	if err := errors.Join(problems...); err != nil {
		return err
	}
	o.details = d
	return nil
}
