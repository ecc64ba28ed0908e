package serviceprofile

import (
	"errors"
	"strings"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

const (
	MaxOfferingNameLength = 200
	MaxDurationDays       = 365
)

// ErrOfferingIsNotConstructed is returned for an Offering built without a constructor.
var ErrOfferingIsNotConstructed = errors.New("Offering must be created via NewOffering constructor")

// OfferingDetails carries the fields of a new offering. A nil price means
// "price on request".
type OfferingDetails struct {
	Name         string
	Price        *float64
	DurationDays int
	Description  string
}

// Offering is one line of a service's price list. Offerings are never
// deleted, only deactivated.
type Offering struct {
	id        kernel.UUID
	serviceID kernel.UUID
	details   OfferingDetails
	active    bool
	createdAt time.Time

	guard guard.ConstructorGuard
}

func NewOffering(id, serviceID kernel.UUID, details OfferingDetails, now time.Time) (*Offering, error) {
	return RestoreOffering(id, serviceID, details, true, now)
}

func RestoreOffering(id, serviceID kernel.UUID, details OfferingDetails, active bool, createdAt time.Time) (*Offering, error) {
	o := &Offering{
		active:    active,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	var problems []error
	if err := id.Validate(); err != nil {
		problems = append(problems, err)
	}
	if err := serviceID.Validate(); err != nil {
		problems = append(problems, errs.NewValueIsRequiredErrorWithCause("service_id", err))
	}

	details.Name = strings.TrimSpace(details.Name)
	details.Description = strings.TrimSpace(details.Description)
	problems = append(problems, requiredText("name", details.Name, MaxOfferingNameLength))
	if details.Price != nil {
		if err := order.ValidatePrice("price", *details.Price); err != nil {
			problems = append(problems, err)
		}
	}
	if details.DurationDays < 1 || details.DurationDays > MaxDurationDays {
		problems = append(problems, errs.NewValueIsOutOfRangeError("duration_days", details.DurationDays, 1, MaxDurationDays))
	}
	if len(details.Description) > MaxDescriptionLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("description", len(details.Description), 0, MaxDescriptionLength))
	}

	if err := errors.Join(problems...); err != nil {
		return nil, err
	}
	o.id = id
	o.serviceID = serviceID
	o.details = details
	return o, nil
}

func (o *Offering) Validate() error {
	if o == nil {
		return ErrOfferingIsNotConstructed
	}
	return o.guard.Validate(ErrOfferingIsNotConstructed)
}

func (o *Offering) ID() kernel.UUID { return o.id }

func (o *Offering) ServiceID() kernel.UUID { return o.serviceID }

func (o *Offering) Details() OfferingDetails { return o.details }

func (o *Offering) IsActive() bool { return o.active }

func (o *Offering) CreatedAt() time.Time { return o.createdAt }

// Deactivate hides the offering from the price list.
func (o *Offering) Deactivate() {
	o.active = false
}
