package queries

import (
	"errors"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

const (
	// DefaultNearbyRadiusKm applies when a nearby search names no radius.
	DefaultNearbyRadiusKm = 5.0
	MaxRadiusKm           = 1000.0
)

var (
	ErrListPickupPointsQueryIsNotConstructed = errors.New(
		"ListPickupPointsQuery must be created via NewListPickupPointsQuery constructor",
	)
	ErrGetPickupPointQueryIsNotConstructed = errors.New(
		"GetPickupPointQuery must be created via NewGetPickupPointQuery constructor",
	)
)

// PickupPointView is a pickup point as shown in the catalog. DistanceKm is
// set when the query had an origin.
type PickupPointView struct {
	ID            kernel.UUID
	OwnerID       kernel.UUID
	Name          string
	Address       string
	Location      kernel.GeoPoint
	WorkingHours  string
	OperatorName  string
	OperatorPhone *string
	Accepts       []kernel.Category
	Active        bool
	DistanceKm    *float64
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// ListPickupPointsQuery lists active pickup points. With an origin the
// result is sorted by distance and, when a radius is given, cut at it.
type ListPickupPointsQuery struct {
	category *kernel.Category
	origin   *kernel.GeoPoint
	radiusKm *float64

	guard guard.ConstructorGuard
}

func NewListPickupPointsQuery(
	category *kernel.Category,
	origin *kernel.GeoPoint,
	radiusKm *float64,
) (ListPickupPointsQuery, error) {
	var problems []error
	if category != nil {
		problems = append(problems, category.Validate())
	}
	if origin != nil {
		problems = append(problems, origin.Validate())
	}
	if radiusKm != nil {
		if origin == nil {
			problems = append(problems, errs.NewValueIsRequiredErrorWithCause("lat/lon",
				errors.New("a radius needs an origin")))
		}
		if *radiusKm <= 0 || *radiusKm > MaxRadiusKm {
			problems = append(problems, errs.NewValueIsOutOfRangeError("radius_km", *radiusKm, 0, MaxRadiusKm))
		}
	}
	if err := errors.Join(problems...); err != nil {
		return ListPickupPointsQuery{}, err
	}
	return ListPickupPointsQuery{
		category: category,
		origin:   origin,
		radiusKm: radiusKm,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

// NewNearbyPickupPointsQuery searches around origin, DefaultNearbyRadiusKm
// unless radiusKm says otherwise.
func NewNearbyPickupPointsQuery(
	origin kernel.GeoPoint,
	radiusKm *float64,
	category *kernel.Category,
) (ListPickupPointsQuery, error) {
	if radiusKm == nil {
		r := DefaultNearbyRadiusKm
		radiusKm = &r
	}
	return NewListPickupPointsQuery(category, &origin, radiusKm)
}

func (q ListPickupPointsQuery) Validate() error {
	return q.guard.Validate(ErrListPickupPointsQueryIsNotConstructed)
}

func (q ListPickupPointsQuery) Category() *kernel.Category { return q.category }

func (q ListPickupPointsQuery) Origin() *kernel.GeoPoint { return q.origin }

func (q ListPickupPointsQuery) RadiusKm() *float64 { return q.radiusKm }

type GetPickupPointQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetPickupPointQuery(id kernel.UUID) (GetPickupPointQuery, error) {
	if err := id.Validate(); err != nil {
		return GetPickupPointQuery{}, err
	}
	return GetPickupPointQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetPickupPointQuery) Validate() error {
	return q.guard.Validate(ErrGetPickupPointQueryIsNotConstructed)
}

func (q GetPickupPointQuery) ID() kernel.UUID { return q.id }
