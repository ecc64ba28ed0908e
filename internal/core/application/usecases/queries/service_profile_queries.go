package queries

import (
	"errors"
	"strings"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

var (
	ErrListServiceProfilesQueryIsNotConstructed = errors.New(
		"ListServiceProfilesQuery must be created via NewListServiceProfilesQuery constructor",
	)
	ErrGetServiceProfileQueryIsNotConstructed = errors.New(
		"GetServiceProfileQuery must be created via NewGetServiceProfileQuery constructor",
	)
	ErrListOfferingsQueryIsNotConstructed = errors.New(
		"ListOfferingsQuery must be created via NewListOfferingsQuery constructor",
	)
)

// ServiceProfileView is the public card of a service. Bank details are not
// part of it.
type ServiceProfileView struct {
	ID            kernel.UUID
	OwnerID       kernel.UUID
	CompanyName   string
	INN           string
	ActivityType  string
	Description   string
	Phone         *string
	Email         string
	Verification  serviceprofile.VerificationStatus
	AverageRating float64
	TotalReviews  int
	CreatedAt     time.Time
}

type OfferingView struct {
	ID           kernel.UUID
	ServiceID    kernel.UUID
	Name         string
	Price        *float64
	DurationDays int
	Description  string
	CreatedAt    time.Time
}

// ListServiceProfilesQuery lists services, best rated first.
type ListServiceProfilesQuery struct {
	activityType string
	verification *serviceprofile.VerificationStatus
	minRating    *float64

	guard guard.ConstructorGuard
}

func NewListServiceProfilesQuery(
	activityType string,
	verification *serviceprofile.VerificationStatus,
	minRating *float64,
) (ListServiceProfilesQuery, error) {
	var problems []error
	if verification != nil {
		problems = append(problems, verification.Validate())
	}
	if minRating != nil && (*minRating < 0 || *minRating > float64(serviceprofile.MaxRating)) {
		problems = append(problems, errs.NewValueIsOutOfRangeError("min_rating", *minRating, 0, int(serviceprofile.MaxRating)))
	}
	if err := errors.Join(problems...); err != nil {
		return ListServiceProfilesQuery{}, err
	}
	return ListServiceProfilesQuery{
		activityType: strings.TrimSpace(activityType),
		verification: verification,
		minRating:    minRating,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (q ListServiceProfilesQuery) Validate() error {
	return q.guard.Validate(ErrListServiceProfilesQueryIsNotConstructed)
}

func (q ListServiceProfilesQuery) ActivityType() string { return q.activityType }

func (q ListServiceProfilesQuery) Verification() *serviceprofile.VerificationStatus {
	return q.verification
}

func (q ListServiceProfilesQuery) MinRating() *float64 { return q.minRating }

type GetServiceProfileQuery struct {
	id kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetServiceProfileQuery(id kernel.UUID) (GetServiceProfileQuery, error) {
	if err := id.Validate(); err != nil {
		return GetServiceProfileQuery{}, err
	}
	return GetServiceProfileQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

func (q GetServiceProfileQuery) Validate() error {
	return q.guard.Validate(ErrGetServiceProfileQueryIsNotConstructed)
}

func (q GetServiceProfileQuery) ID() kernel.UUID { return q.id }

// ListOfferingsQuery lists the active offerings of one service.
type ListOfferingsQuery struct {
	serviceID kernel.UUID

	guard guard.ConstructorGuard
}

func NewListOfferingsQuery(serviceID kernel.UUID) (ListOfferingsQuery, error) {
	if err := serviceID.Validate(); err != nil {
		return ListOfferingsQuery{}, err
	}
	return ListOfferingsQuery{serviceID: serviceID, guard: guard.NewConstructorGuard()}, nil
}

func (q ListOfferingsQuery) Validate() error {
	return q.guard.Validate(ErrListOfferingsQueryIsNotConstructed)
}

func (q ListOfferingsQuery) ServiceID() kernel.UUID { return q.serviceID }
