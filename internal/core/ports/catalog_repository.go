package ports

import (
	"context"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/pickuppoint"
	"repair/internal/core/domain/model/serviceprofile"
)

type PickupPointRepository interface {
	Add(ctx context.Context, aggregate *pickuppoint.PickupPoint) error
	Update(ctx context.Context, aggregate *pickuppoint.PickupPoint) error
	Get(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error)
	// GetByOwner returns the point operated by ownerID, or errs.ErrObjectNotFound.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*pickuppoint.PickupPoint, error)
}

type ServiceProfileRepository interface {
	Add(ctx context.Context, aggregate *serviceprofile.Profile) error
	Update(ctx context.Context, aggregate *serviceprofile.Profile) error
	Get(ctx context.Context, id kernel.UUID) (*serviceprofile.Profile, error)
	// GetByOwner returns the profile owned by ownerID, or errs.ErrObjectNotFound.
	GetByOwner(ctx context.Context, ownerID kernel.UUID) (*serviceprofile.Profile, error)

	AddOffering(ctx context.Context, offering *serviceprofile.Offering) error
	UpdateOffering(ctx context.Context, offering *serviceprofile.Offering) error
	GetOffering(ctx context.Context, serviceID, offeringID kernel.UUID) (*serviceprofile.Offering, error)
}

type ReviewRepository interface {
	// Add returns errs.ErrConflict if the order was already reviewed.
	Add(ctx context.Context, review *serviceprofile.Review) error
}
