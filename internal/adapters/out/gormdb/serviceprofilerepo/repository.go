package serviceprofilerepo

import (
	"context"

	"repair/internal/adapters/out/gormdb/dberr"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/serviceprofile"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormServiceProfileRepository implements ports.ServiceProfileRepository.
type GormServiceProfileRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormServiceProfileRepository(db *gorm.DB, tracker aggregateTracker) *GormServiceProfileRepository {
	return &GormServiceProfileRepository{db: db, tracker: tracker}
}

func (r *GormServiceProfileRepository) Add(ctx context.Context, aggregate *serviceprofile.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("service profile", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormServiceProfileRepository) Update(ctx context.Context, aggregate *serviceprofile.Profile) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ProfileDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "owner_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Wrap("service profile", result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("service profile", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormServiceProfileRepository) Get(ctx context.Context, id kernel.UUID) (*serviceprofile.Profile, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("service profile", id.String(), err)
	}
	return toDomain(dto)
}

func (r *GormServiceProfileRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*serviceprofile.Profile, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto ProfileDTO
	err := r.db.WithContext(ctx).Order("created_at").First(&dto, "owner_id = ?", ownerID.Bytes()).Error
	if err != nil {
		return nil, dberr.NotFound("service profile", "owner "+ownerID.String(), err)
	}
	return toDomain(dto)
}

func (r *GormServiceProfileRepository) AddOffering(ctx context.Context, offering *serviceprofile.Offering) error {
	if err := offering.Validate(); err != nil {
		return err
	}

	dto := offeringFromDomain(offering)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("offering", err)
	}
	return nil
}

func (r *GormServiceProfileRepository) UpdateOffering(ctx context.Context, offering *serviceprofile.Offering) error {
	if err := offering.Validate(); err != nil {
		return err
	}

	dto := offeringFromDomain(offering)
	result := r.db.WithContext(ctx).Model(&OfferingDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "service_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Wrap("offering", result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("offering", offering.ID().String(), gorm.ErrRecordNotFound)
	}
	return nil
}

// GetOffering only finds offerings that belong to serviceID.
func (r *GormServiceProfileRepository) GetOffering(
	ctx context.Context,
	serviceID, offeringID kernel.UUID,
) (*serviceprofile.Offering, error) {
	if err := offeringID.Validate(); err != nil {
		return nil, err
	}

	var dto OfferingDTO
	err := r.db.WithContext(ctx).
		First(&dto, "id = ? AND service_id = ?", offeringID.Bytes(), serviceID.Bytes()).Error
	if err != nil {
		return nil, dberr.NotFound("offering", offeringID.String(), err)
	}
	return offeringToDomain(dto)
}
