package pickuppointrepo

import (
	"context"

	"repair/internal/adapters/out/gormdb/dberr"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/pickuppoint"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormPickupPointRepository implements ports.PickupPointRepository.
type GormPickupPointRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormPickupPointRepository(db *gorm.DB, tracker aggregateTracker) *GormPickupPointRepository {
	return &GormPickupPointRepository{db: db, tracker: tracker}
}

func (r *GormPickupPointRepository) Add(ctx context.Context, aggregate *pickuppoint.PickupPoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("pickup point", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPickupPointRepository) Update(ctx context.Context, aggregate *pickuppoint.PickupPoint) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&PickupPointDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "owner_id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Wrap("pickup point", result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("pickup point", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPickupPointRepository) Get(ctx context.Context, id kernel.UUID) (*pickuppoint.PickupPoint, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto PickupPointDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("pickup point", id.String(), err)
	}
	return toDomain(dto)
}

func (r *GormPickupPointRepository) GetByOwner(ctx context.Context, ownerID kernel.UUID) (*pickuppoint.PickupPoint, error) {
	if err := ownerID.Validate(); err != nil {
		return nil, err
	}

	var dto PickupPointDTO
	err := r.db.WithContext(ctx).Order("created_at").First(&dto, "owner_id = ?", ownerID.Bytes()).Error
	if err != nil {
		return nil, dberr.NotFound("pickup point", "owner "+ownerID.String(), err)
	}
	return toDomain(dto)
}
