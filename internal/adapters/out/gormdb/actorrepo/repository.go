package actorrepo

import (
	"context"

	"repair/internal/adapters/out/gormdb/dberr"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormActorRepository implements ports.ActorRepository.
type GormActorRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormActorRepository(db *gorm.DB, tracker aggregateTracker) *GormActorRepository {
	return &GormActorRepository{db: db, tracker: tracker}
}

// Add inserts a new actor. A second actor with the same phone is a Conflict.
func (r *GormActorRepository) Add(ctx context.Context, aggregate *actor.Actor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("actor phone", err)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormActorRepository) Update(ctx context.Context, aggregate *actor.Actor) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&ActorDTO{}).
		Where("id = ?", dto.ID).
		Select("*").Omit("id", "created_at").
		Updates(&dto)
	if result.Error != nil {
		return dberr.Wrap("actor", result.Error)
	}
	if result.RowsAffected == 0 {
		return dberr.NotFound("actor", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormActorRepository) Get(ctx context.Context, id kernel.UUID) (*actor.Actor, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ActorDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		return nil, dberr.NotFound("actor", id.String(), err)
	}
	return toDomain(dto)
}

func (r *GormActorRepository) GetByPhone(ctx context.Context, phone kernel.PhoneNumber) (*actor.Actor, error) {
	if err := phone.Validate(); err != nil {
		return nil, err
	}

	var dto ActorDTO
	if err := r.db.WithContext(ctx).First(&dto, "phone = ?", phone.String()).Error; err != nil {
		return nil, dberr.NotFound("actor", phone.Masked(), err)
	}
	return toDomain(dto)
}
