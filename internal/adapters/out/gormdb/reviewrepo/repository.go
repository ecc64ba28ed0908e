// Package reviewrepo persists reviews. The unique index on order_id enforces
// one review per order.
package reviewrepo

import (
	"context"
	"time"

	"repair/internal/adapters/out/gormdb/dberr"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/serviceprofile"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ReviewDTO is a row of the reviews table.
type ReviewDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;uniqueIndex"`
	ClientID  uuid.UUID `gorm:"type:uuid;not null;index"`
	ServiceID uuid.UUID `gorm:"type:uuid;not null;index"`
	Rating    int       `gorm:"not null"`
	Text      string    `gorm:"type:text"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (ReviewDTO) TableName() string {
	return "reviews"
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormReviewRepository implements ports.ReviewRepository.
type GormReviewRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormReviewRepository(db *gorm.DB, tracker aggregateTracker) *GormReviewRepository {
	return &GormReviewRepository{db: db, tracker: tracker}
}

func (r *GormReviewRepository) Add(ctx context.Context, review *serviceprofile.Review) error {
	if err := review.Validate(); err != nil {
		return err
	}

	dto := ReviewDTO{
		ID:        review.ID().Bytes(),
		OrderID:   review.OrderID().Bytes(),
		ClientID:  review.ClientID().Bytes(),
		ServiceID: review.ServiceID().Bytes(),
		Rating:    int(review.Rating()),
		Text:      review.Text(),
		CreatedAt: review.CreatedAt(),
	}
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return dberr.Wrap("review", err)
	}

	r.tracker.TrackAggregate(review.ID(), review)
	return nil
}
