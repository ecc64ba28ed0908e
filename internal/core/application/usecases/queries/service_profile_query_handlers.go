package queries

import (
	"context"
	"time"

	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const serviceProfileColumns = `
	id, owner_id, company_name, inn, activity_type, description, phone, email,
	verification_status, average_rating, total_reviews, created_at`

type serviceProfileRow struct {
	ID                 uuid.UUID
	OwnerID            uuid.UUID
	CompanyName        string
	INN                string `gorm:"column:inn"`
	ActivityType       string
	Description        string
	Phone              *string
	Email              string
	VerificationStatus string
	AverageRating      float64
	TotalReviews       int
	CreatedAt          time.Time
}

func (r serviceProfileRow) toView() (ServiceProfileView, error) {
	ids, err := uuids(r.ID, r.OwnerID)
	if err != nil {
		return ServiceProfileView{}, err
	}
	verification, err := serviceprofile.ParseVerificationStatus(r.VerificationStatus)
	if err != nil {
		return ServiceProfileView{}, err
	}
	return ServiceProfileView{
		ID:            ids[0],
		OwnerID:       ids[1],
		CompanyName:   r.CompanyName,
		INN:           r.INN,
		ActivityType:  r.ActivityType,
		Description:   r.Description,
		Phone:         r.Phone,
		Email:         r.Email,
		Verification:  verification,
		AverageRating: r.AverageRating,
		TotalReviews:  r.TotalReviews,
		CreatedAt:     r.CreatedAt,
	}, nil
}

type ListServiceProfilesQueryHandler struct {
	db *gorm.DB
}

func NewListServiceProfilesQueryHandler(db *gorm.DB) ListServiceProfilesQueryHandler {
	return ListServiceProfilesQueryHandler{db: db}
}

func (h ListServiceProfilesQueryHandler) Handle(
	ctx context.Context,
	query ListServiceProfilesQuery,
) ([]ServiceProfileView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("service_profiles").Select(serviceProfileColumns)
	if query.ActivityType() != "" {
		db = db.Where("activity_type = ?", query.ActivityType())
	}
	if v := query.Verification(); v != nil {
		db = db.Where("verification_status = ?", v.String())
	}
	if r := query.MinRating(); r != nil {
		db = db.Where("average_rating >= ?", *r)
	}

	var rows []serviceProfileRow
	if err := db.Order("average_rating DESC, total_reviews DESC, company_name, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]ServiceProfileView, 0, len(rows))
	for _, r := range rows {
		v, err := r.toView()
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

type GetServiceProfileQueryHandler struct {
	db *gorm.DB
}

func NewGetServiceProfileQueryHandler(db *gorm.DB) GetServiceProfileQueryHandler {
	return GetServiceProfileQueryHandler{db: db}
}

func (h GetServiceProfileQueryHandler) Handle(ctx context.Context, query GetServiceProfileQuery) (ServiceProfileView, error) {
	if err := query.Validate(); err != nil {
		return ServiceProfileView{}, err
	}

	var rows []serviceProfileRow
	if err := h.db.WithContext(ctx).
		Raw("SELECT "+serviceProfileColumns+" FROM service_profiles WHERE id = ?", query.ID().Bytes()).
		Scan(&rows).Error; err != nil {
		return ServiceProfileView{}, err
	}
	if len(rows) == 0 {
		return ServiceProfileView{}, errs.NewObjectNotFoundError("service", query.ID().String())
	}
	return rows[0].toView()
}

type ListOfferingsQueryHandler struct {
	db *gorm.DB
}

func NewListOfferingsQueryHandler(db *gorm.DB) ListOfferingsQueryHandler {
	return ListOfferingsQueryHandler{db: db}
}

func (h ListOfferingsQueryHandler) Handle(ctx context.Context, query ListOfferingsQuery) ([]OfferingView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	var rows []struct {
		ID           uuid.UUID
		ServiceID    uuid.UUID
		Name         string
		Price        *float64
		DurationDays int
		Description  string
		CreatedAt    time.Time
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT id, service_id, name, price, duration_days, description, created_at
		FROM service_offerings
		WHERE service_id = ? AND active = ?
		ORDER BY created_at, id
	`, query.ServiceID().Bytes(), true).Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]OfferingView, 0, len(rows))
	for _, r := range rows {
		ids, err := uuids(r.ID, r.ServiceID)
		if err != nil {
			return nil, err
		}
		views = append(views, OfferingView{
			ID:           ids[0],
			ServiceID:    ids[1],
			Name:         r.Name,
			Price:        r.Price,
			DurationDays: r.DurationDays,
			Description:  r.Description,
			CreatedAt:    r.CreatedAt,
		})
	}
	return views, nil
}
