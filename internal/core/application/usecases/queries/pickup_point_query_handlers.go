package queries

import (
	"context"
	"sort"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type pickupPointRow struct {
	ID             uuid.UUID
	OwnerID        uuid.UUID
	Name           string
	Address        string
	Latitude       float64
	Longitude      float64
	WorkingHours   string
	OperatorName   string
	OperatorPhone  *string
	AcceptsTech    bool
	AcceptsClothes bool
	AcceptsShoes   bool
	Active         bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

const pickupPointColumns = `
	id, owner_id, name, address, latitude, longitude, working_hours,
	operator_name, operator_phone, accepts_tech, accepts_clothes, accepts_shoes,
	active, created_at, updated_at`

func (r pickupPointRow) toView() (PickupPointView, error) {
	ids, err := uuids(r.ID, r.OwnerID)
	if err != nil {
		return PickupPointView{}, err
	}
	location, err := kernel.NewGeoPoint(r.Latitude, r.Longitude)
	if err != nil {
		return PickupPointView{}, err
	}

	accepts := make([]kernel.Category, 0, 3)
	if r.AcceptsTech {
		accepts = append(accepts, kernel.CategoryTech)
	}
	if r.AcceptsClothes {
		accepts = append(accepts, kernel.CategoryClothes)
	}
	if r.AcceptsShoes {
		accepts = append(accepts, kernel.CategoryShoes)
	}

	return PickupPointView{
		ID:            ids[0],
		OwnerID:       ids[1],
		Name:          r.Name,
		Address:       r.Address,
		Location:      location,
		WorkingHours:  r.WorkingHours,
		OperatorName:  r.OperatorName,
		OperatorPhone: r.OperatorPhone,
		Accepts:       accepts,
		Active:        r.Active,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}, nil
}

// categoryColumn maps a category to its accepts_* flag.
func categoryColumn(c kernel.Category) string {
	switch c {
	case kernel.CategoryTech:
		return "accepts_tech"
	case kernel.CategoryClothes:
		return "accepts_clothes"
	case kernel.CategoryShoes:
		return "accepts_shoes"
	case kernel.CategoryUnknown:
	}
	return ""
}

// ListPickupPointsQueryHandler filters by category in SQL and by distance
// in memory; the catalog is small enough for that.
type ListPickupPointsQueryHandler struct {
	db *gorm.DB
}

func NewListPickupPointsQueryHandler(db *gorm.DB) ListPickupPointsQueryHandler {
	return ListPickupPointsQueryHandler{db: db}
}

func (h ListPickupPointsQueryHandler) Handle(ctx context.Context, query ListPickupPointsQuery) ([]PickupPointView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	db := h.db.WithContext(ctx).Table("pickup_points").Select(pickupPointColumns).Where("active = ?", true)
	if c := query.Category(); c != nil {
		db = db.Where(categoryColumn(*c)+" = ?", true)
	}

	var rows []pickupPointRow
	if err := db.Order("name, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]PickupPointView, 0, len(rows))
	for _, r := range rows {
		v, err := r.toView()
		if err != nil {
			return nil, err
		}
		if origin := query.Origin(); origin != nil {
			d := kernel.Distance(v.Location, *origin)
			if radius := query.RadiusKm(); radius != nil && d > *radius {
				continue
			}
			v.DistanceKm = &d
		}
		views = append(views, v)
	}

	if query.Origin() != nil {
		sort.SliceStable(views, func(i, j int) bool {
			return *views[i].DistanceKm < *views[j].DistanceKm
		})
	}
	return views, nil
}

type GetPickupPointQueryHandler struct {
	db *gorm.DB
}

func NewGetPickupPointQueryHandler(db *gorm.DB) GetPickupPointQueryHandler {
	return GetPickupPointQueryHandler{db: db}
}

func (h GetPickupPointQueryHandler) Handle(ctx context.Context, query GetPickupPointQuery) (PickupPointView, error) {
	if err := query.Validate(); err != nil {
		return PickupPointView{}, err
	}

	var rows []pickupPointRow
	if err := h.db.WithContext(ctx).
		Raw("SELECT "+pickupPointColumns+" FROM pickup_points WHERE id = ?", query.ID().Bytes()).
		Scan(&rows).Error; err != nil {
		return PickupPointView{}, err
	}
	if len(rows) == 0 {
		return PickupPointView{}, errs.NewObjectNotFoundError("pickup point", query.ID().String())
	}
	return rows[0].toView()
}
