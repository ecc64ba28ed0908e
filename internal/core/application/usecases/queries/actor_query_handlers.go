package queries

import (
	"context"
	"time"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type actorRow struct {
	ID        uuid.UUID
	Phone     string
	Role      string
	Active    bool
	CreatedAt time.Time
}

func (r actorRow) toActor() (*actor.Actor, error) {
	ids, err := uuids(r.ID)
	if err != nil {
		return nil, err
	}
	phone, err := kernel.NewPhoneNumber(r.Phone)
	if err != nil {
		return nil, err
	}
	role, err := actor.ParseRole(r.Role)
	if err != nil {
		return nil, err
	}
	return actor.RestoreActor(ids[0], phone, role, r.Active, r.CreatedAt)
}

func actorViewOf(a *actor.Actor) ActorView {
	return ActorView{
		ID:        a.ID(),
		Phone:     a.Phone().String(),
		Role:      a.Role(),
		Active:    a.IsActive(),
		CreatedAt: a.CreatedAt(),
	}
}

// affiliation looks up what the actor operates. Roles other than pvz and
// service never have one.
func affiliation(ctx context.Context, db *gorm.DB, a *actor.Actor) (pvzID, serviceID *kernel.UUID, err error) {
	var table string
	switch a.Role() {
	case actor.RolePVZ:
		table = "pickup_points"
	case actor.RoleService:
		table = "service_profiles"
	case actor.RoleUnknown, actor.RoleClient, actor.RoleAdmin:
		return nil, nil, nil
	}

	var rows []struct{ ID uuid.UUID }
	if err = db.WithContext(ctx).
		Raw("SELECT id FROM "+table+" WHERE owner_id = ? ORDER BY created_at LIMIT 1", a.ID().Bytes()).
		Scan(&rows).Error; err != nil {
		return nil, nil, err
	}
	if len(rows) == 0 {
		return nil, nil, nil
	}
	found, err := uuids(rows[0].ID)
	if err != nil {
		return nil, nil, err
	}
	if a.Role() == actor.RolePVZ {
		return &found[0], nil, nil
	}
	return nil, &found[0], nil
}

type GetActorQueryHandler struct {
	db *gorm.DB
}

func NewGetActorQueryHandler(db *gorm.DB) GetActorQueryHandler {
	return GetActorQueryHandler{db: db}
}

func (h GetActorQueryHandler) Handle(ctx context.Context, query GetActorQuery) (ActorView, error) {
	if err := query.Validate(); err != nil {
		return ActorView{}, err
	}
	p := query.Principal()
	if !p.IsAdmin() && !p.ActorID().IsEqual(query.ActorID()) {
		return ActorView{}, errs.NewForbiddenError("view user")
	}

	var rows []actorRow
	if err := h.db.WithContext(ctx).
		Raw("SELECT id, phone, role, active, created_at FROM actors WHERE id = ?", query.ActorID().Bytes()).
		Scan(&rows).Error; err != nil {
		return ActorView{}, err
	}
	if len(rows) == 0 {
		return ActorView{}, errs.NewObjectNotFoundError("user", query.ActorID().String())
	}

	a, err := rows[0].toActor()
	if err != nil {
		return ActorView{}, err
	}
	view := actorViewOf(a)
	view.PickupPointID, view.ServiceID, err = affiliation(ctx, h.db, a)
	if err != nil {
		return ActorView{}, err
	}
	return view, nil
}

type ListActorsQueryHandler struct {
	db *gorm.DB
}

func NewListActorsQueryHandler(db *gorm.DB) ListActorsQueryHandler {
	return ListActorsQueryHandler{db: db}
}

func (h ListActorsQueryHandler) Handle(ctx context.Context, query ListActorsQuery) ([]ActorView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if !query.Principal().IsAdmin() {
		return nil, errs.NewForbiddenError("list users")
	}

	db := h.db.WithContext(ctx).Table("actors").
		Select("id, phone, role, active, created_at").
		Where("active = ?", true)
	if r := query.Role(); r != nil {
		db = db.Where("role = ?", r.String())
	}

	var rows []actorRow
	if err := db.Order("created_at, id").Scan(&rows).Error; err != nil {
		return nil, err
	}

	views := make([]ActorView, 0, len(rows))
	for _, r := range rows {
		a, err := r.toActor()
		if err != nil {
			return nil, err
		}
		views = append(views, actorViewOf(a))
	}
	return views, nil
}
