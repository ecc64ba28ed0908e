package queries

import (
	"context"
	"time"

	"repair/internal/core/domain/model/order"
	"repair/internal/core/domain/services"
	"repair/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetOrderQueryHandler struct {
	db     *gorm.DB
	policy services.OrderAccessPolicy
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db, policy: services.NewOrderAccessPolicy()}
}

// Handle returns errs.ErrObjectNotFound for an unknown order and
// errs.ErrForbidden for an order outside the caller's scope.
func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (OrderView, error) {
	if err := query.Validate(); err != nil {
		return OrderView{}, err
	}

	db := h.db.WithContext(ctx)
	id := query.OrderID()

	var row orderRow
	if err := db.Raw("SELECT "+orderColumns+" FROM orders WHERE id = ?", id.Bytes()).
		Row().Scan(row.scanTargets()...); err != nil {
		if isNoRows(err) {
			return OrderView{}, errs.NewObjectNotFoundError("order", id.String())
		}
		return OrderView{}, err
	}
	o, err := row.toOrder()
	if err != nil {
		return OrderView{}, err
	}
	if err = h.policy.AuthorizeView(query.Principal(), o); err != nil {
		return OrderView{}, err
	}

	view := orderViewOf(o)
	view.Photos, err = h.photos(ctx, id.Bytes())
	if err != nil {
		return OrderView{}, err
	}
	return view, nil
}

func (h GetOrderQueryHandler) photos(ctx context.Context, orderID uuid.UUID) ([]PhotoView, error) {
	var rows []struct {
		ID        uuid.UUID
		Stage     string
		URL       string `gorm:"column:url"`
		CreatedAt time.Time
	}
	if err := h.db.WithContext(ctx).Raw(`
		SELECT id, stage, url, created_at
		FROM order_photos
		WHERE order_id = ?
		ORDER BY created_at, id
	`, orderID).Scan(&rows).Error; err != nil {
		return nil, err
	}

	photos := make([]PhotoView, 0, len(rows))
	for _, r := range rows {
		stage, err := order.ParsePhotoStage(r.Stage)
		if err != nil {
			return nil, err
		}
		ids, err := uuids(r.ID)
		if err != nil {
			return nil, err
		}
		photos = append(photos, PhotoView{ID: ids[0], Stage: stage, URL: r.URL, CreatedAt: r.CreatedAt})
	}
	return photos, nil
}
