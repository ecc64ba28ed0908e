package queries

import (
	"context"
	"strings"

	"repair/internal/core/domain/services"

	"gorm.io/gorm"
)

// ListOrdersQueryHandler narrows the orders table to the caller's scope
// first and applies the status filter on top.
type ListOrdersQueryHandler struct {
	db     *gorm.DB
	policy services.OrderAccessPolicy
}

func NewListOrdersQueryHandler(db *gorm.DB) ListOrdersQueryHandler {
	return ListOrdersQueryHandler{db: db, policy: services.NewOrderAccessPolicy()}
}

func (h ListOrdersQueryHandler) Handle(ctx context.Context, query ListOrdersQuery) ([]OrderView, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	views := make([]OrderView, 0)
	scope := h.policy.ListScope(query.Principal())
	if scope.IsEmpty() {
		return views, nil
	}

	var (
		where []string
		args  []any
	)
	if !scope.All {
		var visible []string
		if scope.ClientID != nil {
			visible = append(visible, "client_id = ?")
			args = append(args, scope.ClientID.Bytes())
		}
		if scope.ServiceID != nil {
			visible = append(visible, "service_id = ?")
			args = append(args, scope.ServiceID.Bytes())
		}
		if scope.PickupPointID != nil {
			visible = append(visible, "receive_pvz_id = ? OR delivery_pvz_id = ?")
			args = append(args, scope.PickupPointID.Bytes(), scope.PickupPointID.Bytes())
		}
		where = append(where, "("+strings.Join(visible, " OR ")+")")
	}
	if query.Status() != nil {
		where = append(where, "status = ?")
		args = append(args, query.Status().String())
	}

	sql := "SELECT " + orderColumns + " FROM orders"
	if len(where) > 0 {
		sql += " WHERE " + strings.Join(where, " AND ")
	}
	sql += " ORDER BY created_at DESC, id"

	rows, err := h.db.WithContext(ctx).Raw(sql, args...).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var row orderRow
		if err = rows.Scan(row.scanTargets()...); err != nil {
			return nil, err
		}
		o, convErr := row.toOrder()
		if convErr != nil {
			return nil, convErr
		}
		views = append(views, orderViewOf(o))
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}

	return views, nil
}
