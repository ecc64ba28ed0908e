package queries

import (
	"errors"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderView is an order as returned to clients.
type OrderView struct {
	ID                 kernel.UUID
	Number             string
	ClientID           kernel.UUID
	ServiceID          *kernel.UUID
	ReceivePVZID       kernel.UUID
	DeliveryPVZID      kernel.UUID
	Category           kernel.Category
	Subcategory        string
	Description        string
	PaymentMethod      order.PaymentMethod
	PriceLimit         *float64
	Status             order.Status
	ProposedPrice      *float64
	FinalPrice         *float64
	PriceJustification *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ReceivedAt         *time.Time
	DeliveredAt        *time.Time
	Photos             []PhotoView
}

type PhotoView struct {
	ID        kernel.UUID
	Stage     order.PhotoStage
	URL       string
	CreatedAt time.Time
}

const orderColumns = `
	id, number, client_id, service_id, receive_pvz_id, delivery_pvz_id,
	category, subcategory, description, payment_method, price_limit,
	status, proposed_price, final_price, price_justification,
	created_at, updated_at, received_at, delivered_at, version`

// orderRow mirrors orderColumns.
type orderRow struct {
	ID                 uuid.UUID
	Number             string
	ClientID           uuid.UUID
	ServiceID          uuid.NullUUID
	ReceivePVZID       uuid.UUID
	DeliveryPVZID      uuid.UUID
	Category           string
	Subcategory        string
	Description        string
	PaymentMethod      string
	PriceLimit         *float64
	Status             string
	ProposedPrice      *float64
	FinalPrice         *float64
	PriceJustification *string
	CreatedAt          time.Time
	UpdatedAt          time.Time
	ReceivedAt         *time.Time
	DeliveredAt        *time.Time
	Version            int
}

func (r *orderRow) scanTargets() []any {
	return []any{
		&r.ID, &r.Number, &r.ClientID, &r.ServiceID, &r.ReceivePVZID, &r.DeliveryPVZID,
		&r.Category, &r.Subcategory, &r.Description, &r.PaymentMethod, &r.PriceLimit,
		&r.Status, &r.ProposedPrice, &r.FinalPrice, &r.PriceJustification,
		&r.CreatedAt, &r.UpdatedAt, &r.ReceivedAt, &r.DeliveredAt, &r.Version,
	}
}

// toOrder restores the aggregate so the access policy can inspect it.
func (r *orderRow) toOrder() (*order.Order, error) {
	category, categoryErr := kernel.ParseCategory(r.Category)
	payment, paymentErr := order.ParsePaymentMethod(r.PaymentMethod)
	status, statusErr := order.ParseStatus(r.Status)
	if err := errors.Join(categoryErr, paymentErr, statusErr); err != nil {
		return nil, err
	}

	var serviceID *kernel.UUID
	if r.ServiceID.Valid {
		id, err := kernel.UUIDFromBytes(r.ServiceID.UUID[:])
		if err != nil {
			return nil, err
		}
		serviceID = &id
	}
	ids, err := uuids(r.ID, r.ClientID, r.ReceivePVZID, r.DeliveryPVZID)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:            ids[0],
		Number:        r.Number,
		ClientID:      ids[1],
		ServiceID:     serviceID,
		ReceivePVZID:  ids[2],
		DeliveryPVZID: ids[3],
		Details: order.Details{
			Category:      category,
			Subcategory:   r.Subcategory,
			Description:   r.Description,
			PaymentMethod: payment,
			PriceLimit:    r.PriceLimit,
		},
		Status:             status,
		ProposedPrice:      r.ProposedPrice,
		FinalPrice:         r.FinalPrice,
		PriceJustification: r.PriceJustification,
		CreatedAt:          r.CreatedAt,
		UpdatedAt:          r.UpdatedAt,
		ReceivedAt:         r.ReceivedAt,
		DeliveredAt:        r.DeliveredAt,
		Version:            r.Version,
	})
}

func orderViewOf(o *order.Order) OrderView {
	d := o.Details()
	return OrderView{
		ID:                 o.ID(),
		Number:             o.Number(),
		ClientID:           o.ClientID(),
		ServiceID:          o.ServiceID(),
		ReceivePVZID:       o.ReceivePVZID(),
		DeliveryPVZID:      o.DeliveryPVZID(),
		Category:           d.Category,
		Subcategory:        d.Subcategory,
		Description:        d.Description,
		PaymentMethod:      d.PaymentMethod,
		PriceLimit:         d.PriceLimit,
		Status:             o.Status(),
		ProposedPrice:      o.ProposedPrice(),
		FinalPrice:         o.FinalPrice(),
		PriceJustification: o.PriceJustification(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		ReceivedAt:         o.ReceivedAt(),
		DeliveredAt:        o.DeliveredAt(),
	}
}

func uuids(raw ...uuid.UUID) ([]kernel.UUID, error) {
	out := make([]kernel.UUID, len(raw))
	for i, r := range raw {
		id, err := kernel.UUIDFromBytes(r[:])
		if err != nil {
			return nil, err
		}
		out[i] = id
	}
	return out, nil
}
