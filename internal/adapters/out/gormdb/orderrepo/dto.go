// Package orderrepo persists orders and their photos.
package orderrepo

import (
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO is a row of the orders table. Enums are stored by name.
type OrderDTO struct {
	ID            uuid.UUID  `gorm:"type:uuid;primaryKey"`
	Number        string     `gorm:"size:32;not null;uniqueIndex"`
	ClientID      uuid.UUID  `gorm:"type:uuid;not null;index"`
	ServiceID     *uuid.UUID `gorm:"type:uuid;index"`
	ReceivePVZID  uuid.UUID  `gorm:"column:receive_pvz_id;type:uuid;not null;index"`
	DeliveryPVZID uuid.UUID  `gorm:"column:delivery_pvz_id;type:uuid;not null;index"`

	Category      string `gorm:"size:16;not null"`
	Subcategory   string `gorm:"size:100"`
	Description   string `gorm:"type:text;not null"`
	PaymentMethod string `gorm:"size:16;not null"`
	PriceLimit    *float64

	Status             string `gorm:"size:32;not null;index"`
	ProposedPrice      *float64
	FinalPrice         *float64
	PriceJustification *string `gorm:"type:text"`

	CreatedAt   time.Time `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt   time.Time `gorm:"not null;autoUpdateTime:false"`
	ReceivedAt  *time.Time
	DeliveredAt *time.Time

	Version int `gorm:"not null;default:0"`
}

func (OrderDTO) TableName() string {
	return "orders"
}

// PhotoDTO is a row of the order_photos table.
type PhotoDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index"`
	Stage     string    `gorm:"size:16;not null"`
	URL       string    `gorm:"type:text;not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (PhotoDTO) TableName() string {
	return "order_photos"
}

func optionalID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	raw := id.Bytes()
	return &raw
}

func fromDomain(o *order.Order) OrderDTO {
	d := o.Details()
	return OrderDTO{
		ID:                 o.ID().Bytes(),
		Number:             o.Number(),
		ClientID:           o.ClientID().Bytes(),
		ServiceID:          optionalID(o.ServiceID()),
		ReceivePVZID:       o.ReceivePVZID().Bytes(),
		DeliveryPVZID:      o.DeliveryPVZID().Bytes(),
		Category:           d.Category.String(),
		Subcategory:        d.Subcategory,
		Description:        d.Description,
		PaymentMethod:      d.PaymentMethod.String(),
		PriceLimit:         d.PriceLimit,
		Status:             o.Status().String(),
		ProposedPrice:      o.ProposedPrice(),
		FinalPrice:         o.FinalPrice(),
		PriceJustification: o.PriceJustification(),
		CreatedAt:          o.CreatedAt(),
		UpdatedAt:          o.UpdatedAt(),
		ReceivedAt:         o.ReceivedAt(),
		DeliveredAt:        o.DeliveredAt(),
		Version:            o.Version(),
	}
}

func uuidFrom(raw uuid.UUID) (kernel.UUID, error) {
	return kernel.UUIDFromBytes(raw[:])
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	s := order.Snapshot{
		Number:             dto.Number,
		ProposedPrice:      dto.ProposedPrice,
		FinalPrice:         dto.FinalPrice,
		PriceJustification: dto.PriceJustification,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
		ReceivedAt:         dto.ReceivedAt,
		DeliveredAt:        dto.DeliveredAt,
		Version:            dto.Version,
	}

	var err error
	if s.ID, err = uuidFrom(dto.ID); err != nil {
		return nil, err
	}
	if s.ClientID, err = uuidFrom(dto.ClientID); err != nil {
		return nil, err
	}
	if s.ReceivePVZID, err = uuidFrom(dto.ReceivePVZID); err != nil {
		return nil, err
	}
	if s.DeliveryPVZID, err = uuidFrom(dto.DeliveryPVZID); err != nil {
		return nil, err
	}
	if dto.ServiceID != nil {
		serviceID, serviceErr := uuidFrom(*dto.ServiceID)
		if serviceErr != nil {
			return nil, serviceErr
		}
		s.ServiceID = &serviceID
	}

	if s.Status, err = order.ParseStatus(dto.Status); err != nil {
		return nil, err
	}
	category, err := kernel.ParseCategory(dto.Category)
	if err != nil {
		return nil, err
	}
	payment, err := order.ParsePaymentMethod(dto.PaymentMethod)
	if err != nil {
		return nil, err
	}
	s.Details = order.Details{
		Category:      category,
		Subcategory:   dto.Subcategory,
		Description:   dto.Description,
		PaymentMethod: payment,
		PriceLimit:    dto.PriceLimit,
	}

	return order.RestoreOrder(s)
}

func photoFromDomain(p *order.Photo) PhotoDTO {
	return PhotoDTO{
		ID:        p.ID().Bytes(),
		OrderID:   p.OrderID().Bytes(),
		Stage:     p.Stage().String(),
		URL:       p.URL(),
		CreatedAt: p.CreatedAt(),
	}
}
