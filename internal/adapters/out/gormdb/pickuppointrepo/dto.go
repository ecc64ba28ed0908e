// Package pickuppointrepo persists pickup points (PVZ).
package pickuppointrepo

import (
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/pickuppoint"

	"github.com/google/uuid"
)

// PickupPointDTO is a row of the pickup_points table. Accepted categories
// are spread over three flags so listings can filter on them.
type PickupPointDTO struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID        uuid.UUID `gorm:"type:uuid;not null;index"`
	Name           string    `gorm:"size:200;not null"`
	Address        string    `gorm:"size:500;not null"`
	Latitude       float64   `gorm:"not null"`
	Longitude      float64   `gorm:"not null"`
	WorkingHours   string    `gorm:"size:100"`
	OperatorName   string    `gorm:"size:200"`
	OperatorPhone  *string   `gorm:"size:32"`
	AcceptsTech    bool      `gorm:"not null"`
	AcceptsClothes bool      `gorm:"not null"`
	AcceptsShoes   bool      `gorm:"not null"`
	Active         bool      `gorm:"not null;index"`
	CreatedAt      time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt      time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (PickupPointDTO) TableName() string {
	return "pickup_points"
}

func fromDomain(p *pickuppoint.PickupPoint) PickupPointDTO {
	profile := p.Profile()
	dto := PickupPointDTO{
		ID:             p.ID().Bytes(),
		OwnerID:        p.OwnerID().Bytes(),
		Name:           profile.Name,
		Address:        profile.Address,
		Latitude:       profile.Location.Lat(),
		Longitude:      profile.Location.Lon(),
		WorkingHours:   profile.WorkingHours,
		OperatorName:   profile.OperatorName,
		AcceptsTech:    p.Accepts(kernel.CategoryTech),
		AcceptsClothes: p.Accepts(kernel.CategoryClothes),
		AcceptsShoes:   p.Accepts(kernel.CategoryShoes),
		Active:         p.IsActive(),
		CreatedAt:      p.CreatedAt(),
		UpdatedAt:      p.UpdatedAt(),
	}
	if profile.OperatorPhone != nil {
		phone := profile.OperatorPhone.String()
		dto.OperatorPhone = &phone
	}
	return dto
}

func toDomain(dto PickupPointDTO) (*pickuppoint.PickupPoint, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	location, err := kernel.NewGeoPoint(dto.Latitude, dto.Longitude)
	if err != nil {
		return nil, err
	}

	profile := pickuppoint.Profile{
		Name:         dto.Name,
		Address:      dto.Address,
		Location:     location,
		WorkingHours: dto.WorkingHours,
		OperatorName: dto.OperatorName,
	}
	if dto.OperatorPhone != nil {
		phone, phoneErr := kernel.NewPhoneNumber(*dto.OperatorPhone)
		if phoneErr != nil {
			return nil, phoneErr
		}
		profile.OperatorPhone = &phone
	}
	if dto.AcceptsTech {
		profile.Accepts = append(profile.Accepts, kernel.CategoryTech)
	}
	if dto.AcceptsClothes {
		profile.Accepts = append(profile.Accepts, kernel.CategoryClothes)
	}
	if dto.AcceptsShoes {
		profile.Accepts = append(profile.Accepts, kernel.CategoryShoes)
	}

	return pickuppoint.RestorePickupPoint(id, ownerID, profile, dto.Active, dto.CreatedAt, dto.UpdatedAt)
}
