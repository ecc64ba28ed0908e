// Package actorrepo persists actors.
package actorrepo

import (
	"time"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// ActorDTO is a row of the actors table. Phone holds the canonical form.
type ActorDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	Phone     string    `gorm:"size:32;not null;uniqueIndex"`
	Role      string    `gorm:"size:16;not null;index"`
	Active    bool      `gorm:"not null"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime:false"`
}

func (ActorDTO) TableName() string {
	return "actors"
}

func fromDomain(a *actor.Actor) ActorDTO {
	return ActorDTO{
		ID:        a.ID().Bytes(),
		Phone:     a.Phone().String(),
		Role:      a.Role().String(),
		Active:    a.IsActive(),
		CreatedAt: a.CreatedAt(),
	}
}

func toDomain(dto ActorDTO) (*actor.Actor, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	phone, err := kernel.NewPhoneNumber(dto.Phone)
	if err != nil {
		return nil, err
	}
	role, err := actor.ParseRole(dto.Role)
	if err != nil {
		return nil, err
	}
	return actor.RestoreActor(id, phone, role, dto.Active, dto.CreatedAt)
}
