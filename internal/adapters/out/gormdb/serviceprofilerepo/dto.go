// Package serviceprofilerepo persists service profiles and their offerings.
package serviceprofilerepo

import (
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/serviceprofile"

	"github.com/google/uuid"
)

// ProfileDTO is a row of the service_profiles table.
type ProfileDTO struct {
	ID                 uuid.UUID `gorm:"type:uuid;primaryKey"`
	OwnerID            uuid.UUID `gorm:"type:uuid;not null;index"`
	CompanyName        string    `gorm:"size:200;not null"`
	INN                string    `gorm:"column:inn;size:12"`
	ActivityType       string    `gorm:"size:100;not null;index"`
	Description        string    `gorm:"type:text"`
	Phone              *string   `gorm:"size:32"`
	Email              string    `gorm:"size:254"`
	BankAccount        string    `gorm:"size:20"`
	BankBIK            string    `gorm:"column:bank_bik;size:9"`
	VerificationStatus string    `gorm:"size:16;not null;index"`
	AverageRating      float64   `gorm:"not null;default:0;index"`
	TotalReviews       int       `gorm:"not null;default:0"`
	CreatedAt          time.Time `gorm:"not null;autoCreateTime:false"`
	UpdatedAt          time.Time `gorm:"not null;autoUpdateTime:false"`
}

func (ProfileDTO) TableName() string {
	return "service_profiles"
}

// OfferingDTO is a row of the service_offerings table.
type OfferingDTO struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey"`
	ServiceID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name         string    `gorm:"size:200;not null"`
	Price        *float64
	DurationDays int       `gorm:"not null"`
	Description  string    `gorm:"type:text"`
	Active       bool      `gorm:"not null;index"`
	CreatedAt    time.Time `gorm:"not null;autoCreateTime:false"`
}

func (OfferingDTO) TableName() string {
	return "service_offerings"
}

func fromDomain(p *serviceprofile.Profile) ProfileDTO {
	c := p.Company()
	dto := ProfileDTO{
		ID:                 p.ID().Bytes(),
		OwnerID:            p.OwnerID().Bytes(),
		CompanyName:        c.Name,
		INN:                c.INN,
		ActivityType:       c.ActivityType,
		Description:        c.Description,
		Email:              c.Email,
		BankAccount:        c.BankAccount,
		BankBIK:            c.BankBIK,
		VerificationStatus: p.Verification().String(),
		AverageRating:      p.AverageRating(),
		TotalReviews:       p.TotalReviews(),
		CreatedAt:          p.CreatedAt(),
		UpdatedAt:          p.UpdatedAt(),
	}
	if c.Phone != nil {
		phone := c.Phone.String()
		dto.Phone = &phone
	}
	return dto
}

func toDomain(dto ProfileDTO) (*serviceprofile.Profile, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	ownerID, err := kernel.UUIDFromBytes(dto.OwnerID[:])
	if err != nil {
		return nil, err
	}
	verification, err := serviceprofile.ParseVerificationStatus(dto.VerificationStatus)
	if err != nil {
		return nil, err
	}

	company := serviceprofile.Company{
		Name:         dto.CompanyName,
		INN:          dto.INN,
		ActivityType: dto.ActivityType,
		Description:  dto.Description,
		Email:        dto.Email,
		BankAccount:  dto.BankAccount,
		BankBIK:      dto.BankBIK,
	}
	if dto.Phone != nil {
		phone, phoneErr := kernel.NewPhoneNumber(*dto.Phone)
		if phoneErr != nil {
			return nil, phoneErr
		}
		company.Phone = &phone
	}

	return serviceprofile.RestoreProfile(id, ownerID, company, verification,
		dto.AverageRating, dto.TotalReviews, dto.CreatedAt, dto.UpdatedAt)
}

func offeringFromDomain(o *serviceprofile.Offering) OfferingDTO {
	details := o.Details()
	return OfferingDTO{
		ID:           o.ID().Bytes(),
		ServiceID:    o.ServiceID().Bytes(),
		Name:         details.Name,
		Price:        details.Price,
		DurationDays: details.DurationDays,
		Description:  details.Description,
		Active:       o.IsActive(),
		CreatedAt:    o.CreatedAt(),
	}
}

func offeringToDomain(dto OfferingDTO) (*serviceprofile.Offering, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	serviceID, err := kernel.UUIDFromBytes(dto.ServiceID[:])
	if err != nil {
		return nil, err
	}
	return serviceprofile.RestoreOffering(id, serviceID, serviceprofile.OfferingDetails{
		Name:         dto.Name,
		Price:        dto.Price,
		DurationDays: dto.DurationDays,
		Description:  dto.Description,
	}, dto.Active, dto.CreatedAt)
}
