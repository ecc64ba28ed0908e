package serviceprofile

import (
	"errors"
	"net/mail"
	"regexp"
	"strings"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

const (
	MaxCompanyNameLength  = 200
	MaxActivityTypeLength = 100
	MaxDescriptionLength  = 2000
)

var (
	// ErrProfileIsNotConstructed is returned for a Profile built without a constructor.
	ErrProfileIsNotConstructed = errors.New("Profile must be created via NewProfile constructor")

	innPattern         = regexp.MustCompile(`^(\d{10}|\d{12})$`)
	bankAccountPattern = regexp.MustCompile(`^\d{20}$`)
	bankBIKPattern     = regexp.MustCompile(`^\d{9}$`)
)

// Company is the editable description of a service.
type Company struct {
	Name         string
	INN          string
	ActivityType string
	Description  string
	Phone        *kernel.PhoneNumber
	Email        string
	BankAccount  string
	BankBIK      string
}

// Profile is the aggregate root for a service company. Rating fields change
// only through AddRating.
type Profile struct {
	id           kernel.UUID
	ownerID      kernel.UUID
	company      Company
	verification VerificationStatus
	ratingSum    float64
	totalReviews int
	createdAt    time.Time
	updatedAt    time.Time

	guard guard.ConstructorGuard
}

// NewProfile registers a profile awaiting verification.
func NewProfile(id, ownerID kernel.UUID, company Company, now time.Time) (*Profile, error) {
	return RestoreProfile(id, ownerID, company, VerificationPending, 0, 0, now, now)
}

// RestoreProfile rebuilds a profile from storage.
func RestoreProfile(
	id, ownerID kernel.UUID,
	company Company,
	verification VerificationStatus,
	averageRating float64,
	totalReviews int,
	createdAt, updatedAt time.Time,
) (*Profile, error) {
	p := &Profile{
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	var ratingErr error
	if totalReviews < 0 {
		ratingErr = errs.NewValueIsOutOfRangeError("total_reviews", totalReviews, 0, "∞")
	} else {
		p.totalReviews = totalReviews
		p.ratingSum = averageRating * float64(totalReviews)
	}

	if err := errors.Join(
		p.setID(id),
		p.setOwnerID(ownerID),
		p.setCompany(company),
		p.setVerification(verification),
		ratingErr,
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Profile) Validate() error {
	if p == nil {
		return ErrProfileIsNotConstructed
	}
	return p.guard.Validate(ErrProfileIsNotConstructed)
}

func (p *Profile) ID() kernel.UUID { return p.id }

func (p *Profile) OwnerID() kernel.UUID { return p.ownerID }

func (p *Profile) Company() Company { return p.company }

func (p *Profile) Verification() VerificationStatus { return p.verification }

func (p *Profile) TotalReviews() int { return p.totalReviews }

func (p *Profile) CreatedAt() time.Time { return p.createdAt }

func (p *Profile) UpdatedAt() time.Time { return p.updatedAt }

// AverageRating is 0 until the first review.
func (p *Profile) AverageRating() float64 {
	if p.totalReviews == 0 {
		return 0
	}
	return p.ratingSum / float64(p.totalReviews)
}

// SetVerification records the administrator's decision.
func (p *Profile) SetVerification(v VerificationStatus, now time.Time) error {
	if err := p.setVerification(v); err != nil {
		return err
	}
	p.updatedAt = now.UTC()
	return nil
}

// AddRating folds a review into the running average.
func (p *Profile) AddRating(r Rating, now time.Time) error {
	if err := r.Validate(); err != nil {
		return err
	}
	p.ratingSum += float64(r)
	p.totalReviews++
	p.updatedAt = now.UTC()
	return nil
}

func (p *Profile) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Profile) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner_id", err)
	}
	p.ownerID = id
	return nil
}

func (p *Profile) setVerification(v VerificationStatus) error {
	if err := v.Validate(); err != nil {
		return err
	}
	p.verification = v
	return nil
}

func (p *Profile) setCompany(c Company) error {
	c.Name = strings.TrimSpace(c.Name)
	c.INN = strings.TrimSpace(c.INN)
	c.ActivityType = strings.TrimSpace(c.ActivityType)
	c.Description = strings.TrimSpace(c.Description)
	c.Email = strings.TrimSpace(c.Email)
	c.BankAccount = strings.TrimSpace(c.BankAccount)
	c.BankBIK = strings.TrimSpace(c.BankBIK)

	var problems []error
	problems = append(problems,
		requiredText("company_name", c.Name, MaxCompanyNameLength),
		requiredText("activity_type", c.ActivityType, MaxActivityTypeLength),
		optionalPattern("inn", c.INN, innPattern),
		optionalPattern("bank_account", c.BankAccount, bankAccountPattern),
		optionalPattern("bank_bik", c.BankBIK, bankBIKPattern),
	)
	if len(c.Description) > MaxDescriptionLength {
		problems = append(problems, errs.NewValueIsOutOfRangeError("description", len(c.Description), 0, MaxDescriptionLength))
	}
	if c.Email != "" {
		if _, err := mail.ParseAddress(c.Email); err != nil {
			problems = append(problems, errs.NewValueIsInvalidErrorWithCause("email", err))
		}
	}
	if c.Phone != nil {
		if err := c.Phone.Validate(); err != nil {
			problems = append(problems, err)
		}
	}

	if err := errors.Join(problems...); err != nil {
		return err
	}
	p.company = c
	return nil
}

func requiredText(name, value string, maxLen int) error {
	if value == "" {
		return errs.NewValueIsRequiredError(name)
	}
	if len(value) > maxLen {
		return errs.NewValueIsOutOfRangeError(name, len(value), 1, maxLen)
	}
	return nil
}

func optionalPattern(name, value string, re *regexp.Regexp) error {
	if value == "" || re.MatchString(value) {
		return nil
	}
	return errs.NewValueIsInvalidError(name)
}
