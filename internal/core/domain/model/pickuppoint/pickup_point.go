// Package pickuppoint models PVZ: the physical points where clients hand in
// items and collect them after repair.
package pickuppoint

import (
	"errors"
	"strings"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

const (
	MaxNameLength    = 200
	MaxAddressLength = 500
)

// ErrPickupPointIsNotConstructed is returned for a PickupPoint built without a constructor.
var ErrPickupPointIsNotConstructed = errors.New("PickupPoint must be created via NewPickupPoint constructor")

// Profile holds the descriptive, editable part of a pickup point.
type Profile struct {
	Name          string
	Address       string
	Location      kernel.GeoPoint
	WorkingHours  string
	OperatorName  string
	OperatorPhone *kernel.PhoneNumber
	Accepts       []kernel.Category
}

// PickupPoint is the aggregate root for a PVZ. An operator (role pvz) owns
// at most one; administrators may register points for anyone.
type PickupPoint struct {
	id        kernel.UUID
	ownerID   kernel.UUID
	profile   Profile
	active    bool
	createdAt time.Time
	updatedAt time.Time

	guard guard.ConstructorGuard
}

// NewPickupPoint registers an active pickup point.
func NewPickupPoint(id, ownerID kernel.UUID, profile Profile, now time.Time) (*PickupPoint, error) {
	return RestorePickupPoint(id, ownerID, profile, true, now, now)
}

// RestorePickupPoint rebuilds a pickup point from storage.
func RestorePickupPoint(
	id, ownerID kernel.UUID,
	profile Profile,
	active bool,
	createdAt, updatedAt time.Time,
) (*PickupPoint, error) {
	p := &PickupPoint{
		active:    active,
		createdAt: createdAt.UTC(),
		updatedAt: updatedAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setOwnerID(ownerID),
		p.setProfile(profile),
	); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PickupPoint) Validate() error {
	if p == nil {
		return ErrPickupPointIsNotConstructed
	}
	return p.guard.Validate(ErrPickupPointIsNotConstructed)
}

func (p *PickupPoint) ID() kernel.UUID { return p.id }

func (p *PickupPoint) OwnerID() kernel.UUID { return p.ownerID }

func (p *PickupPoint) Profile() Profile { return p.profile }

func (p *PickupPoint) IsActive() bool { return p.active }

func (p *PickupPoint) CreatedAt() time.Time { return p.createdAt }

func (p *PickupPoint) UpdatedAt() time.Time { return p.updatedAt }

// Accepts reports whether items of category c can be handed in here.
func (p *PickupPoint) Accepts(c kernel.Category) bool {
	for _, accepted := range p.profile.Accepts {
		if accepted == c {
			return true
		}
	}
	return false
}

// EnsureCanServe rejects inactive points and points that do not take the
// category; orders may only reference points that pass.
func (p *PickupPoint) EnsureCanServe(paramName string, c kernel.Category) error {
	if !p.active {
		return errs.NewValueIsInvalidErrorWithCause(paramName, errors.New("pickup point is not active"))
	}
	if !p.Accepts(c) {
		return errs.NewValueIsInvalidErrorWithCause(paramName, errors.New("pickup point does not accept "+c.String()))
	}
	return nil
}

// SetActive opens or closes the point.
func (p *PickupPoint) SetActive(active bool, now time.Time) {
	p.active = active
	p.updatedAt = now.UTC()
}

// DistanceTo returns the distance in kilometres from the point to origin.
func (p *PickupPoint) DistanceTo(origin kernel.GeoPoint) float64 {
	return kernel.Distance(p.profile.Location, origin)
}

func (p *PickupPoint) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *PickupPoint) setOwnerID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("owner_id", err)
	}
	p.ownerID = id
	return nil
}

func (p *PickupPoint) setProfile(profile Profile) error {
	profile.Name = strings.TrimSpace(profile.Name)
	profile.Address = strings.TrimSpace(profile.Address)
	profile.WorkingHours = strings.TrimSpace(profile.WorkingHours)
	profile.OperatorName = strings.TrimSpace(profile.OperatorName)

	var problems []error
	problems = append(problems, requiredText("name", profile.Name, MaxNameLength))
	problems = append(problems, requiredText("address", profile.Address, MaxAddressLength))
	if err := profile.Location.Validate(); err != nil {
		problems = append(problems, err)
	}
	if profile.OperatorPhone != nil {
		if err := profile.OperatorPhone.Validate(); err != nil {
			problems = append(problems, err)
		}
	}
	seen := make(map[kernel.Category]bool, len(profile.Accepts))
	accepts := make([]kernel.Category, 0, len(profile.Accepts))
	for _, c := range profile.Accepts {
		if err := c.Validate(); err != nil {
			problems = append(problems, err)
			continue
		}
		if !seen[c] {
			seen[c] = true
			accepts = append(accepts, c)
		}
	}
	profile.Accepts = accepts

	if err := errors.Join(problems...); err != nil {
		return err
	}
	p.profile = profile
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
