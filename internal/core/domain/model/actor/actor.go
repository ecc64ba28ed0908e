package actor

import (
	"errors"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

var (
	// ErrActorIsNotConstructed is returned for an Actor built without NewActor or RestoreActor.
	ErrActorIsNotConstructed = errors.New("Actor must be created via NewActor constructor")

	// ErrAccountDisabled is returned when an inactive actor tries to authenticate.
	ErrAccountDisabled = errs.NewUnauthenticatedError(errs.ReasonAccountDisabled, "account is disabled")
)

// Actor is the aggregate root for a marketplace participant.
//
// Invariants:
//   - id and phone are set once and never change
//   - role is one of the closed Role values and immutable here
//   - an inactive actor cannot authenticate
type Actor struct {
	id        kernel.UUID
	phone     kernel.PhoneNumber
	role      Role
	active    bool
	createdAt time.Time

	guard guard.ConstructorGuard
}

// NewActor registers a new, active actor.
//
// Example:
//
//	a, err := actor.NewActor(kernel.NewUUID(), phone, actor.RoleClient, time.Now())
func NewActor(id kernel.UUID, phone kernel.PhoneNumber, role Role, now time.Time) (*Actor, error) {
	return RestoreActor(id, phone, role, true, now)
}

// RestoreActor rebuilds an actor from storage.
func RestoreActor(id kernel.UUID, phone kernel.PhoneNumber, role Role, active bool, createdAt time.Time) (*Actor, error) {
	a := &Actor{
		active:    active,
		createdAt: createdAt.UTC(),
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		a.setID(id),
		a.setPhone(phone),
		a.setRole(role),
	); err != nil {
		return nil, err
	}

	return a, nil
}

// Validate reports whether the actor was built by a constructor.
func (a *Actor) Validate() error {
	if a == nil {
		return ErrActorIsNotConstructed
	}
	return a.guard.Validate(ErrActorIsNotConstructed)
}

func (a *Actor) ID() kernel.UUID { return a.id }

func (a *Actor) Phone() kernel.PhoneNumber { return a.phone }

func (a *Actor) Role() Role { return a.role }

func (a *Actor) IsActive() bool { return a.active }

func (a *Actor) CreatedAt() time.Time { return a.createdAt }

// EnsureCanAuthenticate returns ErrAccountDisabled for inactive actors.
func (a *Actor) EnsureCanAuthenticate() error {
	if !a.active {
		return ErrAccountDisabled
	}
	return nil
}

// SetActive enables or disables the account. Takes effect on the next request
// because sessions never cache the flag.
func (a *Actor) SetActive(active bool) {
	a.active = active
}

func (a *Actor) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	a.id = id
	return nil
}

func (a *Actor) setPhone(phone kernel.PhoneNumber) error {
	if err := phone.Validate(); err != nil {
		return err
	}
	a.phone = phone
	return nil
}

func (a *Actor) setRole(role Role) error {
	if err := role.Validate(); err != nil {
		return err
	}
	a.role = role
	return nil
}
