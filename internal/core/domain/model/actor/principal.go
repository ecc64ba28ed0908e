package actor

import (
	"repair/internal/core/domain/model/kernel"
)

// Principal is an authenticated actor together with its affiliation: the
// pickup point it operates (role pvz) or the service profile it owns
// (role service). Either affiliation may be absent, e.g. a pvz actor that
// has not registered its point yet.
type Principal struct {
	actorID       kernel.UUID
	phone         kernel.PhoneNumber
	role          Role
	pickupPointID *kernel.UUID
	serviceID     *kernel.UUID
}

// NewPrincipal captures a freshly loaded actor and its affiliations.
// Affiliations that do not match the role are dropped.
func NewPrincipal(a *Actor, pickupPointID, serviceID *kernel.UUID) (Principal, error) {
	if err := a.Validate(); err != nil {
		return Principal{}, err
	}
	if err := a.EnsureCanAuthenticate(); err != nil {
		return Principal{}, err
	}

	p := Principal{
		actorID: a.ID(),
		phone:   a.Phone(),
		role:    a.Role(),
	}
	if a.Role() == RolePVZ {
		p.pickupPointID = pickupPointID
	}
	if a.Role() == RoleService {
		p.serviceID = serviceID
	}
	return p, nil
}

func (p Principal) ActorID() kernel.UUID { return p.actorID }

func (p Principal) Phone() kernel.PhoneNumber { return p.phone }

func (p Principal) Role() Role { return p.role }

// PickupPointID returns the operated pickup point, if any.
func (p Principal) PickupPointID() (kernel.UUID, bool) {
	if p.pickupPointID == nil {
		return kernel.UUID{}, false
	}
	return *p.pickupPointID, true
}

// ServiceID returns the owned service profile, if any.
func (p Principal) ServiceID() (kernel.UUID, bool) {
	if p.serviceID == nil {
		return kernel.UUID{}, false
	}
	return *p.serviceID, true
}

// IsAdmin is a shortcut used by catalog operations.
func (p Principal) IsAdmin() bool {
	return p.role == RoleAdmin
}

// Validate rejects the zero Principal.
func (p Principal) Validate() error {
	if err := p.actorID.Validate(); err != nil {
		return err
	}
	return p.role.Validate()
}
