package queries

import (
	"errors"
	"time"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/guard"
)

var (
	ErrGetActorQueryIsNotConstructed = errors.New(
		"GetActorQuery must be created via NewGetActorQuery constructor",
	)
	ErrListActorsQueryIsNotConstructed = errors.New(
		"ListActorsQuery must be created via NewListActorsQuery constructor",
	)
)

// ActorView is an account together with its affiliation.
type ActorView struct {
	ID            kernel.UUID
	Phone         string
	Role          actor.Role
	Active        bool
	CreatedAt     time.Time
	PickupPointID *kernel.UUID
	ServiceID     *kernel.UUID
}

// GetActorQuery reads one account. Actors may read themselves; anyone else
// needs the admin role.
type GetActorQuery struct {
	principal actor.Principal
	actorID   kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetActorQuery(principal actor.Principal, actorID kernel.UUID) (GetActorQuery, error) {
	if err := errors.Join(principal.Validate(), actorID.Validate()); err != nil {
		return GetActorQuery{}, err
	}
	return GetActorQuery{principal: principal, actorID: actorID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetActorQuery) Validate() error {
	return q.guard.Validate(ErrGetActorQueryIsNotConstructed)
}

func (q GetActorQuery) Principal() actor.Principal { return q.principal }

func (q GetActorQuery) ActorID() kernel.UUID { return q.actorID }

// ListActorsQuery lists active accounts for administrators, optionally by role.
type ListActorsQuery struct {
	principal actor.Principal
	role      *actor.Role

	guard guard.ConstructorGuard
}

func NewListActorsQuery(principal actor.Principal, role *actor.Role) (ListActorsQuery, error) {
	problems := []error{principal.Validate()}
	if role != nil {
		problems = append(problems, role.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return ListActorsQuery{}, err
	}
	return ListActorsQuery{principal: principal, role: role, guard: guard.NewConstructorGuard()}, nil
}

func (q ListActorsQuery) Validate() error {
	return q.guard.Validate(ErrListActorsQueryIsNotConstructed)
}

func (q ListActorsQuery) Principal() actor.Principal { return q.principal }

func (q ListActorsQuery) Role() *actor.Role { return q.role }
