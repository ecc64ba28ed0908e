package commands

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
)

// ensureOwnerOrAdmin lets administrators through and otherwise requires the
// caller to own the catalog entry.
func ensureOwnerOrAdmin(p actor.Principal, ownerID kernel.UUID, action string) error {
	if p.IsAdmin() || p.ActorID().IsEqual(ownerID) {
		return nil
	}
	return errs.NewForbiddenError(action)
}

// ensureNoneOwned turns a successful lookup into a conflict and a miss into nil.
func ensureNoneOwned(lookupErr error, resource string) error {
	switch {
	case lookupErr == nil:
		return errs.NewConflictErrorWithCause(resource, errors.New("owner already has one"))
	case errors.Is(lookupErr, errs.ErrObjectNotFound):
		return nil
	default:
		return lookupErr
	}
}

// resolveOwner picks the owner of a new catalog entry: administrators may act
// on behalf of someone, everyone else owns what they create.
func resolveOwner(p actor.Principal, requested *kernel.UUID) kernel.UUID {
	if p.IsAdmin() && requested != nil {
		return *requested
	}
	return p.ActorID()
}
