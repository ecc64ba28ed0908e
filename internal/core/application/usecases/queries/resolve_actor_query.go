package queries

import (
	"errors"
	"strings"

	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

var ErrResolveActorQueryIsNotConstructed = errors.New(
	"ResolveActorQuery must be created via NewResolveActorQuery constructor",
)

// ResolveActorQuery turns a bearer token into the calling actor.
type ResolveActorQuery struct {
	token string

	guard guard.ConstructorGuard
}

func NewResolveActorQuery(token string) (ResolveActorQuery, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return ResolveActorQuery{}, errs.NewUnauthenticatedError(errs.ReasonMissingToken, "missing token")
	}
	return ResolveActorQuery{token: token, guard: guard.NewConstructorGuard()}, nil
}

func (q ResolveActorQuery) Validate() error {
	return q.guard.Validate(ErrResolveActorQueryIsNotConstructed)
}

func (q ResolveActorQuery) Token() string { return q.token }
