package queries

import (
	"context"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"

	"gorm.io/gorm"
)

var (
	// ErrInvalidToken covers bad signatures, expired tokens and foreign algorithms.
	ErrInvalidToken = errs.NewUnauthenticatedError(errs.ReasonInvalidToken, "invalid token")
	// ErrActorNotFound means the token is valid but nobody has that phone any more.
	ErrActorNotFound = errs.NewUnauthenticatedError(errs.ReasonActorNotFound, "actor not found")
)

// ResolveActorQueryHandler is the actor directory: it runs on every
// authenticated request.
type ResolveActorQueryHandler struct {
	db       *gorm.DB
	verifier ports.TokenVerifier
}

func NewResolveActorQueryHandler(db *gorm.DB, verifier ports.TokenVerifier) ResolveActorQueryHandler {
	return ResolveActorQueryHandler{db: db, verifier: verifier}
}

// Handle returns ErrInvalidToken, an expired-token error, ErrActorNotFound or
// actor.ErrAccountDisabled for the expected failures.
func (h ResolveActorQueryHandler) Handle(ctx context.Context, query ResolveActorQuery) (actor.Principal, error) {
	if err := query.Validate(); err != nil {
		return actor.Principal{}, err
	}

	phone, err := h.verifier.Verify(query.Token())
	if err != nil {
		if errs.ReasonOf(err) == errs.ReasonTokenExpired {
			return actor.Principal{}, err
		}
		return actor.Principal{}, ErrInvalidToken
	}

	var rows []actorRow
	if err = h.db.WithContext(ctx).
		Raw("SELECT id, phone, role, active, created_at FROM actors WHERE phone = ?", phone.String()).
		Scan(&rows).Error; err != nil {
		return actor.Principal{}, err
	}
	if len(rows) == 0 {
		return actor.Principal{}, ErrActorNotFound
	}

	a, err := rows[0].toActor()
	if err != nil {
		return actor.Principal{}, err
	}
	if err = a.EnsureCanAuthenticate(); err != nil {
		return actor.Principal{}, err
	}

	pvzID, serviceID, err := affiliation(ctx, h.db, a)
	if err != nil {
		return actor.Principal{}, err
	}
	return actor.NewPrincipal(a, pvzID, serviceID)
}
