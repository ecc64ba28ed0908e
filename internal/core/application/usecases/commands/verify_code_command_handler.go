package commands

import (
	"context"
	"crypto/subtle"
	"errors"
	"log/slog"
	"time"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"
)

var (
	// ErrCodeNotFound covers absent, expired and already used codes.
	ErrCodeNotFound = errs.NewUnauthenticatedError(errs.ReasonCodeNotFound, "code not found or expired")
	// ErrCodeMismatch means a code existed but was different. It is consumed anyway.
	ErrCodeMismatch = errs.NewUnauthenticatedError(errs.ReasonCodeMismatch, "code does not match")
)

// VerifyCodeCommandHandler consumes the stored code, finds or registers the
// actor and issues a session.
type VerifyCodeCommandHandler struct {
	store      ports.CodeStore
	uowFactory ActorUoWFactory
	issuer     ports.TokenIssuer
	log        *slog.Logger
}

func NewVerifyCodeCommandHandler(
	store ports.CodeStore,
	uowFactory ActorUoWFactory,
	issuer ports.TokenIssuer,
	log *slog.Logger,
) VerifyCodeCommandHandler {
	return VerifyCodeCommandHandler{
		store:      store,
		uowFactory: uowFactory,
		issuer:     issuer,
		log:        log.With("component", "verify_code"),
	}
}

// Handle returns ErrCodeNotFound, ErrCodeMismatch or actor.ErrAccountDisabled
// for the expected failures. A code is single use whatever the outcome.
func (h VerifyCodeCommandHandler) Handle(ctx context.Context, command VerifyCodeCommand) (ports.Session, error) {
	if err := command.Validate(); err != nil {
		return ports.Session{}, err
	}

	stored, ok, err := h.store.Take(ctx, CodeKey(command.Phone()))
	if err != nil {
		return ports.Session{}, err
	}
	if !ok {
		return ports.Session{}, ErrCodeNotFound
	}
	if subtle.ConstantTimeCompare([]byte(stored), []byte(command.Code())) != 1 {
		h.log.InfoContext(ctx, "code mismatch", "phone", command.Phone().Masked())
		return ports.Session{}, ErrCodeMismatch
	}

	a, err := h.findOrRegister(ctx, command.Phone())
	if err != nil {
		return ports.Session{}, err
	}
	if err = a.EnsureCanAuthenticate(); err != nil {
		return ports.Session{}, err
	}

	return h.issuer.Issue(a.Phone())
}

func (h VerifyCodeCommandHandler) findOrRegister(ctx context.Context, phone kernel.PhoneNumber) (*actor.Actor, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ActorRepository()
	existing, err := repo.GetByPhone(ctx, phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, errs.ErrObjectNotFound) {
		return nil, err
	}

	created, err := actor.NewActor(kernel.NewUUID(), phone, actor.RoleClient, time.Now())
	if err != nil {
		return nil, err
	}
	if err = repo.Add(ctx, created); err != nil {
		return nil, err
	}
	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	h.log.InfoContext(ctx, "actor registered", "actor_id", created.ID().String(), "phone", phone.Masked())
	return created, nil
}
