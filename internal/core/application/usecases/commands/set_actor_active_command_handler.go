package commands

import (
	"context"
	"errors"
	"log/slog"

	"repair/internal/pkg/errs"
)

// SetActorActiveCommandHandler is an administrator-only operation. Disabled
// actors are rejected on their next request.
type SetActorActiveCommandHandler struct {
	uowFactory ActorUoWFactory
	log        *slog.Logger
}

func NewSetActorActiveCommandHandler(uowFactory ActorUoWFactory, log *slog.Logger) SetActorActiveCommandHandler {
	return SetActorActiveCommandHandler{uowFactory: uowFactory, log: log.With("component", "set_actor_active")}
}

func (h SetActorActiveCommandHandler) Handle(ctx context.Context, command SetActorActiveCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	p := command.Principal()
	if !p.IsAdmin() {
		return errs.NewForbiddenError("change user status")
	}
	if !command.Active() && p.ActorID().IsEqual(command.ActorID()) {
		return errs.NewConflictErrorWithCause("user", errors.New("administrators cannot disable themselves"))
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ActorRepository()
	a, err := repo.Get(ctx, command.ActorID())
	if err != nil {
		return err
	}
	a.SetActive(command.Active())
	if err = repo.Update(ctx, a); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "user status changed", "actor_id", a.ID().String(), "active", a.IsActive())
	return nil
}
