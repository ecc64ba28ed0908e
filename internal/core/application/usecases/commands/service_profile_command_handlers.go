package commands

import (
	"context"
	"log/slog"
	"time"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/pkg/errs"
)

// CreateServiceProfileCommandHandler registers a service profile in the
// pending verification state. A service actor owns at most one profile.
type CreateServiceProfileCommandHandler struct {
	uowFactory ServiceProfileUoWFactory
	log        *slog.Logger
}

func NewCreateServiceProfileCommandHandler(
	uowFactory ServiceProfileUoWFactory,
	log *slog.Logger,
) CreateServiceProfileCommandHandler {
	return CreateServiceProfileCommandHandler{uowFactory: uowFactory, log: log.With("component", "create_service_profile")}
}

func (h CreateServiceProfileCommandHandler) Handle(ctx context.Context, command CreateServiceProfileCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	p := command.Principal()
	if p.Role() != actor.RoleService && !p.IsAdmin() {
		return errs.NewForbiddenError("create service profile")
	}
	ownerID := resolveOwner(p, command.OwnerID())

	profile, err := serviceprofile.NewProfile(command.ID(), ownerID, command.Company(), time.Now())
	if err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ServiceProfileRepository()
	_, lookupErr := repo.GetByOwner(ctx, ownerID)
	if err = ensureNoneOwned(lookupErr, "service profile"); err != nil {
		return err
	}
	if err = repo.Add(ctx, profile); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "service profile created", "service_id", profile.ID().String(), "owner_id", ownerID.String())
	return nil
}

// SetVerificationCommandHandler is the administrator's verdict on a profile.
type SetVerificationCommandHandler struct {
	uowFactory ServiceProfileUoWFactory
	log        *slog.Logger
}

func NewSetVerificationCommandHandler(uowFactory ServiceProfileUoWFactory, log *slog.Logger) SetVerificationCommandHandler {
	return SetVerificationCommandHandler{uowFactory: uowFactory, log: log.With("component", "set_verification")}
}

func (h SetVerificationCommandHandler) Handle(ctx context.Context, command SetVerificationCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}
	if !command.Principal().IsAdmin() {
		return errs.NewForbiddenError("verify service")
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ServiceProfileRepository()
	profile, err := repo.Get(ctx, command.ServiceID())
	if err != nil {
		return err
	}
	if err = profile.SetVerification(command.Verification(), time.Now()); err != nil {
		return err
	}
	if err = repo.Update(ctx, profile); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "service verification changed",
		"service_id", profile.ID().String(), "verification", profile.Verification().String())
	return nil
}

type AddOfferingCommandHandler struct {
	uowFactory ServiceProfileUoWFactory
	log        *slog.Logger
}

func NewAddOfferingCommandHandler(uowFactory ServiceProfileUoWFactory, log *slog.Logger) AddOfferingCommandHandler {
	return AddOfferingCommandHandler{uowFactory: uowFactory, log: log.With("component", "add_offering")}
}

func (h AddOfferingCommandHandler) Handle(ctx context.Context, command AddOfferingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ServiceProfileRepository()
	profile, err := repo.Get(ctx, command.ServiceID())
	if err != nil {
		return err
	}
	if err = ensureOwnerOrAdmin(command.Principal(), profile.OwnerID(), "add offering"); err != nil {
		return err
	}

	offering, err := serviceprofile.NewOffering(command.OfferingID(), profile.ID(), command.Details(), time.Now())
	if err != nil {
		return err
	}
	if err = repo.AddOffering(ctx, offering); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "offering added", "service_id", profile.ID().String(), "offering_id", offering.ID().String())
	return nil
}

type DeactivateOfferingCommandHandler struct {
	uowFactory ServiceProfileUoWFactory
	log        *slog.Logger
}

func NewDeactivateOfferingCommandHandler(
	uowFactory ServiceProfileUoWFactory,
	log *slog.Logger,
) DeactivateOfferingCommandHandler {
	return DeactivateOfferingCommandHandler{uowFactory: uowFactory, log: log.With("component", "deactivate_offering")}
}

func (h DeactivateOfferingCommandHandler) Handle(ctx context.Context, command DeactivateOfferingCommand) error {
	if err := command.Validate(); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}
	defer func() {
		_ = uow.Rollback(ctx)
	}()

	repo := uow.ServiceProfileRepository()
	profile, err := repo.Get(ctx, command.ServiceID())
	if err != nil {
		return err
	}
	if err = ensureOwnerOrAdmin(command.Principal(), profile.OwnerID(), "deactivate offering"); err != nil {
		return err
	}

	offering, err := repo.GetOffering(ctx, profile.ID(), command.OfferingID())
	if err != nil {
		return err
	}
	offering.Deactivate()
	if err = repo.UpdateOffering(ctx, offering); err != nil {
		return err
	}
	if err = uow.Commit(ctx); err != nil {
		return err
	}

	h.log.InfoContext(ctx, "offering deactivated", "offering_id", offering.ID().String())
	return nil
}
