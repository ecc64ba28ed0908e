package commands

import (
	"errors"

	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/serviceprofile"
	"repair/internal/pkg/guard"
)

var (
	ErrCreateServiceProfileCommandIsNotConstructed = errors.New(
		"CreateServiceProfileCommand must be created via NewCreateServiceProfileCommand constructor",
	)
	ErrSetVerificationCommandIsNotConstructed = errors.New(
		"SetVerificationCommand must be created via NewSetVerificationCommand constructor",
	)
	ErrAddOfferingCommandIsNotConstructed = errors.New(
		"AddOfferingCommand must be created via NewAddOfferingCommand constructor",
	)
	ErrDeactivateOfferingCommandIsNotConstructed = errors.New(
		"DeactivateOfferingCommand must be created via NewDeactivateOfferingCommand constructor",
	)
)

type CreateServiceProfileCommand struct {
	principal actor.Principal
	id        kernel.UUID
	ownerID   *kernel.UUID
	company   serviceprofile.Company

	guard guard.ConstructorGuard
}

// NewCreateServiceProfileCommand builds the command. ownerID is honoured only
// for administrators.
func NewCreateServiceProfileCommand(
	principal actor.Principal,
	id kernel.UUID,
	ownerID *kernel.UUID,
	company serviceprofile.Company,
) (CreateServiceProfileCommand, error) {
	problems := []error{principal.Validate(), id.Validate()}
	if ownerID != nil {
		problems = append(problems, ownerID.Validate())
	}
	if err := errors.Join(problems...); err != nil {
		return CreateServiceProfileCommand{}, err
	}
	return CreateServiceProfileCommand{
		principal: principal,
		id:        id,
		ownerID:   ownerID,
		company:   company,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c CreateServiceProfileCommand) Validate() error {
	return c.guard.Validate(ErrCreateServiceProfileCommandIsNotConstructed)
}

func (c CreateServiceProfileCommand) Principal() actor.Principal { return c.principal }

func (c CreateServiceProfileCommand) ID() kernel.UUID { return c.id }

func (c CreateServiceProfileCommand) OwnerID() *kernel.UUID { return c.ownerID }

func (c CreateServiceProfileCommand) Company() serviceprofile.Company { return c.company }

type SetVerificationCommand struct {
	principal    actor.Principal
	serviceID    kernel.UUID
	verification serviceprofile.VerificationStatus

	guard guard.ConstructorGuard
}

func NewSetVerificationCommand(
	principal actor.Principal,
	serviceID kernel.UUID,
	rawStatus string,
) (SetVerificationCommand, error) {
	status, statusErr := serviceprofile.ParseVerificationStatus(rawStatus)
	if err := errors.Join(principal.Validate(), serviceID.Validate(), statusErr); err != nil {
		return SetVerificationCommand{}, err
	}
	return SetVerificationCommand{
		principal:    principal,
		serviceID:    serviceID,
		verification: status,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c SetVerificationCommand) Validate() error {
	return c.guard.Validate(ErrSetVerificationCommandIsNotConstructed)
}

func (c SetVerificationCommand) Principal() actor.Principal { return c.principal }

func (c SetVerificationCommand) ServiceID() kernel.UUID { return c.serviceID }

func (c SetVerificationCommand) Verification() serviceprofile.VerificationStatus {
	return c.verification
}

type AddOfferingCommand struct {
	principal  actor.Principal
	serviceID  kernel.UUID
	offeringID kernel.UUID
	details    serviceprofile.OfferingDetails

	guard guard.ConstructorGuard
}

func NewAddOfferingCommand(
	principal actor.Principal,
	serviceID kernel.UUID,
	offeringID kernel.UUID,
	details serviceprofile.OfferingDetails,
) (AddOfferingCommand, error) {
	if err := errors.Join(principal.Validate(), serviceID.Validate(), offeringID.Validate()); err != nil {
		return AddOfferingCommand{}, err
	}
	return AddOfferingCommand{
		principal:  principal,
		serviceID:  serviceID,
		offeringID: offeringID,
		details:    details,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AddOfferingCommand) Validate() error {
	return c.guard.Validate(ErrAddOfferingCommandIsNotConstructed)
}

func (c AddOfferingCommand) Principal() actor.Principal { return c.principal }

func (c AddOfferingCommand) ServiceID() kernel.UUID { return c.serviceID }

func (c AddOfferingCommand) OfferingID() kernel.UUID { return c.offeringID }

func (c AddOfferingCommand) Details() serviceprofile.OfferingDetails { return c.details }

type DeactivateOfferingCommand struct {
	principal  actor.Principal
	serviceID  kernel.UUID
	offeringID kernel.UUID

	guard guard.ConstructorGuard
}

func NewDeactivateOfferingCommand(
	principal actor.Principal,
	serviceID kernel.UUID,
	offeringID kernel.UUID,
) (DeactivateOfferingCommand, error) {
	if err := errors.Join(principal.Validate(), serviceID.Validate(), offeringID.Validate()); err != nil {
		return DeactivateOfferingCommand{}, err
	}
	return DeactivateOfferingCommand{
		principal:  principal,
		serviceID:  serviceID,
		offeringID: offeringID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c DeactivateOfferingCommand) Validate() error {
	return c.guard.Validate(ErrDeactivateOfferingCommandIsNotConstructed)
}

func (c DeactivateOfferingCommand) Principal() actor.Principal { return c.principal }

func (c DeactivateOfferingCommand) ServiceID() kernel.UUID { return c.serviceID }

func (c DeactivateOfferingCommand) OfferingID() kernel.UUID { return c.offeringID }
