package commands

import (
	"errors"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/guard"
)

var ErrRequestCodeCommandIsNotConstructed = errors.New(
	"RequestCodeCommand must be created via NewRequestCodeCommand constructor",
)

// RequestCodeCommand asks for a one-time code to be sent to a phone.
//
// Example:
//
//	cmd, err := commands.NewRequestCodeCommand("8 (912) 345-67-89")
//	if err != nil {
//	    return err // errs.ErrValueIsInvalid
//	}
//	err = handler.Handle(ctx, cmd)
type RequestCodeCommand struct {
	phone kernel.PhoneNumber

	guard guard.ConstructorGuard
}

// NewRequestCodeCommand normalizes the raw phone number.
func NewRequestCodeCommand(rawPhone string) (RequestCodeCommand, error) {
	phone, err := kernel.NewPhoneNumber(rawPhone)
	if err != nil {
		return RequestCodeCommand{}, err
	}
	return RequestCodeCommand{phone: phone, guard: guard.NewConstructorGuard()}, nil
}

func (c RequestCodeCommand) Validate() error {
	return c.guard.Validate(ErrRequestCodeCommandIsNotConstructed)
}

func (c RequestCodeCommand) Phone() kernel.PhoneNumber {
	return c.phone
}
