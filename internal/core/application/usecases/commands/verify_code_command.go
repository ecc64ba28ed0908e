package commands

import (
	"errors"
	"regexp"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

var (
	ErrVerifyCodeCommandIsNotConstructed = errors.New(
		"VerifyCodeCommand must be created via NewVerifyCodeCommand constructor",
	)

	codePattern = regexp.MustCompile(`^\d{4}$`)
)

// VerifyCodeCommand exchanges a one-time code for a session token.
type VerifyCodeCommand struct {
	phone kernel.PhoneNumber
	code  string

	guard guard.ConstructorGuard
}

func NewVerifyCodeCommand(rawPhone, code string) (VerifyCodeCommand, error) {
	phone, phoneErr := kernel.NewPhoneNumber(rawPhone)

	var codeErr error
	if code == "" {
		codeErr = errs.NewValueIsRequiredError("code")
	} else if !codePattern.MatchString(code) {
		codeErr = errs.NewValueIsInvalidErrorWithCause("code", errors.New("must be 4 digits"))
	}

	if err := errors.Join(phoneErr, codeErr); err != nil {
		return VerifyCodeCommand{}, err
	}
	return VerifyCodeCommand{phone: phone, code: code, guard: guard.NewConstructorGuard()}, nil
}

func (c VerifyCodeCommand) Validate() error {
	return c.guard.Validate(ErrVerifyCodeCommandIsNotConstructed)
}

func (c VerifyCodeCommand) Phone() kernel.PhoneNumber { return c.phone }

func (c VerifyCodeCommand) Code() string { return c.code }
