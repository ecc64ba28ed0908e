package kernel

import (
	"fmt"
	"strings"

	"repair/internal/pkg/errs"
	"repair/internal/pkg/guard"
)

// ErrPhoneNumberIsNotConstructed is returned when validating a zero PhoneNumber.
var ErrPhoneNumberIsNotConstructed = errs.NewValueIsRequiredError(
	"phone number must be created via NewPhoneNumber")

// PhoneNumber is a Russian mobile number kept in its canonical
// "+7 XXX XXX-XX-XX" form. Codes, actors and tokens are all keyed by it.
//
// Accepted inputs, after dropping every non-digit:
//   - 11 digits starting with 7 or 8 ("+7 (912) 345-67-89", "89123456789")
//   - 10 digits starting with 9 ("912 345 67 89")
type PhoneNumber struct {
	// national holds the ten digits after the country code.
	national string
	guard    guard.ConstructorGuard
}

// NewPhoneNumber normalizes raw into a PhoneNumber or returns a validation error.
//
// Example:
//
//	phone, err := kernel.NewPhoneNumber("8 (912) 345-67-89")
//	// phone.String() == "+7 912 345-67-89"
func NewPhoneNumber(raw string) (PhoneNumber, error) {
	if strings.TrimSpace(raw) == "" {
		return PhoneNumber{}, errs.NewValueIsRequiredError("phone")
	}

	var b strings.Builder
	for _, r := range raw {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	digits := b.String()

	var national string
	switch {
	case len(digits) == 11 && (digits[0] == '7' || digits[0] == '8'):
		national = digits[1:]
	case len(digits) == 10 && digits[0] == '9':
		national = digits
	default:
		return PhoneNumber{}, errs.NewValueIsInvalidErrorWithCause(
			"phone",
			fmt.Errorf("%d digits do not form a Russian phone number", len(digits)),
		)
	}

	return PhoneNumber{national: national, guard: guard.NewConstructorGuard()}, nil
}

// Validate reports whether the phone was built by NewPhoneNumber.
func (p PhoneNumber) Validate() error {
	return p.guard.Validate(ErrPhoneNumberIsNotConstructed)
}

// String returns the canonical form, e.g. "+7 912 345-67-89".
func (p PhoneNumber) String() string {
	if len(p.national) != 10 {
		return ""
	}
	n := p.national
	return fmt.Sprintf("+7 %s %s-%s-%s", n[0:3], n[3:6], n[6:8], n[8:10])
}

// Masked hides the middle digits; it is the only form that goes to logs.
func (p PhoneNumber) Masked() string {
	if len(p.national) != 10 {
		return ""
	}
	return fmt.Sprintf("+7 %s ***-**-%s", p.national[0:3], p.national[8:10])
}

// IsEqual compares two phone numbers by their digits.
func (p PhoneNumber) IsEqual(other PhoneNumber) bool {
	return p.national == other.national
}
