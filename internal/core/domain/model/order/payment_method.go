package order

import (
	"fmt"

	"repair/internal/pkg/errs"
)

// PaymentMethod is how the client intends to pay. Payment itself happens elsewhere.
type PaymentMethod int

const (
	PaymentUnknown PaymentMethod = iota
	PaymentOnline
	PaymentCash
)

func getPaymentMethodStrings() map[PaymentMethod]string {
	return map[PaymentMethod]string{
		PaymentUnknown: "unknown",
		PaymentOnline:  "online",
		PaymentCash:    "cash",
	}
}

// ParsePaymentMethod converts a wire/storage name into a PaymentMethod.
func ParsePaymentMethod(s string) (PaymentMethod, error) {
	for m, name := range getPaymentMethodStrings() {
		if m != PaymentUnknown && name == s {
			return m, nil
		}
	}
	return PaymentUnknown, errs.NewValueIsInvalidErrorWithCause(
		"payment_method", fmt.Errorf("%q is not a known payment method", s))
}

func (m PaymentMethod) Validate() error {
	if m <= PaymentUnknown || m > PaymentCash {
		return errs.NewValueIsInvalidErrorWithCause("payment_method", fmt.Errorf("%d is not a valid payment method", m))
	}
	return nil
}

func (m PaymentMethod) String() string {
	if s, ok := getPaymentMethodStrings()[m]; ok {
		return s
	}
	return "unknown"
}
