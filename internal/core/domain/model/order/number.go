package order

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"repair/internal/pkg/errs"
)

var numberPattern = regexp.MustCompile(`^ORD-\d{8}-[0-9A-F]{8}$`)

// NumberSource produces order numbers. Tests substitute a deterministic one
// to provoke collisions.
type NumberSource func(now time.Time) (string, error)

// GenerateNumber returns "ORD-YYYYMMDD-XXXXXXXX": the UTC creation date and
// eight upper-case hex digits from crypto/rand.
func GenerateNumber(now time.Time) (string, error) {
	return generateNumber(rand.Reader, now)
}

func generateNumber(r io.Reader, now time.Time) (string, error) {
	var b [4]byte
	if _, err := io.ReadFull(r, b[:]); err != nil {
		return "", fmt.Errorf("read random bytes: %w", err)
	}
	return fmt.Sprintf("ORD-%s-%s", now.UTC().Format("20060102"), strings.ToUpper(hex.EncodeToString(b[:]))), nil
}

// ValidateNumber checks the textual shape of an order number.
func ValidateNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	if !numberPattern.MatchString(number) {
		return errs.NewValueIsInvalidErrorWithCause("order_number", fmt.Errorf("%q does not match ORD-YYYYMMDD-XXXXXXXX", number))
	}
	return nil
}
