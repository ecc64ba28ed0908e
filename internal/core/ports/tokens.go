package ports

import (
	"time"

	"repair/internal/core/domain/model/kernel"
)

// Session is an issued bearer token.
type Session struct {
	Token     string
	ExpiresIn time.Duration
}

// TokenIssuer signs session tokens for a verified phone.
type TokenIssuer interface {
	Issue(phone kernel.PhoneNumber) (Session, error)
}

// TokenVerifier checks a bearer token and returns the phone it was issued to.
// Any failure is errs.ErrUnauthenticated.
type TokenVerifier interface {
	Verify(token string) (kernel.PhoneNumber, error)
}
