// Package jwttoken signs and verifies session tokens. The token carries only
// the phone number as subject; role and account state are read from storage
// on every request.
package jwttoken

import (
	"errors"
	"time"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/ports"
	"repair/internal/pkg/errs"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	// DefaultTTL is the lifetime of a session token.
	DefaultTTL = 30 * time.Minute
	issuerName = "repair"
)

var ErrEmptySecret = errors.New("jwt secret must not be empty")

// Service implements ports.TokenIssuer and ports.TokenVerifier with HS256.
type Service struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

var (
	_ ports.TokenIssuer   = (*Service)(nil)
	_ ports.TokenVerifier = (*Service)(nil)
)

func NewService(secret string, ttl time.Duration) (*Service, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl, now: time.Now}, nil
}

// WithClock replaces time.Now for issuing and verifying.
func (s *Service) WithClock(now func() time.Time) *Service {
	s.now = now
	return s
}

func (s *Service) Issue(phone kernel.PhoneNumber) (ports.Session, error) {
	if err := phone.Validate(); err != nil {
		return ports.Session{}, err
	}

	issuedAt := s.now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   phone.String(),
		Issuer:    issuerName,
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(issuedAt.Add(s.ttl)),
		ID:        uuid.NewString(),
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return ports.Session{}, err
	}
	return ports.Session{Token: signed, ExpiresIn: s.ttl}, nil
}

// Verify rejects foreign algorithms, bad signatures and expired tokens alike.
func (s *Service) Verify(token string) (kernel.PhoneNumber, error) {
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrTokenUnverifiable
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(issuerName),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return kernel.PhoneNumber{}, errs.NewUnauthenticatedError(errs.ReasonTokenExpired, "token expired")
		}
		return kernel.PhoneNumber{}, errs.NewUnauthenticatedError(errs.ReasonInvalidToken, "invalid token")
	}
	if !parsed.Valid {
		return kernel.PhoneNumber{}, errs.NewUnauthenticatedError(errs.ReasonInvalidToken, "invalid token")
	}

	phone, err := kernel.NewPhoneNumber(claims.Subject)
	if err != nil {
		return kernel.PhoneNumber{}, errs.NewUnauthenticatedError(errs.ReasonInvalidToken, "invalid token subject")
	}
	return phone, nil
}
