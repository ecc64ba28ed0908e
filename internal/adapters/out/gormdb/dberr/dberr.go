// Package dberr maps driver errors onto the domain error taxonomy.
package dberr

import (
	"context"
	"errors"
	"strings"

	"repair/internal/pkg/errs"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const pgUniqueViolation = "23505"

// IsUniqueViolation reports whether err is a unique-constraint failure on
// either supported driver.
func IsUniqueViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == pgUniqueViolation
	}
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Wrap classifies a storage error. Unique violations become Conflict,
// deadlines become UpstreamUnavailable, anything else is returned as is.
func Wrap(resource string, err error) error {
	switch {
	case err == nil:
		return nil
	case IsUniqueViolation(err):
		return errs.NewConflictErrorWithCause(resource, err)
	case errors.Is(err, context.DeadlineExceeded):
		return errs.NewUpstreamUnavailableError("storage", err)
	default:
		return err
	}
}

// NotFound turns gorm.ErrRecordNotFound into ObjectNotFound and classifies
// everything else with Wrap.
func NotFound(resource string, id any, err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError(resource, id)
	}
	return Wrap(resource, err)
}
