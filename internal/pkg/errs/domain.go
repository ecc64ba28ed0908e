package errs

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrForbidden is the sentinel wrapped by ForbiddenError.
	ErrForbidden = errors.New("forbidden")
	// ErrInvalidTransition is the sentinel wrapped by InvalidTransitionError.
	ErrInvalidTransition = errors.New("invalid transition")
	// ErrConflict is the sentinel wrapped by ConflictError.
	ErrConflict = errors.New("conflict")
	// ErrUnauthenticated is the sentinel wrapped by UnauthenticatedError.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrUpstreamUnavailable is the sentinel wrapped by UpstreamUnavailableError.
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// ForbiddenError reports that the caller may not perform Action.
// The message never says which relationship check failed, so a stranger
// cannot tell a foreign order from a missing permission.
type ForbiddenError struct {
	Action string
}

// NewForbiddenError creates a ForbiddenError for the given action.
func NewForbiddenError(action string) *ForbiddenError {
	return &ForbiddenError{Action: action}
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("%s: %s", ErrForbidden, e.Action)
}

func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// InvalidTransitionError reports a state change the lifecycle graph does not allow.
type InvalidTransitionError struct {
	From string
	To   string
}

// NewInvalidTransitionError creates an InvalidTransitionError naming both states.
func NewInvalidTransitionError(from, to fmt.Stringer) *InvalidTransitionError {
	return &InvalidTransitionError{From: from.String(), To: to.String()}
}

func (e *InvalidTransitionError) Error() string {
	return fmt.Sprintf("%s: from %s to %s", ErrInvalidTransition, e.From, e.To)
}

func (e *InvalidTransitionError) Unwrap() error {
	return ErrInvalidTransition
}

// ConflictError reports that the state changed underneath the caller
// or that a uniqueness rule was violated.
type ConflictError struct {
	ParamName string
	Cause     error
}

// NewConflictError creates a ConflictError for the named resource.
func NewConflictError(paramName string) *ConflictError {
	return &ConflictError{ParamName: paramName}
}

// NewConflictErrorWithCause creates a ConflictError with an underlying cause.
func NewConflictErrorWithCause(paramName string, cause error) *ConflictError {
	return &ConflictError{ParamName: paramName, Cause: cause}
}

func (e *ConflictError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrConflict, e.ParamName, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrConflict, e.ParamName)
}

func (e *ConflictError) Unwrap() error {
	return ErrConflict
}

// Stable reasons carried by UnauthenticatedError. Clients branch on these.
const (
	ReasonMissingToken    = "missing_token"
	ReasonInvalidToken    = "invalid_token"
	ReasonTokenExpired    = "token_expired"
	ReasonActorNotFound   = "actor_not_found"
	ReasonAccountDisabled = "account_disabled"
	ReasonCodeNotFound    = "code_not_found"
	ReasonCodeMismatch    = "code_mismatch"
)

// UnauthenticatedError reports a failed identity check. Code is one of the
// Reason constants. Reason is safe to show to the caller and never contains
// the token or the code.
type UnauthenticatedError struct {
	Code   string
	Reason string
}

// NewUnauthenticatedError creates an UnauthenticatedError.
func NewUnauthenticatedError(code, reason string) *UnauthenticatedError {
	return &UnauthenticatedError{Code: code, Reason: reason}
}

func (e *UnauthenticatedError) Error() string {
	return fmt.Sprintf("%s: %s", ErrUnauthenticated, e.Reason)
}

func (e *UnauthenticatedError) Unwrap() error {
	return ErrUnauthenticated
}

// UpstreamUnavailableError reports that a collaborator (storage, notifier,
// cache) could not serve the request.
type UpstreamUnavailableError struct {
	Service string
	Cause   error
}

// NewUpstreamUnavailableError creates an UpstreamUnavailableError.
func NewUpstreamUnavailableError(service string, cause error) *UpstreamUnavailableError {
	return &UpstreamUnavailableError{Service: service, Cause: cause}
}

func (e *UpstreamUnavailableError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (cause: %v)", ErrUpstreamUnavailable, e.Service, e.Cause)
	}
	return fmt.Sprintf("%s: %s", ErrUpstreamUnavailable, e.Service)
}

func (e *UpstreamUnavailableError) Unwrap() []error {
	if e.Cause != nil {
		return []error{ErrUpstreamUnavailable, e.Cause}
	}
	return []error{ErrUpstreamUnavailable}
}

// Kind is a stable, transport-neutral classification of an error.
type Kind string

const (
	KindValidation          Kind = "validation"
	KindNotFound            Kind = "not_found"
	KindForbidden           Kind = "forbidden"
	KindInvalidTransition   Kind = "invalid_transition"
	KindConflict            Kind = "conflict"
	KindUnauthenticated     Kind = "unauthenticated"
	KindUpstreamUnavailable Kind = "upstream_unavailable"
	KindInternal            Kind = "internal"
)

// KindOf classifies err. Unknown errors are KindInternal.
//
// The order matters: a joined validation error that also carries a not-found
// error is reported as not found, and deadline errors from storage count as
// an unavailable upstream.
func KindOf(err error) Kind {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrUnauthenticated):
		return KindUnauthenticated
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	case errors.Is(err, ErrObjectNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidTransition):
		return KindInvalidTransition
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrValueIsRequired),
		errors.Is(err, ErrValueIsInvalid),
		errors.Is(err, ErrValueIsOutOfRange):
		return KindValidation
	case errors.Is(err, ErrUpstreamUnavailable),
		errors.Is(err, context.DeadlineExceeded):
		return KindUpstreamUnavailable
	default:
		return KindInternal
	}
}

// ReasonOf returns the stable reason of an UnauthenticatedError anywhere in
// err's chain, or "" when there is none.
func ReasonOf(err error) string {
	var unauthenticated *UnauthenticatedError
	if errors.As(err, &unauthenticated) {
		return unauthenticated.Code
	}
	return ""
}
