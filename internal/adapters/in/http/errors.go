package http

import (
	"errors"
	"net/http"

	"repair/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Error is the body of every non-2xx response.
type Error struct {
	Code    int    `json:"code"`
	Kind    string `json:"kind"`
	Message string `json:"message"`
	// Reason tells apart the causes of a 401, e.g. code_mismatch or
	// account_disabled.
	Reason string `json:"reason,omitempty"`
}

const internalMessage = "internal error"

// statusOf maps an error kind to its HTTP status.
func statusOf(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindUnauthenticated:
		return http.StatusUnauthorized
	case errs.KindForbidden:
		return http.StatusForbidden
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindInvalidTransition, errs.KindConflict:
		return http.StatusConflict
	case errs.KindUpstreamUnavailable:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err by its kind. Internal errors are logged and
// replaced by an opaque message. Conflicts and upstream failures are logged
// and rendered with a fixed message so driver text never reaches the client.
func (s *Server) writeError(ctx echo.Context, err error) error {
	kind := errs.KindOf(err)
	status := statusOf(kind)

	message := err.Error()
	switch kind {
	case errs.KindInternal:
		s.log.ErrorContext(ctx.Request().Context(), "request failed",
			"method", ctx.Request().Method, "route", ctx.Path(), "error", err)
		message = internalMessage
	case errs.KindUpstreamUnavailable:
		s.log.WarnContext(ctx.Request().Context(), "upstream unavailable",
			"method", ctx.Request().Method, "route", ctx.Path(), "error", err)
		message = errs.ErrUpstreamUnavailable.Error()
	case errs.KindConflict:
		s.log.InfoContext(ctx.Request().Context(), "request conflicted",
			"method", ctx.Request().Method, "route", ctx.Path(), "error", err)
		message = conflictMessage(err)
	}

	return ctx.JSON(status, Error{
		Code:    status,
		Kind:    string(kind),
		Message: message,
		Reason:  errs.ReasonOf(err),
	})
}

// conflictMessage names the conflicting resource and drops the cause.
func conflictMessage(err error) string {
	var conflict *errs.ConflictError
	if errors.As(err, &conflict) && conflict.ParamName != "" {
		return errs.NewConflictError(conflict.ParamName).Error()
	}
	return errs.ErrConflict.Error()
}

func (s *Server) badRequest(ctx echo.Context, param string, cause error) error {
	return s.writeError(ctx, errs.NewValueIsInvalidErrorWithCause(param, cause))
}
