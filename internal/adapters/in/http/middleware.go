package http

import (
	"strconv"
	"strings"
	"time"

	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/domain/model/actor"
	"repair/internal/pkg/errs"
	"repair/internal/pkg/metrics"

	"github.com/labstack/echo/v4"
)

const principalKey = "principal"

var errMissingBearer = errs.NewUnauthenticatedError(errs.ReasonMissingToken, "missing bearer token")

// Authenticate resolves the bearer token to a principal and stores it in the
// echo context. Requests without a valid token stop here with 401.
func (s *Server) Authenticate(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		token, ok := bearerToken(ctx.Request().Header.Get(echo.HeaderAuthorization))
		if !ok {
			return s.writeError(ctx, errMissingBearer)
		}

		query, err := queries.NewResolveActorQuery(token)
		if err != nil {
			return s.writeError(ctx, queries.ErrInvalidToken)
		}
		principal, err := s.h.ResolveActor.Handle(ctx.Request().Context(), query)
		if err != nil {
			return s.writeError(ctx, err)
		}

		ctx.Set(principalKey, principal)
		return next(ctx)
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// principalOf returns the principal set by Authenticate.
func principalOf(ctx echo.Context) actor.Principal {
	p, _ := ctx.Get(principalKey).(actor.Principal)
	return p
}

// Instrument records request counts and latency per route template.
func Instrument(m *metrics.Metrics) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			start := time.Now()
			err := next(ctx)
			if err != nil {
				ctx.Error(err)
			}

			route := ctx.Path()
			if route == "" {
				route = "unmatched"
			}
			method := ctx.Request().Method
			status := strconv.Itoa(ctx.Response().Status)

			m.HTTPRequests.WithLabelValues(route, method, status).Inc()
			m.HTTPDuration.WithLabelValues(route, method).Observe(time.Since(start).Seconds())
			return nil
		}
	}
}
