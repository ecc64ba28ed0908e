package http

import (
	"net/http"

	"repair/internal/core/application/usecases/commands"
	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/domain/model/actor"

	"github.com/labstack/echo/v4"
)

// SendCode handles POST /api/v1/auth/send-code.
func (s *Server) SendCode(ctx echo.Context) error {
	var req SendCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	cmd, err := commands.NewRequestCodeCommand(req.PhoneNumber)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.RequestCode.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Message{Message: "code sent"})
}

// VerifyCode handles POST /api/v1/auth/verify.
func (s *Server) VerifyCode(ctx echo.Context) error {
	var req VerifyCodeRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	cmd, err := commands.NewVerifyCodeCommand(req.PhoneNumber, req.Code)
	if err != nil {
		return s.writeError(ctx, err)
	}
	session, err := s.h.VerifyCode.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.writeError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, Token{
		AccessToken: session.Token,
		TokenType:   "bearer",
		ExpiresIn:   int(session.ExpiresIn.Seconds()),
	})
}

// GetMe handles GET /api/v1/auth/me.
func (s *Server) GetMe(ctx echo.Context) error {
	principal := principalOf(ctx)
	query, err := queries.NewGetActorQuery(principal, principal.ActorID())
	if err != nil {
		return s.writeError(ctx, err)
	}

	view, err := s.h.GetActor.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toActor(view))
}

// ListUsers handles GET /api/v1/users (admin only).
func (s *Server) ListUsers(ctx echo.Context) error {
	rawRole, err := queryString(ctx, "role")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var role *actor.Role
	if rawRole != nil {
		r, parseErr := actor.ParseRole(*rawRole)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		role = &r
	}

	query, err := queries.NewListActorsQuery(principalOf(ctx), role)
	if err != nil {
		return s.writeError(ctx, err)
	}
	views, err := s.h.ListActors.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, toActor))
}

// SetUserStatus handles PUT /api/v1/users/{id}/status (admin only).
func (s *Server) SetUserStatus(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req SetActiveRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}
	if req.IsActive == nil {
		return s.writeError(ctx, errIsActiveRequired)
	}

	principal := principalOf(ctx)
	cmd, err := commands.NewSetActorActiveCommand(principal, id, *req.IsActive)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.SetActorActive.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewGetActorQuery(principal, id)
	if err != nil {
		return s.writeError(ctx, err)
	}
	view, err := s.h.GetActor.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, toActor(view))
}
