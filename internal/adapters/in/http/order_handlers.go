package http

import (
	"net/http"

	"repair/internal/core/application/usecases/commands"
	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/domain/model/actor"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var req CreateOrderRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	category, err := kernel.ParseCategory(req.Category)
	if err != nil {
		return s.writeError(ctx, err)
	}
	payment, err := order.ParsePaymentMethod(req.PaymentMethod)
	if err != nil {
		return s.writeError(ctx, err)
	}
	receiveID, err := kernel.UUIDFromString(req.ReceivePVZID)
	if err != nil {
		return s.badRequest(ctx, "receive_pvz_id", err)
	}
	deliveryID, err := kernel.UUIDFromString(req.DeliveryPVZID)
	if err != nil {
		return s.badRequest(ctx, "delivery_pvz_id", err)
	}

	principal := principalOf(ctx)
	orderID := kernel.NewUUID()
	cmd, err := commands.NewCreateOrderCommand(principal, orderID, receiveID, deliveryID, order.Details{
		Category:      category,
		Subcategory:   req.Subcategory,
		Description:   req.Description,
		PaymentMethod: payment,
		PriceLimit:    req.PriceLimit,
	})
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.CreateOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondOrder(ctx, http.StatusCreated, principal, orderID)
}

// ListOrders handles GET /api/v1/orders. The result depends on the role.
func (s *Server) ListOrders(ctx echo.Context) error {
	rawStatus, err := queryString(ctx, "status")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var status *order.Status
	if rawStatus != nil {
		st, parseErr := order.ParseStatus(*rawStatus)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		status = &st
	}

	query, err := queries.NewListOrdersQuery(principalOf(ctx), status)
	if err != nil {
		return s.writeError(ctx, err)
	}
	views, err := s.h.ListOrders.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, toOrder))
}

// GetOrder handles GET /api/v1/orders/{id}.
func (s *Server) GetOrder(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondOrder(ctx, http.StatusOK, principalOf(ctx), id)
}

// TransitionOrder handles POST /api/v1/orders/{id}/transitions.
func (s *Server) TransitionOrder(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req TransitionRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	target, err := order.ParseStatus(req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}
	payload, err := order.NewPayload(req.Payload)
	if err != nil {
		return s.writeError(ctx, err)
	}

	principal := principalOf(ctx)
	cmd, err := commands.NewTransitionOrderCommand(principal, id, target, payload)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.TransitionOrder.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondOrder(ctx, http.StatusOK, principal, id)
}

// AssignService handles PUT /api/v1/orders/{id}/service. Administrators name
// the service; a service claims the order for itself and may omit the id.
func (s *Server) AssignService(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req AssignServiceRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}
	serviceID, err := optionalUUID(req.ServiceID)
	if err != nil {
		return s.badRequest(ctx, "service_id", err)
	}

	principal := principalOf(ctx)
	cmd, err := commands.NewAssignServiceCommand(principal, id, serviceID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.AssignService.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondOrder(ctx, http.StatusOK, principal, id)
}

// AddOrderPhoto handles POST /api/v1/orders/{id}/photos.
func (s *Server) AddOrderPhoto(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req AddPhotoRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}
	stage, err := order.ParsePhotoStage(req.Stage)
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewAddOrderPhotoCommand(principalOf(ctx), id, stage, req.URL)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.AddOrderPhoto.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

// LeaveReview handles POST /api/v1/orders/{id}/review.
func (s *Server) LeaveReview(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req ReviewRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	cmd, err := commands.NewLeaveReviewCommand(principalOf(ctx), id, req.Rating, req.Text)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.LeaveReview.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusCreated)
}

func (s *Server) respondOrder(ctx echo.Context, status int, principal actor.Principal, id kernel.UUID) error {
	query, err := queries.NewGetOrderQuery(principal, id)
	if err != nil {
		return s.writeError(ctx, err)
	}
	view, err := s.h.GetOrder.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(status, toOrder(view))
}
