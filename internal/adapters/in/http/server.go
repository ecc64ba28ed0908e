// Package http is the REST surface of the marketplace. Handlers translate
// JSON into commands and queries; every domain error is rendered by its kind.
package http

import (
	"log/slog"

	"repair/internal/core/application/usecases/commands"
	"repair/internal/core/application/usecases/queries"
)

// Handlers groups the use cases the server dispatches to.
type Handlers struct {
	// Identity
	RequestCode    commands.RequestCodeCommandHandler
	VerifyCode     commands.VerifyCodeCommandHandler
	ResolveActor   queries.ResolveActorQueryHandler
	GetActor       queries.GetActorQueryHandler
	ListActors     queries.ListActorsQueryHandler
	SetActorActive commands.SetActorActiveCommandHandler

	// Orders
	CreateOrder     commands.CreateOrderCommandHandler
	TransitionOrder commands.TransitionOrderCommandHandler
	AssignService   commands.AssignServiceCommandHandler
	AddOrderPhoto   commands.AddOrderPhotoCommandHandler
	LeaveReview     commands.LeaveReviewCommandHandler
	GetOrder        queries.GetOrderQueryHandler
	ListOrders      queries.ListOrdersQueryHandler

	// Pickup points
	CreatePickupPoint    commands.CreatePickupPointCommandHandler
	SetPickupPointActive commands.SetPickupPointActiveCommandHandler
	ListPickupPoints     queries.ListPickupPointsQueryHandler
	GetPickupPoint       queries.GetPickupPointQueryHandler

	// Services
	CreateServiceProfile commands.CreateServiceProfileCommandHandler
	SetVerification      commands.SetVerificationCommandHandler
	AddOffering          commands.AddOfferingCommandHandler
	DeactivateOffering   commands.DeactivateOfferingCommandHandler
	GetServiceProfile    queries.GetServiceProfileQueryHandler
	ListServiceProfiles  queries.ListServiceProfilesQueryHandler
	ListOfferings        queries.ListOfferingsQueryHandler
}

// Server implements the REST handlers on top of the use cases.
type Server struct {
	h   Handlers
	log *slog.Logger
}

func NewServer(h Handlers, log *slog.Logger) *Server {
	return &Server{h: h, log: log.With("component", "http")}
}
