package cmd

import (
	"log/slog"

	httpin "repair/internal/adapters/in/http"
	"repair/internal/adapters/out/gormdb"
	"repair/internal/core/application/usecases/commands"
	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/ports"

	"gorm.io/gorm"
)

// Adapters are the outbound collaborators built by main.
type Adapters struct {
	CodeStore ports.CodeStore
	Notifier  ports.Notifier
	Issuer    ports.TokenIssuer
	Verifier  ports.TokenVerifier
	Events    ports.OrderEventPublisher
}

type CompositionRoot struct {
	cfg        Config
	gormDB     *gorm.DB
	uowFactory *gormdb.GormUnitOfWorkFactory
	adapters   Adapters
	log        *slog.Logger
}

func NewCompositionRoot(cfg Config, gormDB *gorm.DB, adapters Adapters, log *slog.Logger) CompositionRoot {
	return CompositionRoot{
		cfg:        cfg,
		gormDB:     gormDB,
		uowFactory: gormdb.NewGormUnitOfWorkFactory(gormDB, cfg.StorageTimeout),
		adapters:   adapters,
		log:        log,
	}
}

// HTTPHandlers wires every use case the REST server dispatches to.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		RequestCode:    c.CreateRequestCodeCommandHandler(),
		VerifyCode:     c.CreateVerifyCodeCommandHandler(),
		ResolveActor:   c.CreateResolveActorQueryHandler(),
		GetActor:       queries.NewGetActorQueryHandler(c.gormDB),
		ListActors:     queries.NewListActorsQueryHandler(c.gormDB),
		SetActorActive: commands.NewSetActorActiveCommandHandler(c.actorUoWFactory(), c.log),

		CreateOrder:     c.CreateCreateOrderCommandHandler(),
		TransitionOrder: c.CreateTransitionOrderCommandHandler(),
		AssignService:   commands.NewAssignServiceCommandHandler(c.assignmentUoWFactory(), c.log),
		AddOrderPhoto:   commands.NewAddOrderPhotoCommandHandler(c.orderUoWFactory(), c.log),
		LeaveReview:     commands.NewLeaveReviewCommandHandler(c.reviewUoWFactory(), c.log),
		GetOrder:        queries.NewGetOrderQueryHandler(c.gormDB),
		ListOrders:      queries.NewListOrdersQueryHandler(c.gormDB),

		CreatePickupPoint:    commands.NewCreatePickupPointCommandHandler(c.pickupPointUoWFactory(), c.log),
		SetPickupPointActive: commands.NewSetPickupPointActiveCommandHandler(c.pickupPointUoWFactory(), c.log),
		ListPickupPoints:     queries.NewListPickupPointsQueryHandler(c.gormDB),
		GetPickupPoint:       queries.NewGetPickupPointQueryHandler(c.gormDB),

		CreateServiceProfile: commands.NewCreateServiceProfileCommandHandler(c.serviceProfileUoWFactory(), c.log),
		SetVerification:      commands.NewSetVerificationCommandHandler(c.serviceProfileUoWFactory(), c.log),
		AddOffering:          commands.NewAddOfferingCommandHandler(c.serviceProfileUoWFactory(), c.log),
		DeactivateOffering:   commands.NewDeactivateOfferingCommandHandler(c.serviceProfileUoWFactory(), c.log),
		GetServiceProfile:    queries.NewGetServiceProfileQueryHandler(c.gormDB),
		ListServiceProfiles:  queries.NewListServiceProfilesQueryHandler(c.gormDB),
		ListOfferings:        queries.NewListOfferingsQueryHandler(c.gormDB),
	}
}

func (c *CompositionRoot) CreateRequestCodeCommandHandler() commands.RequestCodeCommandHandler {
	return commands.NewRequestCodeCommandHandler(c.adapters.CodeStore, c.adapters.Notifier, c.cfg.CodeTTL, c.log)
}

func (c *CompositionRoot) CreateVerifyCodeCommandHandler() commands.VerifyCodeCommandHandler {
	return commands.NewVerifyCodeCommandHandler(c.adapters.CodeStore, c.actorUoWFactory(), c.adapters.Issuer, c.log)
}

func (c *CompositionRoot) CreateResolveActorQueryHandler() queries.ResolveActorQueryHandler {
	return queries.NewResolveActorQueryHandler(c.gormDB, c.adapters.Verifier)
}

func (c *CompositionRoot) CreateCreateOrderCommandHandler() commands.CreateOrderCommandHandler {
	return commands.NewCreateOrderCommandHandler(c.placementUoWFactory(), nil, c.log)
}

func (c *CompositionRoot) CreateTransitionOrderCommandHandler() commands.TransitionOrderCommandHandler {
	return commands.NewTransitionOrderCommandHandler(c.orderUoWFactory(), c.adapters.Events, c.log)
}

func (c *CompositionRoot) actorUoWFactory() commands.ActorUoWFactory {
	return FuncActorUoWFactory(func() commands.ActorUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) orderUoWFactory() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) placementUoWFactory() commands.OrderPlacementUoWFactory {
	return FuncOrderPlacementUoWFactory(func() commands.OrderPlacementUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) assignmentUoWFactory() commands.AssignmentUoWFactory {
	return FuncAssignmentUoWFactory(func() commands.AssignmentUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) reviewUoWFactory() commands.ReviewUoWFactory {
	return FuncReviewUoWFactory(func() commands.ReviewUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) pickupPointUoWFactory() commands.PickupPointUoWFactory {
	return FuncPickupPointUoWFactory(func() commands.PickupPointUoW { return c.uowFactory.Create() })
}

func (c *CompositionRoot) serviceProfileUoWFactory() commands.ServiceProfileUoWFactory {
	return FuncServiceProfileUoWFactory(func() commands.ServiceProfileUoW { return c.uowFactory.Create() })
}

type FuncActorUoWFactory func() commands.ActorUoW

func (f FuncActorUoWFactory) Create() commands.ActorUoW {
	return f()
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncOrderPlacementUoWFactory func() commands.OrderPlacementUoW

func (f FuncOrderPlacementUoWFactory) Create() commands.OrderPlacementUoW {
	return f()
}

type FuncAssignmentUoWFactory func() commands.AssignmentUoW

func (f FuncAssignmentUoWFactory) Create() commands.AssignmentUoW {
	return f()
}

type FuncReviewUoWFactory func() commands.ReviewUoW

func (f FuncReviewUoWFactory) Create() commands.ReviewUoW {
	return f()
}

type FuncPickupPointUoWFactory func() commands.PickupPointUoW

func (f FuncPickupPointUoWFactory) Create() commands.PickupPointUoW {
	return f()
}

type FuncServiceProfileUoWFactory func() commands.ServiceProfileUoW

func (f FuncServiceProfileUoWFactory) Create() commands.ServiceProfileUoW {
	return f()
}
