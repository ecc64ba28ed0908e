package http

import (
	"net/http"

	"repair/internal/core/application/usecases/commands"
	"repair/internal/core/application/usecases/queries"
	"repair/internal/core/domain/model/kernel"
	"repair/internal/core/domain/model/pickuppoint"
	"repair/internal/core/domain/model/serviceprofile"

	"github.com/labstack/echo/v4"
)

func optionalPhone(raw *string) (*kernel.PhoneNumber, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}
	p, err := kernel.NewPhoneNumber(*raw)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// CreatePickupPoint handles POST /api/v1/pvz.
func (s *Server) CreatePickupPoint(ctx echo.Context) error {
	var req CreatePickupPointRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	ownerID, err := optionalUUID(req.OwnerID)
	if err != nil {
		return s.badRequest(ctx, "owner_id", err)
	}
	location, err := kernel.NewGeoPoint(req.Latitude, req.Longitude)
	if err != nil {
		return s.writeError(ctx, err)
	}
	operatorPhone, err := optionalPhone(req.OperatorPhone)
	if err != nil {
		return s.writeError(ctx, err)
	}
	accepts := make([]kernel.Category, 0, len(req.Accepts))
	for _, raw := range req.Accepts {
		c, parseErr := kernel.ParseCategory(raw)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		accepts = append(accepts, c)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreatePickupPointCommand(principalOf(ctx), id, ownerID, pickuppoint.Profile{
		Name:          req.Name,
		Address:       req.Address,
		Location:      location,
		WorkingHours:  req.WorkingHours,
		OperatorName:  req.OperatorName,
		OperatorPhone: operatorPhone,
		Accepts:       accepts,
	})
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.CreatePickupPoint.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondPickupPoint(ctx, http.StatusCreated, id)
}

// ListPickupPoints handles GET /api/v1/pvz.
func (s *Server) ListPickupPoints(ctx echo.Context) error {
	category, err := queryCategory(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}
	origin, err := queryOrigin(ctx, false)
	if err != nil {
		return s.writeError(ctx, err)
	}
	radius, err := queryFloat(ctx, "radius_km", false)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewListPickupPointsQuery(category, origin, radius)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondPickupPoints(ctx, query)
}

// NearbyPickupPoints handles GET /api/v1/pvz/nearby.
func (s *Server) NearbyPickupPoints(ctx echo.Context) error {
	origin, err := queryOrigin(ctx, true)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if origin == nil {
		return s.writeError(ctx, errLatLonPair)
	}
	radius, err := queryFloat(ctx, "radius_km", false)
	if err != nil {
		return s.writeError(ctx, err)
	}
	category, err := queryCategory(ctx)
	if err != nil {
		return s.writeError(ctx, err)
	}

	query, err := queries.NewNearbyPickupPointsQuery(*origin, radius, category)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondPickupPoints(ctx, query)
}

// GetPickupPoint handles GET /api/v1/pvz/{id}.
func (s *Server) GetPickupPoint(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondPickupPoint(ctx, http.StatusOK, id)
}

// SetPickupPointStatus handles PUT /api/v1/pvz/{id}/status.
func (s *Server) SetPickupPointStatus(ctx echo.Context) error {
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

	cmd, err := commands.NewSetPickupPointActiveCommand(principalOf(ctx), id, *req.IsActive)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.SetPickupPointActive.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondPickupPoint(ctx, http.StatusOK, id)
}

func (s *Server) respondPickupPoint(ctx echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetPickupPointQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}
	view, err := s.h.GetPickupPoint.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(status, toPickupPoint(view))
}

func (s *Server) respondPickupPoints(ctx echo.Context, query queries.ListPickupPointsQuery) error {
	views, err := s.h.ListPickupPoints.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, toPickupPoint))
}

// CreateServiceProfile handles POST /api/v1/services.
func (s *Server) CreateServiceProfile(ctx echo.Context) error {
	var req CreateServiceProfileRequest
	if err := ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	ownerID, err := optionalUUID(req.OwnerID)
	if err != nil {
		return s.badRequest(ctx, "owner_id", err)
	}
	phone, err := optionalPhone(req.Phone)
	if err != nil {
		return s.writeError(ctx, err)
	}

	id := kernel.NewUUID()
	cmd, err := commands.NewCreateServiceProfileCommand(principalOf(ctx), id, ownerID, serviceprofile.Company{
		Name:         req.CompanyName,
		INN:          req.INN,
		ActivityType: req.ActivityType,
		Description:  req.Description,
		Phone:        phone,
		Email:        req.Email,
		BankAccount:  req.BankAccount,
		BankBIK:      req.BankBIK,
	})
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.CreateServiceProfile.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	return s.respondServiceProfile(ctx, http.StatusCreated, id)
}

// ListServiceProfiles handles GET /api/v1/services.
func (s *Server) ListServiceProfiles(ctx echo.Context) error {
	activity, err := queryString(ctx, "activity_type")
	if err != nil {
		return s.writeError(ctx, err)
	}
	rawVerification, err := queryString(ctx, "verification_status")
	if err != nil {
		return s.writeError(ctx, err)
	}
	minRating, err := queryFloat(ctx, "min_rating", false)
	if err != nil {
		return s.writeError(ctx, err)
	}

	var verification *serviceprofile.VerificationStatus
	if rawVerification != nil {
		v, parseErr := serviceprofile.ParseVerificationStatus(*rawVerification)
		if parseErr != nil {
			return s.writeError(ctx, parseErr)
		}
		verification = &v
	}
	var activityType string
	if activity != nil {
		activityType = *activity
	}

	query, err := queries.NewListServiceProfilesQuery(activityType, verification, minRating)
	if err != nil {
		return s.writeError(ctx, err)
	}
	views, err := s.h.ListServiceProfiles.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(views, toServiceProfile))
}

// GetServiceProfile handles GET /api/v1/services/{id}.
func (s *Server) GetServiceProfile(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondServiceProfile(ctx, http.StatusOK, id)
}

// SetServiceVerification handles PUT /api/v1/services/{id}/verification.
func (s *Server) SetServiceVerification(ctx echo.Context) error {
	id, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req VerificationRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	cmd, err := commands.NewSetVerificationCommand(principalOf(ctx), id, req.Status)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.SetVerification.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return s.respondServiceProfile(ctx, http.StatusOK, id)
}

// AddOffering handles POST /api/v1/services/{id}/offerings.
func (s *Server) AddOffering(ctx echo.Context) error {
	serviceID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	var req OfferingRequest
	if err = ctx.Bind(&req); err != nil {
		return s.badRequest(ctx, "body", err)
	}

	offeringID := kernel.NewUUID()
	cmd, err := commands.NewAddOfferingCommand(principalOf(ctx), serviceID, offeringID, serviceprofile.OfferingDetails{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Description:  req.Description,
	})
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.AddOffering.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}

	offerings, err := s.offeringsOf(ctx, serviceID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	for _, o := range offerings {
		if o.ID.IsEqual(offeringID) {
			return ctx.JSON(http.StatusCreated, toOffering(o))
		}
	}
	return ctx.NoContent(http.StatusCreated)
}

// ListOfferings handles GET /api/v1/services/{id}/offerings.
func (s *Server) ListOfferings(ctx echo.Context) error {
	serviceID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	offerings, err := s.offeringsOf(ctx, serviceID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(http.StatusOK, mapSlice(offerings, toOffering))
}

// DeactivateOffering handles DELETE /api/v1/services/{id}/offerings/{offeringId}.
func (s *Server) DeactivateOffering(ctx echo.Context) error {
	serviceID, err := pathUUID(ctx, "id")
	if err != nil {
		return s.writeError(ctx, err)
	}
	offeringID, err := pathUUID(ctx, "offeringId")
	if err != nil {
		return s.writeError(ctx, err)
	}

	cmd, err := commands.NewDeactivateOfferingCommand(principalOf(ctx), serviceID, offeringID)
	if err != nil {
		return s.writeError(ctx, err)
	}
	if err = s.h.DeactivateOffering.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (s *Server) offeringsOf(ctx echo.Context, serviceID kernel.UUID) ([]queries.OfferingView, error) {
	query, err := queries.NewListOfferingsQuery(serviceID)
	if err != nil {
		return nil, err
	}
	return s.h.ListOfferings.Handle(ctx.Request().Context(), query)
}

func (s *Server) respondServiceProfile(ctx echo.Context, status int, id kernel.UUID) error {
	query, err := queries.NewGetServiceProfileQuery(id)
	if err != nil {
		return s.writeError(ctx, err)
	}
	view, err := s.h.GetServiceProfile.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.writeError(ctx, err)
	}
	return ctx.JSON(status, toServiceProfile(view))
}
