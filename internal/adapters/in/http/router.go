package http

import (
	"log/slog"
	"net/http"

	"repair/internal/pkg/metrics"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
)

// RouterOptions switches the optional parts of the router.
type RouterOptions struct {
	// Metrics enables request instrumentation and GET /metrics.
	Metrics *metrics.Metrics
	// OpenAPI enables request validation against the document.
	OpenAPI *openapi3.T
}

// Router builds the echo instance with every route of the API.
func (s *Server) Router(opts RouterOptions) (*echo.Echo, error) {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	if opts.Metrics != nil {
		e.Use(Instrument(opts.Metrics))
		e.GET("/metrics", echo.WrapHandler(opts.Metrics.Handler()))
	}
	e.Use(middleware.Recover())
	e.Use(s.requestLogger())
	if opts.OpenAPI != nil {
		validate, err := s.ValidateRequests(opts.OpenAPI)
		if err != nil {
			return nil, err
		}
		e.Use(validate)
	}

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/openapi.yaml", func(c echo.Context) error {
		return c.Blob(http.StatusOK, "application/yaml", OpenAPISpec())
	})
	e.GET("/swagger/*", echoSwagger.EchoWrapHandler(echoSwagger.URL("/openapi.yaml")))

	api := e.Group("/api/v1")
	auth := s.Authenticate

	api.POST("/auth/send-code", s.SendCode)
	api.POST("/auth/verify", s.VerifyCode)
	api.GET("/auth/me", s.GetMe, auth)

	api.GET("/users", s.ListUsers, auth)
	api.PUT("/users/:id/status", s.SetUserStatus, auth)

	api.POST("/orders", s.CreateOrder, auth)
	api.GET("/orders", s.ListOrders, auth)
	api.GET("/orders/:id", s.GetOrder, auth)
	api.POST("/orders/:id/transitions", s.TransitionOrder, auth)
	api.PUT("/orders/:id/service", s.AssignService, auth)
	api.POST("/orders/:id/photos", s.AddOrderPhoto, auth)
	api.POST("/orders/:id/review", s.LeaveReview, auth)

	api.POST("/pvz", s.CreatePickupPoint, auth)
	api.GET("/pvz", s.ListPickupPoints)
	api.GET("/pvz/nearby", s.NearbyPickupPoints)
	api.GET("/pvz/:id", s.GetPickupPoint)
	api.PUT("/pvz/:id/status", s.SetPickupPointStatus, auth)

	api.POST("/services", s.CreateServiceProfile, auth)
	api.GET("/services", s.ListServiceProfiles)
	api.GET("/services/:id", s.GetServiceProfile)
	api.PUT("/services/:id/verification", s.SetServiceVerification, auth)
	api.POST("/services/:id/offerings", s.AddOffering, auth)
	api.GET("/services/:id/offerings", s.ListOfferings)
	api.DELETE("/services/:id/offerings/:offeringId", s.DeactivateOffering, auth)

	return e, nil
}

func (s *Server) requestLogger() echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogStatus:    true,
		LogMethod:    true,
		LogURIPath:   true,
		LogRoutePath: true,
		LogLatency:   true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			level := slog.LevelInfo
			if v.Status >= http.StatusInternalServerError {
				level = slog.LevelError
			}
			s.log.LogAttrs(c.Request().Context(), level, "request",
				slog.String("method", v.Method),
				slog.String("path", v.URIPath),
				slog.String("route", v.RoutePath),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
			)
			return nil
		},
	})
}
