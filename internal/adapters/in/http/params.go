package http

import (
	"errors"

	"repair/internal/core/domain/model/kernel"
	"repair/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

var (
	errLatLonPair       = errs.NewValueIsRequiredErrorWithCause("lat/lon", errors.New("lat and lon go together"))
	errIsActiveRequired = errs.NewValueIsRequiredError("is_active")
)

// pathUUID binds a required uuid path parameter the way generated
// oapi-codegen servers do.
func pathUUID(ctx echo.Context, name string) (kernel.UUID, error) {
	var id uuid.UUID
	err := runtime.BindStyledParameterWithOptions("simple", name, ctx.Param(name), &id,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return kernel.UUIDFromBytes(id[:])
}

// optionalUUID parses a nullable uuid from a request body.
func optionalUUID(raw *string) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func queryString(ctx echo.Context, name string) (*string, error) {
	var v *string
	if err := runtime.BindQueryParameter("form", true, false, name, ctx.QueryParams(), &v); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func queryFloat(ctx echo.Context, name string, required bool) (*float64, error) {
	var v *float64
	if err := runtime.BindQueryParameter("form", true, required, name, ctx.QueryParams(), &v); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return v, nil
}

func queryCategory(ctx echo.Context) (*kernel.Category, error) {
	raw, err := queryString(ctx, "category")
	if err != nil || raw == nil {
		return nil, err
	}
	c, err := kernel.ParseCategory(*raw)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

// queryOrigin reads lat/lon. Both or neither must be present.
func queryOrigin(ctx echo.Context, required bool) (*kernel.GeoPoint, error) {
	lat, err := queryFloat(ctx, "lat", required)
	if err != nil {
		return nil, err
	}
	lon, err := queryFloat(ctx, "lon", required)
	if err != nil {
		return nil, err
	}
	if lat == nil && lon == nil {
		return nil, nil
	}
	if lat == nil || lon == nil {
		return nil, errLatLonPair
	}
	p, err := kernel.NewGeoPoint(*lat, *lon)
	if err != nil {
		return nil, err
	}
	return &p, nil
}
