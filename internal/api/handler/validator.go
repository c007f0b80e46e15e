package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/mikemajesty/admin-api/internal/core/domain"
	"github.com/mikemajesty/admin-api/internal/pkg/validation"
)

// echoValidator exposes the shared go-playground validator to Echo so
// handlers can call c.Validate(req).
type echoValidator struct{}

// NewValidator returns an echoValidator ready to be assigned to echo.Echo.Validator.
func NewValidator() echo.Validator {
	return echoValidator{}
}

// Validate satisfies the echo.Validator interface. Failures are BadRequest
// domain errors carrying one readable message.
func (echoValidator) Validate(i any) error {
	if err := validation.Struct(i); err != nil {
		return domain.Validation(err.Error())
	}
	return nil
}

// bind decodes the request body into req.
func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return domain.Validation("invalid payload")
	}
	return nil
}

// validate runs the registered echo validator, if any, once path and identity
// fields have been filled in.
func validate(c echo.Context, req any) error {
	if c.Echo().Validator == nil {
		return nil
	}
	return c.Validate(req)
}
