package echoapi

import (
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type validatable interface {
	Validate(validate *validator.Validate) error
}

// bindAndValidate binds the request into data (a pointer) and validates it.
func bindAndValidate(ctx echo.Context, data validatable, validate *validator.Validate) error {
	if err := ctx.Bind(data); err != nil {
		return errors.Wrapf(err, "binding to %T", data)
	}
	return data.Validate(validate)
}

// paramID reads the `:id` path parameter. Malformed ids are reported as not found.
func paramID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil || id < 1 {
		return 0, errHttpNotFound
	}
	return id, nil
}
