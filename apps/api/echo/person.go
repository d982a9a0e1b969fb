package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core/person"
)

type personApi struct {
	svc      *person.Service
	validate *validator.Validate
}

func registerPersonAPI(g *echo.Group, svc *person.Service, validate *validator.Validate) {
	api := personApi{svc: svc, validate: validate}

	pg := g.Group("/persons")
	pg.POST("", api.create)
	pg.GET("/:id", api.retrieve)
}

func (api *personApi) create(ctx echo.Context) error {
	var data person.NewPerson
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	p, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating person")
	}
	return ctx.JSON(http.StatusCreated, p)
}

func (api *personApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	p, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting person")
	}
	return ctx.JSON(http.StatusOK, p)
}
