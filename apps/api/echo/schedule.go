package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core/schedule"
)

type scheduleApi struct {
	svc      *schedule.Service
	validate *validator.Validate
}

func registerScheduleAPI(g *echo.Group, svc *schedule.Service, validate *validator.Validate) {
	api := scheduleApi{svc: svc, validate: validate}

	sg := g.Group("/schedules")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.DELETE("/:id", api.destroy)
}

func (api *scheduleApi) query(ctx echo.Context) error {
	slots, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying schedule")
	}
	return ctx.JSON(http.StatusOK, slots)
}

func (api *scheduleApi) create(ctx echo.Context) error {
	var data schedule.NewSlot
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	slot, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating slot")
	}
	return ctx.JSON(http.StatusCreated, slot)
}

func (api *scheduleApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting slot")
	}
	return ctx.NoContent(http.StatusNoContent)
}
