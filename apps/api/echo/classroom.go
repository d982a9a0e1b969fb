package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core/classroom"
)

type classroomApi struct {
	svc      *classroom.Service
	validate *validator.Validate
}

func registerClassroomAPI(g *echo.Group, svc *classroom.Service, validate *validator.Validate) {
	api := classroomApi{svc: svc, validate: validate}

	cg := g.Group("/classrooms")
	cg.GET("", api.query)
	cg.POST("", api.create)
	cg.GET("/:id", api.retrieve)
}

func (api *classroomApi) query(ctx echo.Context) error {
	classrooms, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying classrooms")
	}
	return ctx.JSON(http.StatusOK, classrooms)
}

func (api *classroomApi) create(ctx echo.Context) error {
	var data classroom.NewClassroom
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating classroom")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *classroomApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	c, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting classroom")
	}
	return ctx.JSON(http.StatusOK, c)
}
