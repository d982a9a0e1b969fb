package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core/course"
)

type courseApi struct {
	svc      *course.Service
	validate *validator.Validate
}

func registerCourseAPI(g *echo.Group, svc *course.Service, validate *validator.Validate) {
	api := courseApi{svc: svc, validate: validate}

	cg := g.Group("/courses")
	cg.GET("", api.query)
	cg.POST("", api.create)

	// detail endpoints
	dg := cg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("/tutor", api.assignTutor)
	dg.DELETE("/tutor", api.removeTutor)
}

func (api *courseApi) query(ctx echo.Context) error {
	courses, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

func (api *courseApi) create(ctx echo.Context) error {
	var data course.NewCourse
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	c, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating course")
	}
	return ctx.JSON(http.StatusCreated, c)
}

func (api *courseApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	c, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting course")
	}
	return ctx.JSON(http.StatusOK, c)
}

func (api *courseApi) assignTutor(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data course.Tutor
	if err = bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	if err = api.svc.AssignTutor(ctx.Request().Context(), id, data.TeacherID); err != nil {
		return errors.Wrap(err, "assigning tutor")
	}
	return api.retrieve(ctx)
}

func (api *courseApi) removeTutor(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.RemoveTutor(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "removing tutor")
	}
	return ctx.NoContent(http.StatusNoContent)
}
