package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core/enrollment"
)

type enrollmentApi struct {
	svc      *enrollment.Service
	validate *validator.Validate
}

func registerEnrollmentAPI(g *echo.Group, svc *enrollment.Service, validate *validator.Validate) {
	api := enrollmentApi{svc: svc, validate: validate}

	eg := g.Group("/enrollments")
	eg.POST("", api.enroll)

	// detail endpoints
	dg := eg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.remove)
	dg.PUT("/grade", api.updateGrade)
	dg.POST("/incidents", api.appendIncident)
}

func (api *enrollmentApi) enroll(ctx echo.Context) error {
	var data enrollment.NewEnrollment
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	e, err := api.svc.Enroll(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "enrolling student")
	}
	return ctx.JSON(http.StatusCreated, e)
}

func (api *enrollmentApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	e, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting enrollment")
	}
	return ctx.JSON(http.StatusOK, e)
}

func (api *enrollmentApi) updateGrade(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data enrollment.GradeUpdate
	if err = bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	if err = api.svc.UpdateGrade(ctx.Request().Context(), id, *data.Grade); err != nil {
		return errors.Wrap(err, "updating grade")
	}
	return api.retrieve(ctx)
}

func (api *enrollmentApi) appendIncident(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data enrollment.Incident
	if err = bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	if err = api.svc.AppendIncident(ctx.Request().Context(), id, data.Text); err != nil {
		return errors.Wrap(err, "appending incident")
	}
	return api.retrieve(ctx)
}

func (api *enrollmentApi) remove(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Remove(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "removing enrollment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
