package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core/teacher"
)

type teacherApi struct {
	svc      *teacher.Service
	validate *validator.Validate
}

func registerTeacherAPI(g *echo.Group, svc *teacher.Service, validate *validator.Validate) {
	api := teacherApi{svc: svc, validate: validate}

	tg := g.Group("/teachers")
	tg.GET("", api.query)
	tg.POST("", api.create)

	// detail endpoints
	dg := tg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.GET("/subjects", api.subjects)
	dg.PUT("/tutorship", api.assignTutorship)
	dg.DELETE("/tutorship", api.removeTutorship)
}

func (api *teacherApi) query(ctx echo.Context) error {
	teachers, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying teachers")
	}
	return ctx.JSON(http.StatusOK, teachers)
}

func (api *teacherApi) create(ctx echo.Context) error {
	var data teacher.NewTeacher
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	t, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating teacher")
	}
	return ctx.JSON(http.StatusCreated, t)
}

func (api *teacherApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	t, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting teacher")
	}
	return ctx.JSON(http.StatusOK, t)
}

func (api *teacherApi) subjects(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	subjects, err := api.svc.Subjects(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying taught subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *teacherApi) assignTutorship(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	var data teacher.Tutorship
	if err = bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	if err = api.svc.AssignTutorship(ctx.Request().Context(), id, data.CourseID); err != nil {
		return errors.Wrap(err, "assigning tutorship")
	}
	return api.retrieve(ctx)
}

func (api *teacherApi) removeTutorship(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.RemoveTutorship(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "removing tutorship")
	}
	return ctx.NoContent(http.StatusNoContent)
}
