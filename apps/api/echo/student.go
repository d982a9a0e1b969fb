package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/student"
)

type studentApi struct {
	svc      *student.Service
	validate *validator.Validate
}

func registerStudentAPI(g *echo.Group, svc *student.Service, validate *validator.Validate) {
	api := studentApi{svc: svc, validate: validate}

	sg := g.Group("/students")
	sg.GET("", api.query)
	sg.POST("", api.create)

	// detail endpoints
	dg := sg.Group("/:id")
	dg.GET("", api.retrieve)
	dg.DELETE("", api.destroy)
	dg.GET("/eligible-subjects", api.eligibleSubjects)
}

func (api *studentApi) query(ctx echo.Context) error {
	students, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying students")
	}
	return ctx.JSON(http.StatusOK, students)
}

func (api *studentApi) create(ctx echo.Context) error {
	var data person.NewPerson
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *studentApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	s, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting student")
	}
	return ctx.JSON(http.StatusOK, s)
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *studentApi) eligibleSubjects(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	subjects, err := api.svc.EligibleSubjects(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "querying eligible subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}
