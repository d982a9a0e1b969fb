package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/centro/core/subject"
)

type subjectApi struct {
	svc      *subject.Service
	validate *validator.Validate
}

func registerSubjectAPI(g *echo.Group, svc *subject.Service, validate *validator.Validate) {
	api := subjectApi{svc: svc, validate: validate}

	sg := g.Group("/subjects")
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.GET("/:id", api.retrieve)
}

func (api *subjectApi) query(ctx echo.Context) error {
	subjects, err := api.svc.QueryAll(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "querying subjects")
	}
	return ctx.JSON(http.StatusOK, subjects)
}

func (api *subjectApi) create(ctx echo.Context) error {
	var data subject.NewSubject
	if err := bindAndValidate(ctx, &data, api.validate); err != nil {
		return err
	}
	s, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating subject")
	}
	return ctx.JSON(http.StatusCreated, s)
}

func (api *subjectApi) retrieve(ctx echo.Context) error {
	id, err := paramID(ctx)
	if err != nil {
		return err
	}
	s, err := api.svc.Get(ctx.Request().Context(), id)
	if err != nil {
		return errors.Wrap(err, "getting subject")
	}
	return ctx.JSON(http.StatusOK, s)
}
