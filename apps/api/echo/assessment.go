package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/assessment"
)

type assessmentApi struct {
	svc      *assessment.Service
	validate *validator.Validate
}

func registerAssessmentAPI(g *echo.Group, jwt echo.MiddlewareFunc, svc *assessment.Service, validate *validator.Validate) {
	api := assessmentApi{svc: svc, validate: validate}

	ag := g.Group("/assessments", jwt)
	ag.GET("", api.query)

	// mutations are teacher-only
	tg := ag.Group("", teacherMiddleware())
	tg.POST("", api.create)

	dg := ag.Group("/:id")
	dg.GET("", api.retrieve)
	dg.PUT("", api.update, teacherMiddleware())
	dg.DELETE("", api.destroy, teacherMiddleware())
}

func assessmentID(ctx echo.Context) (int, error) {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return 0, errHttpNotFound
	}
	return id, nil
}

func (api *assessmentApi) query(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.svc.QueryAll())
}

func (api *assessmentApi) retrieve(ctx echo.Context) error {
	id, err := assessmentID(ctx)
	if err != nil {
		return err
	}
	a, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "finding assessment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assessmentApi) create(ctx echo.Context) error {
	var data assessment.NewAssessment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	return ctx.JSON(http.StatusCreated, api.svc.Create(data))
}

func (api *assessmentApi) update(ctx echo.Context) error {
	id, err := assessmentID(ctx)
	if err != nil {
		return err
	}
	var data assessment.NewAssessment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssessment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}
	a, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating assessment")
	}
	return ctx.JSON(http.StatusOK, a)
}

func (api *assessmentApi) destroy(ctx echo.Context) error {
	id, err := assessmentID(ctx)
	if err != nil {
		return err
	}
	if err := api.svc.Delete(id); err != nil {
		return errors.Wrap(err, "deleting assessment")
	}
	return ctx.NoContent(http.StatusNoContent)
}
