package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/darasahq/darasa/core/feedback"
	"github.com/darasahq/darasa/core/report"
)

type reportApi struct {
	reportSvc   *report.Service
	feedbackSvc *feedback.Service
}

func registerReportAPI(g *echo.Group, jwt echo.MiddlewareFunc, reportSvc *report.Service, feedbackSvc *feedback.Service) {
	api := reportApi{reportSvc: reportSvc, feedbackSvc: feedbackSvc}

	// all teacher-only
	tg := g.Group("", jwt, teacherMiddleware())
	tg.GET("/students", api.roster)
	tg.GET("/reports/class", api.classReport)
	tg.GET("/feedback", api.queryFeedback)
	tg.PUT("/feedback/:id/response", api.respondFeedback)
}

func (api *reportApi) roster(ctx echo.Context) error {
	rows, err := api.reportSvc.Roster()
	if err != nil {
		return errors.Wrap(err, "building roster")
	}
	if rows == nil {
		rows = []report.RosterRow{}
	}
	return ctx.JSON(http.StatusOK, rows)
}

func (api *reportApi) classReport(ctx echo.Context) error {
	rep, err := api.reportSvc.Class()
	if err != nil {
		return errors.Wrap(err, "building class report")
	}
	return ctx.JSON(http.StatusOK, rep)
}

func (api *reportApi) queryFeedback(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, api.feedbackSvc.QueryAll())
}

func (api *reportApi) respondFeedback(ctx echo.Context) error {
	id, err := strconv.Atoi(ctx.Param("id"))
	if err != nil {
		return errHttpNotFound
	}
	var data RespondRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RespondRequest")
	}
	f, err := api.feedbackSvc.Respond(id, data.Response)
	if err != nil {
		return errors.Wrap(err, "responding to feedback")
	}
	return ctx.JSON(http.StatusOK, f)
}
