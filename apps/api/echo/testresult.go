package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimusoft/elimu/core/testresult"
)

type testResultApi struct {
	svc      *testresult.Service
	validate *validator.Validate
}

func registerTestResultAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := testResultApi{svc: deps.TestResultSvc, validate: deps.Validate}

	tg := g.Group("/test-results", jwt, staffMiddleware())
	tg.POST("", api.create)
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.PUT("/:id", api.update)
	tg.PUT("/:id/grade", api.grade)
}

func (api *testResultApi) create(ctx echo.Context) error {
	var data testresult.NewTestResult
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTestResult")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	res, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating test result")
	}
	return ctx.JSON(http.StatusCreated, res)
}

func (api *testResultApi) query(ctx echo.Context) error {
	if raw := ctx.QueryParam("studentId"); raw != "" {
		studentID, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid studentId: "+raw)
		}
		results, err := api.svc.ByStudent(studentID)
		if err != nil {
			return errors.Wrap(err, "querying test results by student")
		}
		return ctx.JSON(http.StatusOK, results)
	}

	classID, err := strconv.Atoi(ctx.QueryParam("classId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "studentId or classId is required")
	}
	results, err := api.svc.ByClass(classID)
	if err != nil {
		return errors.Wrap(err, "querying test results by class")
	}
	return ctx.JSON(http.StatusOK, results)
}

func (api *testResultApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	res, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "finding test result by ID")
	}
	return ctx.JSON(http.StatusOK, res)
}

func (api *testResultApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data testresult.UpdateTestResult
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTestResult")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	res, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating test result")
	}
	return ctx.JSON(http.StatusOK, res)
}

type gradeRequest struct {
	Score int `json:"score" validate:"gte=0"`
}

func (api *testResultApi) grade(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data gradeRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to gradeRequest")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	res, err := api.svc.Grade(id, data.Score)
	if err != nil {
		return errors.Wrap(err, "grading test result")
	}
	return ctx.JSON(http.StatusOK, res)
}
