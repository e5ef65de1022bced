package echoapi

import (
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimusoft/elimu/core/attendance"
)

type attendanceApi struct {
	svc      *attendance.Service
	validate *validator.Validate
}

func registerAttendanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := attendanceApi{svc: deps.AttendanceSvc, validate: deps.Validate}

	ag := g.Group("/attendance", jwt, staffMiddleware())
	ag.POST("", api.create)
	ag.GET("", api.query)
	ag.GET("/summary", api.summary)
	ag.GET("/:id", api.retrieve)
	ag.PUT("/:id", api.update)
}

func (api *attendanceApi) create(ctx echo.Context) error {
	var data attendance.NewAttendance
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAttendance")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	att, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating attendance record")
	}
	return ctx.JSON(http.StatusCreated, att)
}

// query filters by studentId, classId or date (calendar day); the first
// recognized filter wins.
func (api *attendanceApi) query(ctx echo.Context) error {
	if raw := ctx.QueryParam("studentId"); raw != "" {
		studentID, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid studentId: "+raw)
		}
		records, err := api.svc.ByStudent(studentID)
		if err != nil {
			return errors.Wrap(err, "querying attendance by student")
		}
		return ctx.JSON(http.StatusOK, records)
	}
	if raw := ctx.QueryParam("classId"); raw != "" {
		classID, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid classId: "+raw)
		}
		records, err := api.svc.ByClass(classID)
		if err != nil {
			return errors.Wrap(err, "querying attendance by class")
		}
		return ctx.JSON(http.StatusOK, records)
	}

	date, err := dateQuery(ctx, "date")
	if err != nil {
		return err
	}
	records, err := api.svc.ByDate(date)
	if err != nil {
		return errors.Wrap(err, "querying attendance by date")
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *attendanceApi) summary(ctx echo.Context) error {
	classID, err := strconv.Atoi(ctx.QueryParam("classId"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "classId is required")
	}
	date, err := dateQuery(ctx, "date")
	if err != nil {
		return err
	}

	summary, err := api.svc.Summarize(classID, date)
	if err != nil {
		return errors.Wrap(err, "summarizing attendance")
	}
	return ctx.JSON(http.StatusOK, summary)
}

func (api *attendanceApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	att, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "finding attendance record by ID")
	}
	return ctx.JSON(http.StatusOK, att)
}

func (api *attendanceApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data attendance.UpdateAttendance
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAttendance")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	att, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating attendance record")
	}
	return ctx.JSON(http.StatusOK, att)
}
