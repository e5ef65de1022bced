package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimusoft/elimu/core/finance"
)

type financeApi struct {
	svc      *finance.Service
	validate *validator.Validate
}

func registerFinanceAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := financeApi{svc: deps.FinanceSvc, validate: deps.Validate}

	ig := g.Group("/installments", jwt, adminMiddleware())
	ig.POST("", api.createInstallment)
	ig.GET("", api.queryInstallments)
	ig.GET("/overdue", api.overdueInstallments)
	ig.POST("/mark-overdue", api.markOverdue)
	ig.GET("/:id", api.retrieveInstallment)
	ig.PUT("/:id", api.updateInstallment)
	ig.POST("/:id/pay", api.payInstallment)

	pg := g.Group("/teacher-payments", jwt, adminMiddleware())
	pg.POST("", api.createPayment)
	pg.GET("", api.queryPayments)
	pg.GET("/:id", api.retrievePayment)
	pg.PUT("/:id", api.updatePayment)
}

func (api *financeApi) createInstallment(ctx echo.Context) error {
	var data finance.NewInstallment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewInstallment")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	inst, err := api.svc.CreateInstallment(data)
	if err != nil {
		return errors.Wrap(err, "creating installment")
	}
	return ctx.JSON(http.StatusCreated, inst)
}

func (api *financeApi) queryInstallments(ctx echo.Context) error {
	if raw := ctx.QueryParam("studentId"); raw != "" {
		studentID, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid studentId: "+raw)
		}
		installments, err := api.svc.InstallmentsByStudent(studentID)
		if err != nil {
			return errors.Wrap(err, "querying installments by student")
		}
		return ctx.JSON(http.StatusOK, installments)
	}

	installments, err := api.svc.QueryAllInstallments()
	if err != nil {
		return errors.Wrap(err, "querying installments")
	}
	return ctx.JSON(http.StatusOK, installments)
}

func (api *financeApi) overdueInstallments(ctx echo.Context) error {
	asOf, err := dateQuery(ctx, "asOf")
	if err != nil {
		return err
	}
	installments, err := api.svc.OverdueInstallments(asOf)
	if err != nil {
		return errors.Wrap(err, "querying overdue installments")
	}
	return ctx.JSON(http.StatusOK, installments)
}

func (api *financeApi) markOverdue(ctx echo.Context) error {
	asOf, err := dateQuery(ctx, "asOf")
	if err != nil {
		return err
	}
	n, err := api.svc.MarkOverdue(asOf)
	if err != nil {
		return errors.Wrap(err, "flagging overdue installments")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"marked": n})
}

func (api *financeApi) retrieveInstallment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	inst, err := api.svc.GetInstallment(id)
	if err != nil {
		return errors.Wrap(err, "finding installment by ID")
	}
	return ctx.JSON(http.StatusOK, inst)
}

func (api *financeApi) updateInstallment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data finance.UpdateInstallment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateInstallment")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	inst, err := api.svc.UpdateInstallment(id, data)
	if err != nil {
		return errors.Wrap(err, "updating installment")
	}
	return ctx.JSON(http.StatusOK, inst)
}

func (api *financeApi) payInstallment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	inst, err := api.svc.RecordPayment(id, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "recording installment payment")
	}
	return ctx.JSON(http.StatusOK, inst)
}

func (api *financeApi) createPayment(ctx echo.Context) error {
	var data finance.NewTeacherPayment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewTeacherPayment")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	payment, err := api.svc.CreateTeacherPayment(data)
	if err != nil {
		return errors.Wrap(err, "creating teacher payment")
	}
	return ctx.JSON(http.StatusCreated, payment)
}

func (api *financeApi) queryPayments(ctx echo.Context) error {
	if raw := ctx.QueryParam("teacherId"); raw != "" {
		teacherID, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid teacherId: "+raw)
		}
		payments, err := api.svc.TeacherPaymentsByTeacher(teacherID)
		if err != nil {
			return errors.Wrap(err, "querying teacher payments by teacher")
		}
		return ctx.JSON(http.StatusOK, payments)
	}

	payments, err := api.svc.QueryAllTeacherPayments()
	if err != nil {
		return errors.Wrap(err, "querying teacher payments")
	}
	return ctx.JSON(http.StatusOK, payments)
}

func (api *financeApi) retrievePayment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	payment, err := api.svc.GetTeacherPayment(id)
	if err != nil {
		return errors.Wrap(err, "finding teacher payment by ID")
	}
	return ctx.JSON(http.StatusOK, payment)
}

func (api *financeApi) updatePayment(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data finance.UpdateTeacherPayment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateTeacherPayment")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	payment, err := api.svc.UpdateTeacherPayment(id, data)
	if err != nil {
		return errors.Wrap(err, "updating teacher payment")
	}
	return ctx.JSON(http.StatusOK, payment)
}
