package echoapi

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimusoft/elimu/core/library"
)

type libraryApi struct {
	svc      *library.Service
	validate *validator.Validate
}

func registerLibraryAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := libraryApi{svc: deps.LibrarySvc, validate: deps.Validate}

	ng := g.Group("/publication-notes", jwt, staffMiddleware())
	ng.POST("", api.createNote)
	ng.GET("", api.queryNotes)
	ng.GET("/low-stock", api.lowStock)
	ng.GET("/:id", api.retrieveNote)
	ng.PUT("/:id", api.updateNote)
	ng.POST("/:id/restock", api.restock)

	lg := g.Group("/student-notes", jwt, staffMiddleware())
	lg.POST("", api.issue)
	lg.GET("", api.queryLoans)
	lg.GET("/outstanding", api.outstanding)
	lg.GET("/:id", api.retrieveLoan)
	lg.POST("/:id/return", api.returnLoan)
}

func (api *libraryApi) createNote(ctx echo.Context) error {
	var data library.NewPublicationNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewPublicationNote")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	note, err := api.svc.CreateNote(data)
	if err != nil {
		return errors.Wrap(err, "creating publication note")
	}
	return ctx.JSON(http.StatusCreated, note)
}

func (api *libraryApi) queryNotes(ctx echo.Context) error {
	notes, err := api.svc.QueryAllNotes()
	if err != nil {
		return errors.Wrap(err, "querying publication notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *libraryApi) lowStock(ctx echo.Context) error {
	notes, err := api.svc.LowStock()
	if err != nil {
		return errors.Wrap(err, "querying low-stock publication notes")
	}
	return ctx.JSON(http.StatusOK, notes)
}

func (api *libraryApi) retrieveNote(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	note, err := api.svc.GetNote(id)
	if err != nil {
		return errors.Wrap(err, "finding publication note by ID")
	}
	return ctx.JSON(http.StatusOK, note)
}

func (api *libraryApi) updateNote(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data library.UpdatePublicationNote
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdatePublicationNote")
	}

	note, err := api.svc.UpdateNote(id, data)
	if err != nil {
		return errors.Wrap(err, "updating publication note")
	}
	return ctx.JSON(http.StatusOK, note)
}

type restockRequest struct {
	Count int `json:"count" validate:"required,gt=0"`
}

func (api *libraryApi) restock(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data restockRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to restockRequest")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	note, err := api.svc.Restock(id, data.Count, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "restocking publication note")
	}
	return ctx.JSON(http.StatusOK, note)
}

func (api *libraryApi) issue(ctx echo.Context) error {
	var data library.NewStudentNote
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudentNote")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	loan, err := api.svc.Issue(data)
	if err != nil {
		return errors.Wrap(err, "issuing study material")
	}
	return ctx.JSON(http.StatusCreated, loan)
}

func (api *libraryApi) queryLoans(ctx echo.Context) error {
	if raw := ctx.QueryParam("studentId"); raw != "" {
		studentID, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid studentId: "+raw)
		}
		loans, err := api.svc.LoansByStudent(studentID)
		if err != nil {
			return errors.Wrap(err, "querying loans by student")
		}
		return ctx.JSON(http.StatusOK, loans)
	}
	if raw := ctx.QueryParam("noteId"); raw != "" {
		noteID, err := strconv.Atoi(raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid noteId: "+raw)
		}
		loans, err := api.svc.LoansByNote(noteID)
		if err != nil {
			return errors.Wrap(err, "querying loans by note")
		}
		return ctx.JSON(http.StatusOK, loans)
	}

	loans, err := api.svc.QueryAllLoans()
	if err != nil {
		return errors.Wrap(err, "querying loans")
	}
	return ctx.JSON(http.StatusOK, loans)
}

func (api *libraryApi) outstanding(ctx echo.Context) error {
	loans, err := api.svc.OutstandingLoans()
	if err != nil {
		return errors.Wrap(err, "querying outstanding loans")
	}
	return ctx.JSON(http.StatusOK, loans)
}

func (api *libraryApi) retrieveLoan(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	loan, err := api.svc.GetLoan(id)
	if err != nil {
		return errors.Wrap(err, "finding loan by ID")
	}
	return ctx.JSON(http.StatusOK, loan)
}

type returnRequest struct {
	Condition string `json:"condition" validate:"omitempty,oneof=excellent good fair poor"`
	Notes     string `json:"notes"`
}

func (api *libraryApi) returnLoan(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data returnRequest
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to returnRequest")
	}
	if err = api.validate.Struct(&data); err != nil {
		return err
	}

	loan, err := api.svc.Return(id, data.Condition, data.Notes, time.Now().UTC())
	if err != nil {
		return errors.Wrap(err, "returning study material")
	}
	return ctx.JSON(http.StatusOK, loan)
}
