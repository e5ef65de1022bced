package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/elimusoft/elimu/core/event"
)

type eventApi struct {
	svc      *event.Service
	validate *validator.Validate
}

func registerEventAPI(g *echo.Group, jwt echo.MiddlewareFunc, deps ServerDeps) {
	api := eventApi{svc: deps.EventSvc, validate: deps.Validate}

	eg := g.Group("/events", jwt)
	eg.POST("", api.create, staffMiddleware())
	eg.GET("", api.query)
	eg.GET("/upcoming", api.upcoming)
	eg.GET("/:id", api.retrieve)
	eg.PUT("/:id", api.update, staffMiddleware())
}

func (api *eventApi) create(ctx echo.Context) error {
	var data event.NewEvent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewEvent")
	}
	if err := api.validate.Struct(&data); err != nil {
		return err
	}

	evt, err := api.svc.Create(data)
	if err != nil {
		return errors.Wrap(err, "creating event")
	}
	return ctx.JSON(http.StatusCreated, evt)
}

// query lists every event, or only those visible to a grade when `grade` is set.
func (api *eventApi) query(ctx echo.Context) error {
	if grade := ctx.QueryParam("grade"); grade != "" {
		events, err := api.svc.ForGrade(grade)
		if err != nil {
			return errors.Wrap(err, "querying events by grade")
		}
		return ctx.JSON(http.StatusOK, events)
	}

	events, err := api.svc.QueryAll()
	if err != nil {
		return errors.Wrap(err, "querying events")
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) upcoming(ctx echo.Context) error {
	from, err := dateQuery(ctx, "from")
	if err != nil {
		return err
	}
	events, err := api.svc.Upcoming(from)
	if err != nil {
		return errors.Wrap(err, "querying upcoming events")
	}
	return ctx.JSON(http.StatusOK, events)
}

func (api *eventApi) retrieve(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	evt, err := api.svc.GetByID(id)
	if err != nil {
		return errors.Wrap(err, "finding event by ID")
	}
	return ctx.JSON(http.StatusOK, evt)
}

func (api *eventApi) update(ctx echo.Context) error {
	id, err := intParam(ctx, "id")
	if err != nil {
		return err
	}
	var data event.UpdateEvent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateEvent")
	}

	evt, err := api.svc.Update(id, data)
	if err != nil {
		return errors.Wrap(err, "updating event")
	}
	return ctx.JSON(http.StatusOK, evt)
}
