package pgrepos

import (
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/elimusoft/elimu/core/event"
)

type eventRepository struct {
	repo
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *sqlx.DB, timeout time.Duration) event.Repository {
	return &eventRepository{newRepo(db, timeout)}
}

// eventRow carries the pq array type; the core model keeps a plain slice.
type eventRow struct {
	ID           int            `db:"id"`
	Title        string         `db:"title"`
	Description  string         `db:"description"`
	Date         time.Time      `db:"date"`
	Time         string         `db:"time"`
	TargetGrades pq.StringArray `db:"target_grades"`
}

func (row eventRow) event() event.Event {
	return event.Event{
		ID:           row.ID,
		Title:        row.Title,
		Description:  row.Description,
		Date:         row.Date,
		Time:         row.Time,
		TargetGrades: row.TargetGrades,
	}
}

func (r *eventRepository) CreateEvent(ne event.NewEvent) (event.Event, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	evt := ne.Event()
	const q = `
		INSERT INTO events (title, description, date, time, target_grades)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	if err := r.db.GetContext(ctx, &evt.ID, q,
		evt.Title, evt.Description, evt.Date, evt.Time, pq.StringArray(evt.TargetGrades),
	); err != nil {
		return event.Event{}, translate(err, event.ErrNotFound, "inserting event")
	}
	return evt, nil
}

func (r *eventRepository) QueryAllEvents() ([]event.Event, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	rows := make([]eventRow, 0)
	if err := r.db.SelectContext(ctx, &rows, `SELECT * FROM events ORDER BY id`); err != nil {
		return nil, translate(err, event.ErrNotFound, "querying events")
	}

	events := make([]event.Event, 0, len(rows))
	for _, row := range rows {
		events = append(events, row.event())
	}
	return events, nil
}

func (r *eventRepository) GetEventByID(id int) (event.Event, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var row eventRow
	if err := r.db.GetContext(ctx, &row, `SELECT * FROM events WHERE id = $1`, id); err != nil {
		return event.Event{}, translate(err, event.ErrNotFound, "getting event")
	}
	return row.event(), nil
}

func (r *eventRepository) UpdateEvent(id int, up event.UpdateEvent) (event.Event, error) {
	ctx, cancel := r.ctx()
	defer cancel()

	var grades interface{}
	if up.TargetGrades != nil {
		grades = pq.StringArray(*up.TargetGrades)
	}

	const q = `
		UPDATE events SET
			title         = COALESCE($2, title),
			description   = COALESCE($3, description),
			date          = COALESCE($4, date),
			time          = COALESCE($5, time),
			target_grades = COALESCE($6, target_grades)
		WHERE id = $1
		RETURNING *`
	var row eventRow
	if err := r.db.GetContext(ctx, &row, q, id, up.Title, up.Description, up.Date, up.Time, grades); err != nil {
		return event.Event{}, translate(err, event.ErrNotFound, "updating event")
	}
	return row.event(), nil
}
