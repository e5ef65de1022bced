package inmemdb

import "github.com/elimusoft/elimu/core/event"

type eventRepository struct {
	db *DB
}

var _ event.Repository = (*eventRepository)(nil) // interface compliance check

func NewEventRepository(db *DB) event.Repository {
	return &eventRepository{db: db}
}

func (repo *eventRepository) query() []event.Event {
	events := make([]event.Event, 0, len(repo.db.events))
	for _, evt := range repo.db.events {
		events = append(events, *evt)
	}
	return events
}

func (repo *eventRepository) CreateEvent(ne event.NewEvent) (event.Event, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	evt := ne.Event()
	repo.db.eventSeq++
	evt.ID = repo.db.eventSeq
	repo.db.events[evt.ID] = &evt
	return evt, nil
}

func (repo *eventRepository) QueryAllEvents() ([]event.Event, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()
	return repo.query(), nil
}

func (repo *eventRepository) GetEventByID(id int) (event.Event, error) {
	repo.db.mu.RLock()
	defer repo.db.mu.RUnlock()

	if evt, ok := repo.db.events[id]; ok {
		return *evt, nil
	}
	return event.Event{}, event.ErrNotFound
}

func (repo *eventRepository) UpdateEvent(id int, up event.UpdateEvent) (event.Event, error) {
	repo.db.mu.Lock()
	defer repo.db.mu.Unlock()

	origEvt, ok := repo.db.events[id]
	if !ok {
		return event.Event{}, event.ErrNotFound
	}

	// only save set fields
	if up.Title != nil {
		origEvt.Title = *up.Title
	}
	if up.Description != nil {
		origEvt.Description = *up.Description
	}
	if up.Date != nil {
		origEvt.Date = *up.Date
	}
	if up.Time != nil {
		origEvt.Time = *up.Time
	}
	if up.TargetGrades != nil {
		origEvt.TargetGrades = *up.TargetGrades
	}

	repo.db.events[id] = origEvt
	return *origEvt, nil
}
