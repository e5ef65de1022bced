package event

import (
	"errors"
	"fmt"
	"net/mail"
	"time"

	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/user"
)

var ErrNotFound = errors.New("event not found")

type (
	Repository interface {
		CreateEvent(ne NewEvent) (Event, error)
		QueryAllEvents() ([]Event, error)
		GetEventByID(id int) (Event, error)
		UpdateEvent(id int, up UpdateEvent) (Event, error)
	}

	Service struct {
		repo  Repository
		users user.Repository
		mail  core.EmailService
	}
)

func NewService(repo Repository, users user.Repository, mailSvc core.EmailService) *Service {
	return &Service{repo: repo, users: users, mail: mailSvc}
}

// Create records the event and emails an announcement to the students of the
// targeted grades (all students when no grades are targeted).
func (svc *Service) Create(ne NewEvent) (Event, error) {
	evt, err := svc.repo.CreateEvent(ne)
	if err != nil {
		return Event{}, err
	}
	svc.announce(evt)
	return evt, nil
}

func (svc *Service) QueryAll() ([]Event, error) {
	return svc.repo.QueryAllEvents()
}

func (svc *Service) GetByID(id int) (Event, error) {
	return svc.repo.GetEventByID(id)
}

func (svc *Service) Update(id int, up UpdateEvent) (Event, error) {
	return svc.repo.UpdateEvent(id, up)
}

// Upcoming returns events on or after the given day, calendar-day granularity.
func (svc *Service) Upcoming(from time.Time) ([]Event, error) {
	events, err := svc.repo.QueryAllEvents()
	if err != nil {
		return nil, err
	}

	upcoming := make([]Event, 0, len(events))
	for _, evt := range events {
		if evt.Date.After(from) || core.SameDay(evt.Date, from) {
			upcoming = append(upcoming, evt)
		}
	}
	return upcoming, nil
}

// ForGrade returns events targeting the given grade, school-wide events
// included.
func (svc *Service) ForGrade(grade string) ([]Event, error) {
	events, err := svc.repo.QueryAllEvents()
	if err != nil {
		return nil, err
	}

	matched := make([]Event, 0, len(events))
	for _, evt := range events {
		if evt.ForGrade(grade) {
			matched = append(matched, evt)
		}
	}
	return matched, nil
}

func (svc *Service) announce(evt Event) {
	if svc.mail == nil {
		return
	}
	students, err := svc.users.FilterUsersByRole(user.RoleStudent)
	if err != nil {
		return // announcement is best-effort; the event itself is saved
	}

	to := make([]mail.Address, 0, len(students))
	for _, st := range students {
		if evt.ForGrade(st.Grade) && st.Email != "" {
			to = append(to, mail.Address{Name: st.FullName, Address: st.Email})
		}
	}
	if len(to) == 0 {
		return
	}

	body := fmt.Sprintf("%s\n\nDate: %s", evt.Description, evt.Date.Format("Mon, 02 Jan 2006"))
	if evt.Time != "" {
		body += " at " + evt.Time
	}
	svc.mail.SendMessages(&core.EmailMessage{
		To:          to,
		Subject:     "Upcoming event: " + evt.Title,
		TextContent: body,
	})
}
