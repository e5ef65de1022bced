package event_test

import (
	"net/mail"
	"testing"
	"time"

	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/event"
	"github.com/elimusoft/elimu/core/user"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
)

// mailRecorder captures announcements synchronously.
type mailRecorder struct {
	sent []core.EmailMessage
}

func (m *mailRecorder) SendMessages(messages ...*core.EmailMessage) {
	for _, msg := range messages {
		m.sent = append(m.sent, *msg)
	}
}

func setup(t *testing.T) (*event.Service, user.Repository, *mailRecorder) {
	t.Helper()
	db := inmemdb.Open()
	users := inmemdb.NewUserRepository(db)
	rec := &mailRecorder{}
	return event.NewService(inmemdb.NewEventRepository(db), users, rec), users, rec
}

func createStudent(t *testing.T, users user.Repository, uname, grade string) {
	t.Helper()
	if _, err := users.CreateUser(user.NewUser{
		Username: uname,
		Password: "Str0ngPwd",
		FullName: "Student " + uname,
		Email:    uname + "@school.test",
		Role:     user.RoleStudent,
		Grade:    grade,
	}); err != nil {
		t.Fatalf("CreateUser failed: %v", err)
	}
}

func TestCreateAnnouncesToTargetGrades(t *testing.T) {
	svc, users, rec := setup(t)
	createStudent(t, users, "grace", "10")
	createStudent(t, users, "kevin", "11")

	_, err := svc.Create(event.NewEvent{
		Title:        "Science fair",
		Date:         time.Date(2026, 5, 12, 0, 0, 0, 0, time.UTC),
		TargetGrades: []string{"11"},
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(rec.sent) != 1 {
		t.Fatalf("sent %d messages; want 1", len(rec.sent))
	}
	want := []mail.Address{{Name: "Student kevin", Address: "kevin@school.test"}}
	if len(rec.sent[0].To) != 1 || rec.sent[0].To[0] != want[0] {
		t.Errorf("recipients = %v; want %v", rec.sent[0].To, want)
	}
}

func TestCreateSchoolWideAnnouncesToEveryone(t *testing.T) {
	svc, users, rec := setup(t)
	createStudent(t, users, "grace", "10")
	createStudent(t, users, "kevin", "11")

	if _, err := svc.Create(event.NewEvent{
		Title: "Parents day",
		Date:  time.Date(2026, 6, 1, 0, 0, 0, 0, time.UTC),
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if len(rec.sent) != 1 || len(rec.sent[0].To) != 2 {
		t.Fatalf("sent = %+v; want one message to both students", rec.sent)
	}
}

func TestUpcoming(t *testing.T) {
	svc, _, _ := setup(t)

	from := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)
	mustCreate := func(date time.Time) event.Event {
		t.Helper()
		evt, err := svc.Create(event.NewEvent{Title: "evt", Date: date})
		if err != nil {
			t.Fatalf("Create failed: %v", err)
		}
		return evt
	}

	past := mustCreate(from.AddDate(0, 0, -3))
	sameDay := mustCreate(time.Date(2026, 5, 10, 8, 0, 0, 0, time.UTC)) // earlier that day still counts
	future := mustCreate(from.AddDate(0, 1, 0))

	upcoming, err := svc.Upcoming(from)
	if err != nil {
		t.Fatalf("Upcoming failed: %v", err)
	}
	ids := make(map[int]bool, len(upcoming))
	for _, evt := range upcoming {
		ids[evt.ID] = true
	}
	if ids[past.ID] {
		t.Error("past event listed as upcoming")
	}
	if !ids[sameDay.ID] || !ids[future.ID] {
		t.Errorf("upcoming ids = %v; want %d and %d", ids, sameDay.ID, future.ID)
	}
}

func TestForGrade(t *testing.T) {
	svc, _, _ := setup(t)

	date := time.Date(2026, 5, 10, 0, 0, 0, 0, time.UTC)
	targeted, err := svc.Create(event.NewEvent{Title: "grade 11 trip", Date: date, TargetGrades: []string{"11"}})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	schoolWide, err := svc.Create(event.NewEvent{Title: "assembly", Date: date})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	events, err := svc.ForGrade("10")
	if err != nil {
		t.Fatalf("ForGrade failed: %v", err)
	}
	if len(events) != 1 || events[0].ID != schoolWide.ID {
		t.Errorf("grade 10 events = %+v; want only the school-wide one", events)
	}

	events, _ = svc.ForGrade("11")
	ids := make(map[int]bool, len(events))
	for _, evt := range events {
		ids[evt.ID] = true
	}
	if !ids[targeted.ID] || !ids[schoolWide.ID] {
		t.Errorf("grade 11 events = %v; want both", ids)
	}
}
