package inmemdb_test

import (
	"reflect"
	"testing"
	"time"

	"github.com/elimusoft/elimu/core/attendance"
	"github.com/elimusoft/elimu/core/finance"
	"github.com/elimusoft/elimu/core/library"
	"github.com/elimusoft/elimu/core/user"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
)

func newUser(t *testing.T, repo user.Repository, uname, role string) user.User {
	t.Helper()
	usr, err := repo.CreateUser(user.NewUser{
		Username: uname,
		Password: "Str0ngPwd",
		FullName: "Test " + uname,
		Email:    uname + "@example.test",
		Role:     role,
	})
	if err != nil {
		t.Fatalf("CreateUser(%s) failed: %v", uname, err)
	}
	return usr
}

func TestUserRepository(t *testing.T) {
	db := inmemdb.Open()
	repo := inmemdb.NewUserRepository(db)

	u1 := newUser(t, repo, "asha", user.RoleTeacher)
	u2 := newUser(t, repo, "brian", user.RoleStudent)

	if u1.ID <= 0 {
		t.Errorf("first id = %d; want > 0", u1.ID)
	}
	if u2.ID <= u1.ID {
		t.Errorf("ids not strictly increasing: %d then %d", u1.ID, u2.ID)
	}

	got, err := repo.GetUserByID(u1.ID)
	if err != nil {
		t.Fatalf("GetUserByID failed: %v", err)
	}
	if !reflect.DeepEqual(got, u1) {
		t.Errorf("GetUserByID = %+v; want %+v", got, u1)
	}

	got, err = repo.GetUserByUsername("brian")
	if err != nil {
		t.Fatalf("GetUserByUsername failed: %v", err)
	}
	if got.ID != u2.ID {
		t.Errorf("GetUserByUsername id = %d; want %d", got.ID, u2.ID)
	}

	students, err := repo.FilterUsersByRole(user.RoleStudent)
	if err != nil {
		t.Fatalf("FilterUsersByRole failed: %v", err)
	}
	if len(students) != 1 || students[0].ID != u2.ID {
		t.Errorf("FilterUsersByRole = %+v; want only %d", students, u2.ID)
	}

	// partial update leaves unset fields untouched
	email := "asha@school.test"
	updated, err := repo.UpdateUser(u1.ID, user.UpdateUser{Email: &email})
	if err != nil {
		t.Fatalf("UpdateUser failed: %v", err)
	}
	if updated.Email != email {
		t.Errorf("Email = %q; want %q", updated.Email, email)
	}
	if updated.FullName != u1.FullName || updated.Username != u1.Username {
		t.Errorf("unset fields changed: %+v", updated)
	}

	// updating a missing id fails without side effects
	if _, err = repo.UpdateUser(999, user.UpdateUser{Email: &email}); err != user.ErrNotFound {
		t.Errorf("UpdateUser(999) err = %v; want ErrNotFound", err)
	}
	all, err := repo.QueryAllUsers()
	if err != nil {
		t.Fatalf("QueryAllUsers failed: %v", err)
	}
	if len(all) != 2 {
		t.Errorf("len(all) = %d; want 2", len(all))
	}
}

func TestSessionStore(t *testing.T) {
	db := inmemdb.Open()
	store := inmemdb.NewSessionStore(db)

	now := time.Now().UTC()
	sess, err := store.SaveSession(user.Session{UserID: 1, CreatedAt: now, ExpiresAt: now.Add(time.Hour)})
	if err != nil {
		t.Fatalf("SaveSession failed: %v", err)
	}
	if sess.ID == "" {
		t.Fatal("SaveSession did not assign an id")
	}

	got, err := store.GetSession(sess.ID)
	if err != nil {
		t.Fatalf("GetSession failed: %v", err)
	}
	if !reflect.DeepEqual(got, sess) {
		t.Errorf("GetSession = %+v; want %+v", got, sess)
	}

	if err = store.DeleteSession(sess.ID); err != nil {
		t.Fatalf("DeleteSession failed: %v", err)
	}
	if _, err = store.GetSession(sess.ID); err != user.ErrSessionNotFound {
		t.Errorf("GetSession after delete err = %v; want ErrSessionNotFound", err)
	}
}

func TestAttendanceCalendarDayFilter(t *testing.T) {
	db := inmemdb.Open()
	repo := inmemdb.NewAttendanceRepository(db)

	morning := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	evening := time.Date(2026, 3, 9, 18, 30, 0, 0, time.UTC)
	nextDay := time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)

	for _, date := range []time.Time{morning, evening, nextDay} {
		if _, err := repo.CreateAttendance(attendance.NewAttendance{StudentID: 1, ClassID: 1, Date: date}); err != nil {
			t.Fatalf("CreateAttendance failed: %v", err)
		}
	}

	records, err := repo.FilterAttendanceByDate(time.Date(2026, 3, 9, 23, 59, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("FilterAttendanceByDate failed: %v", err)
	}
	if len(records) != 2 {
		t.Errorf("len(records) = %d; want 2 (same calendar day regardless of time)", len(records))
	}
}

func TestInstallmentPartialUpdate(t *testing.T) {
	db := inmemdb.Open()
	repo := inmemdb.NewInstallmentRepository(db)

	inst, err := repo.CreateInstallment(finance.NewInstallment{
		StudentID: 1,
		Amount:    15000,
		DueDate:   time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("CreateInstallment failed: %v", err)
	}
	if inst.Status != finance.InstallmentPending {
		t.Errorf("default status = %q; want %q", inst.Status, finance.InstallmentPending)
	}

	paidAt := time.Date(2026, 1, 28, 10, 0, 0, 0, time.UTC)
	status := finance.InstallmentPaid
	updated, err := repo.UpdateInstallment(inst.ID, finance.UpdateInstallment{Status: &status, PaymentDate: &paidAt})
	if err != nil {
		t.Fatalf("UpdateInstallment failed: %v", err)
	}
	if updated.Status != finance.InstallmentPaid {
		t.Errorf("status = %q; want %q", updated.Status, finance.InstallmentPaid)
	}
	if updated.PaymentDate == nil || !updated.PaymentDate.Equal(paidAt) {
		t.Errorf("paymentDate = %v; want %v", updated.PaymentDate, paidAt)
	}
	if updated.Amount != 15000 || !updated.DueDate.Equal(inst.DueDate) {
		t.Errorf("unset fields changed: %+v", updated)
	}
}

func TestLoanStockCascade(t *testing.T) {
	db := inmemdb.Open()
	notes := inmemdb.NewNoteRepository(db)
	loans := inmemdb.NewLoanRepository(db)

	note, err := notes.CreatePublicationNote(library.NewPublicationNote{
		Subject:    "Mathematics",
		Grade:      "10",
		TotalStock: 10,
	})
	if err != nil {
		t.Fatalf("CreatePublicationNote failed: %v", err)
	}
	if note.AvailableStock != 10 {
		t.Fatalf("availableStock = %d; want totalStock 10", note.AvailableStock)
	}
	if note.LowStockThreshold != library.DefaultLowStockThreshold {
		t.Fatalf("lowStockThreshold = %d; want %d", note.LowStockThreshold, library.DefaultLowStockThreshold)
	}

	// issuing decrements available stock
	issued := make([]library.StudentNote, 0, 6)
	for i := 0; i < 6; i++ {
		loan, err := loans.CreateStudentNote(library.NewStudentNote{StudentID: i + 1, NoteID: note.ID})
		if err != nil {
			t.Fatalf("CreateStudentNote failed: %v", err)
		}
		issued = append(issued, loan)
	}
	note, _ = notes.GetPublicationNoteByID(note.ID)
	if note.AvailableStock != 4 {
		t.Errorf("availableStock after 6 issues = %d; want 4", note.AvailableStock)
	}

	low, err := notes.LowStockPublicationNotes()
	if err != nil {
		t.Fatalf("LowStockPublicationNotes failed: %v", err)
	}
	if len(low) != 1 || low[0].ID != note.ID {
		t.Errorf("low stock list = %+v; want the note at stock 4 <= threshold 5", low)
	}

	// returning increments available stock
	returned := true
	for _, loan := range issued[:2] {
		if _, err = loans.UpdateStudentNote(loan.ID, library.UpdateStudentNote{IsReturned: &returned}); err != nil {
			t.Fatalf("UpdateStudentNote failed: %v", err)
		}
	}
	note, _ = notes.GetPublicationNoteByID(note.ID)
	if note.AvailableStock != 6 {
		t.Errorf("availableStock after 2 returns = %d; want 6", note.AvailableStock)
	}

	low, _ = notes.LowStockPublicationNotes()
	if len(low) != 0 {
		t.Errorf("low stock list = %+v; want empty at stock 6", low)
	}

	// flipping an already-returned loan again must not touch stock
	if _, err = loans.UpdateStudentNote(issued[0].ID, library.UpdateStudentNote{IsReturned: &returned}); err != nil {
		t.Fatalf("UpdateStudentNote failed: %v", err)
	}
	note, _ = notes.GetPublicationNoteByID(note.ID)
	if note.AvailableStock != 6 {
		t.Errorf("availableStock after repeated return = %d; want 6", note.AvailableStock)
	}
}

func TestLoanAgainstMissingNote(t *testing.T) {
	db := inmemdb.Open()
	loans := inmemdb.NewLoanRepository(db)

	loan, err := loans.CreateStudentNote(library.NewStudentNote{StudentID: 1, NoteID: 42})
	if err != nil {
		t.Fatalf("CreateStudentNote failed: %v", err)
	}
	if loan.ID <= 0 {
		t.Errorf("loan id = %d; want > 0", loan.ID)
	}
	if loan.IsReturned {
		t.Error("new loan is marked returned")
	}
}

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

func TestSeed(t *testing.T) {
	db := inmemdb.Open()
	inmemdb.Seed(db, nopLogger{})

	users, err := inmemdb.NewUserRepository(db).QueryAllUsers()
	if err != nil {
		t.Fatalf("QueryAllUsers failed: %v", err)
	}
	if len(users) == 0 {
		t.Error("seed created no users")
	}

	notes, err := inmemdb.NewNoteRepository(db).LowStockPublicationNotes()
	if err != nil {
		t.Fatalf("LowStockPublicationNotes failed: %v", err)
	}
	if len(notes) == 0 {
		t.Error("seed dataset has no low-stock publication note")
	}
}
