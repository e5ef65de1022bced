package inmemdb

import (
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/attendance"
	"github.com/elimusoft/elimu/core/class"
	"github.com/elimusoft/elimu/core/event"
	"github.com/elimusoft/elimu/core/finance"
	"github.com/elimusoft/elimu/core/library"
	"github.com/elimusoft/elimu/core/student"
	"github.com/elimusoft/elimu/core/testresult"
	"github.com/elimusoft/elimu/core/user"
)

// Seed populates db with the demo dataset: every entity, every status value,
// and at least one loan against a publication note. Seeding failures are
// logged and swallowed; the store stays usable either way.
func Seed(db *DB, logger core.Logger) {
	if err := seed(db); err != nil {
		logger.Error(fmt.Sprintf("seeding demo data: %v", err), err)
	}
}

func seed(db *DB) error {
	users := NewUserRepository(db)
	students := NewStudentRepository(db)
	classes := NewClassRepository(db)
	attRepo := NewAttendanceRepository(db)
	results := NewTestResultRepository(db)
	installments := NewInstallmentRepository(db)
	payments := NewTeacherPaymentRepository(db)
	events := NewEventRepository(db)
	notes := NewNoteRepository(db)
	loans := NewLoanRepository(db)

	now := time.Now().UTC()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	dob := time.Date(2008, time.March, 14, 0, 0, 0, 0, time.UTC)

	if _, err := users.CreateUser(user.NewUser{
		Username: "admin", Password: "admin123", FullName: "Amina Okoro",
		Email: "admin@elimu.test", Role: user.RoleAdmin,
	}); err != nil {
		return errors.Wrap(err, "seeding admin")
	}

	mwangi, err := users.CreateUser(user.NewUser{
		Username: "jmwangi", Password: "teach123", FullName: "Joseph Mwangi",
		Email: "jmwangi@elimu.test", Role: user.RoleTeacher,
	})
	if err != nil {
		return errors.Wrap(err, "seeding teacher")
	}
	achieng, err := users.CreateUser(user.NewUser{
		Username: "fachieng", Password: "teach123", FullName: "Faith Achieng",
		Email: "fachieng@elimu.test", Role: user.RoleTeacher,
	})
	if err != nil {
		return errors.Wrap(err, "seeding teacher")
	}

	studentSeed := []struct {
		uname, name, email, grade, parent, phone string
	}{
		{"dkamau", "David Kamau", "dkamau@elimu.test", "10", "Grace Kamau", "+254700111222"},
		{"wnjeri", "Wanjiru Njeri", "wnjeri@elimu.test", "10", "Peter Njeri", "+254700333444"},
		{"botieno", "Brian Otieno", "botieno@elimu.test", "11", "Mary Otieno", "+254700555666"},
		{"lwambui", "Lucy Wambui", "lwambui@elimu.test", "11", "James Wambui", "+254700777888"},
	}
	studentIDs := make([]int, 0, len(studentSeed))
	for _, s := range studentSeed {
		usr, err := users.CreateUser(user.NewUser{
			Username: s.uname, Password: "learn123", FullName: s.name,
			Email: s.email, Role: user.RoleStudent, Grade: s.grade,
		})
		if err != nil {
			return errors.Wrap(err, "seeding student user")
		}
		st, err := students.CreateStudent(student.NewStudent{
			UserID: usr.ID, ParentName: s.parent, Phone: s.phone,
			Address: "Nairobi", DateOfBirth: &dob,
		})
		if err != nil {
			return errors.Wrap(err, "seeding student profile")
		}
		studentIDs = append(studentIDs, st.ID)
	}

	math10, err := classes.CreateClass(class.NewClass{
		Name: "Mathematics 10", Grade: "10", TeacherID: mwangi.ID, Schedule: "Mon/Wed/Fri 08:00",
	})
	if err != nil {
		return errors.Wrap(err, "seeding class")
	}
	phys11, err := classes.CreateClass(class.NewClass{
		Name: "Physics 11", Grade: "11", TeacherID: achieng.ID, Schedule: "Tue/Thu 10:00",
	})
	if err != nil {
		return errors.Wrap(err, "seeding class")
	}

	// one record of each status
	attSeed := []attendance.NewAttendance{
		{StudentID: studentIDs[0], ClassID: math10.ID, Date: today, Status: attendance.StatusPresent},
		{StudentID: studentIDs[1], ClassID: math10.ID, Date: today, Status: attendance.StatusPresent},
		{StudentID: studentIDs[2], ClassID: phys11.ID, Date: today, Status: attendance.StatusAbsent},
		{StudentID: studentIDs[3], ClassID: phys11.ID, Date: today, Status: attendance.StatusLate},
	}
	for _, na := range attSeed {
		if _, err = attRepo.CreateAttendance(na); err != nil {
			return errors.Wrap(err, "seeding attendance")
		}
	}

	lastWeek := today.AddDate(0, 0, -7)
	if _, err = results.CreateTestResult(testresult.NewTestResult{
		Name: "Algebra Midterm", StudentID: studentIDs[0], ClassID: math10.ID,
		Date: lastWeek, Score: 82, Status: testresult.StatusGraded,
	}); err != nil {
		return errors.Wrap(err, "seeding test result")
	}
	if _, err = results.CreateTestResult(testresult.NewTestResult{
		Name: "Mechanics Quiz", StudentID: studentIDs[2], ClassID: phys11.ID,
		Date: today,
	}); err != nil {
		return errors.Wrap(err, "seeding test result")
	}

	// one installment of each status
	paidAt := today.AddDate(0, -1, 0)
	if _, err = installments.CreateInstallment(finance.NewInstallment{
		StudentID: studentIDs[0], Amount: 15000, DueDate: paidAt, Status: finance.InstallmentPaid,
	}); err != nil {
		return errors.Wrap(err, "seeding installment")
	}
	if _, err = installments.CreateInstallment(finance.NewInstallment{
		StudentID: studentIDs[1], Amount: 15000, DueDate: today.AddDate(0, 1, 0),
	}); err != nil {
		return errors.Wrap(err, "seeding installment")
	}
	if _, err = installments.CreateInstallment(finance.NewInstallment{
		StudentID: studentIDs[2], Amount: 12500, DueDate: today.AddDate(0, 0, -14), Status: finance.InstallmentOverdue,
	}); err != nil {
		return errors.Wrap(err, "seeding installment")
	}

	paySeed := []finance.NewTeacherPayment{
		{TeacherID: mwangi.ID, Amount: 45000, Month: "2025-07", Status: finance.PaymentPaid},
		{TeacherID: achieng.ID, Amount: 45000, Month: "2025-08"},
		{TeacherID: mwangi.ID, Amount: 5000, Month: "2025-08", Description: "exam marking allowance", Status: finance.PaymentCancelled},
	}
	for _, np := range paySeed {
		if _, err = payments.CreateTeacherPayment(np); err != nil {
			return errors.Wrap(err, "seeding teacher payment")
		}
	}

	if _, err = events.CreateEvent(event.NewEvent{
		Title: "Parents' Day", Description: "Termly parents and teachers meeting",
		Date: today.AddDate(0, 0, 21), Time: "09:00",
	}); err != nil {
		return errors.Wrap(err, "seeding event")
	}
	if _, err = events.CreateEvent(event.NewEvent{
		Title: "Grade 11 Career Talk", Date: today.AddDate(0, 0, 10),
		Time: "14:00", TargetGrades: []string{"11"},
	}); err != nil {
		return errors.Wrap(err, "seeding event")
	}

	mathNotes, err := notes.CreatePublicationNote(library.NewPublicationNote{
		Subject: "Mathematics", Grade: "10", TotalStock: 40,
		Description: "Revision notes, algebra and geometry",
	})
	if err != nil {
		return errors.Wrap(err, "seeding publication note")
	}
	lowThreshold := 5
	lowStock := 3
	if _, err = notes.CreatePublicationNote(library.NewPublicationNote{
		Subject: "Physics", Grade: "11", TotalStock: 20,
		AvailableStock: &lowStock, LowStockThreshold: &lowThreshold,
	}); err != nil {
		return errors.Wrap(err, "seeding publication note")
	}

	// one outstanding loan and one returned loan
	if _, err = loans.CreateStudentNote(library.NewStudentNote{
		StudentID: studentIDs[0], NoteID: mathNotes.ID, Notes: "issued at term start",
	}); err != nil {
		return errors.Wrap(err, "seeding loan")
	}
	returnedLoan, err := loans.CreateStudentNote(library.NewStudentNote{
		StudentID: studentIDs[1], NoteID: mathNotes.ID,
	})
	if err != nil {
		return errors.Wrap(err, "seeding loan")
	}
	isReturned := true
	cond := library.CondFair
	if _, err = loans.UpdateStudentNote(returnedLoan.ID, library.UpdateStudentNote{
		IsReturned: &isReturned, ReturnDate: &today, Condition: &cond,
	}); err != nil {
		return errors.Wrap(err, "seeding loan return")
	}

	return nil
}
