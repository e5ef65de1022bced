// Package inmemdb is the reference in-memory backend. Any other backend
// must match its behavior: id assignment, default resolution, filter
// semantics and the loan/stock cascade are all defined here first.
package inmemdb

import (
	"sync"

	"github.com/elimusoft/elimu/core/attendance"
	"github.com/elimusoft/elimu/core/class"
	"github.com/elimusoft/elimu/core/event"
	"github.com/elimusoft/elimu/core/finance"
	"github.com/elimusoft/elimu/core/library"
	"github.com/elimusoft/elimu/core/student"
	"github.com/elimusoft/elimu/core/testresult"
	"github.com/elimusoft/elimu/core/user"
)

// DB holds one keyed table and one id cursor per entity. A single lock guards
// the lot: the loan/stock cascade spans two tables and must observe both
// consistently.
type DB struct {
	mu sync.RWMutex

	users   map[int]*user.User
	userSeq int

	sessions map[string]*user.Session

	students   map[int]*student.Student
	studentSeq int

	classes  map[int]*class.Class
	classSeq int

	attendance    map[int]*attendance.Attendance
	attendanceSeq int

	testResults   map[int]*testresult.TestResult
	testResultSeq int

	installments   map[int]*finance.Installment
	installmentSeq int

	teacherPayments   map[int]*finance.TeacherPayment
	teacherPaymentSeq int

	events   map[int]*event.Event
	eventSeq int

	notes   map[int]*library.PublicationNote
	noteSeq int

	loans   map[int]*library.StudentNote
	loanSeq int
}

func Open() *DB {
	return &DB{
		users:           make(map[int]*user.User),
		sessions:        make(map[string]*user.Session),
		students:        make(map[int]*student.Student),
		classes:         make(map[int]*class.Class),
		attendance:      make(map[int]*attendance.Attendance),
		testResults:     make(map[int]*testresult.TestResult),
		installments:    make(map[int]*finance.Installment),
		teacherPayments: make(map[int]*finance.TeacherPayment),
		events:          make(map[int]*event.Event),
		notes:           make(map[int]*library.PublicationNote),
		loans:           make(map[int]*library.StudentNote),
	}
}
