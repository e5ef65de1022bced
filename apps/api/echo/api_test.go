package echoapi

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"

	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/attendance"
	"github.com/elimusoft/elimu/core/class"
	"github.com/elimusoft/elimu/core/event"
	"github.com/elimusoft/elimu/core/finance"
	"github.com/elimusoft/elimu/core/library"
	"github.com/elimusoft/elimu/core/student"
	"github.com/elimusoft/elimu/core/testresult"
	"github.com/elimusoft/elimu/core/user"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
)

type nopLogger struct{}

func (nopLogger) Enable(bool)                  {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Fatal(string, ...interface{}) {}

type testEnv struct {
	conf   *core.Config
	server *Server
	db     *inmemdb.DB
	deps   ServerDeps
}

func setup(t *testing.T) *testEnv {
	t.Helper()

	conf := core.NewConfig()
	conf.TestMode = true
	conf.Debug = false

	db := inmemdb.Open()
	translator := newTestTranslator()
	validate := validator.New()
	core.InitValidators(validate, translator)

	deps := ServerDeps{
		Conf:          conf,
		Logger:        nopLogger{},
		Validate:      validate,
		Translator:    translator,
		UserSvc:       user.NewService(inmemdb.NewUserRepository(db)),
		Sessions:      inmemdb.NewSessionStore(db),
		StudentSvc:    student.NewService(inmemdb.NewStudentRepository(db)),
		ClassSvc:      class.NewService(inmemdb.NewClassRepository(db)),
		AttendanceSvc: attendance.NewService(inmemdb.NewAttendanceRepository(db)),
		TestResultSvc: testresult.NewService(inmemdb.NewTestResultRepository(db)),
		FinanceSvc:    finance.NewService(inmemdb.NewInstallmentRepository(db), inmemdb.NewTeacherPaymentRepository(db)),
		EventSvc:      event.NewService(inmemdb.NewEventRepository(db), inmemdb.NewUserRepository(db), nil),
		LibrarySvc:    library.NewService(inmemdb.NewNoteRepository(db), inmemdb.NewLoanRepository(db)),
	}
	return &testEnv{conf: conf, server: NewServer(deps), db: db, deps: deps}
}

func newTestTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

func (env *testEnv) createUser(t *testing.T, uname, role, grade string) user.User {
	t.Helper()
	usr, err := env.deps.UserSvc.Register(user.NewUser{
		Username: uname,
		Password: "Str0ngPwd",
		FullName: "Test " + uname,
		Email:    uname + "@school.test",
		Role:     role,
		Grade:    grade,
	})
	if err != nil {
		t.Fatalf("createUser(%s) failed: %v", uname, err)
	}
	return usr
}

func (env *testEnv) token(t *testing.T, usr user.User) string {
	t.Helper()
	sess, err := env.deps.Sessions.SaveSession(user.Session{
		UserID:    usr.ID,
		CreatedAt: time.Now(),
		ExpiresAt: time.Now().Add(time.Hour),
	})
	if err != nil {
		t.Fatalf("saving session failed: %v", err)
	}
	token, err := GenerateToken(env.conf, GetUserClaims(env.conf, usr, sess.ID))
	if err != nil {
		t.Fatalf("generating token failed: %v", err)
	}
	return token
}

func newAuthRequest(method, path, token string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	return req, rec
}

func jsonBody(t *testing.T, v interface{}) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshalling body failed: %v", err)
	}
	return data
}

func TestHome(t *testing.T) {
	env := setup(t)
	req, rec := newAuthRequest(http.MethodGet, "/", "")
	env.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Welcome to Elimu API!", rec.Body.String())
}

func TestLogin(t *testing.T) {
	env := setup(t)
	env.createUser(t, "amina", user.RoleAdmin, "")

	tests := []struct {
		name     string
		body     []byte
		wantCode int
	}{
		{"valid credentials", jsonBody(t, LoginRequest{Username: "amina", Password: "Str0ngPwd"}), http.StatusOK},
		{"wrong password", jsonBody(t, LoginRequest{Username: "amina", Password: "nope"}), http.StatusBadRequest},
		{"unknown user", jsonBody(t, LoginRequest{Username: "ghost", Password: "Str0ngPwd"}), http.StatusBadRequest},
		{"missing fields", jsonBody(t, LoginRequest{}), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, rec := newAuthRequest(http.MethodPost, "/v1/users/login", "", tt.body)
			env.server.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantCode, rec.Code)
			if tt.wantCode == http.StatusOK {
				var resp LoginResponse
				if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
					t.Fatalf("unmarshalling response failed: %v", err)
				}
				assert.NotEmpty(t, resp.Token)
			}
		})
	}
}

func TestAuthRequired(t *testing.T) {
	env := setup(t)

	req, rec := newAuthRequest(http.MethodGet, "/v1/students", "")
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestStudentRoleForbidden(t *testing.T) {
	env := setup(t)
	usr := env.createUser(t, "kevin", user.RoleStudent, "11")
	token := env.token(t, usr)

	req, rec := newAuthRequest(http.MethodPost, "/v1/classes", token,
		jsonBody(t, class.NewClass{Name: "Form 2 Math", Grade: "10", TeacherID: 1}))
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestAttendanceSummary(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "amina", user.RoleAdmin, "")
	token := env.token(t, admin)

	day := time.Date(2026, 3, 9, 8, 0, 0, 0, time.UTC)
	for i, status := range []string{attendance.StatusPresent, attendance.StatusPresent, attendance.StatusAbsent} {
		if _, err := env.deps.AttendanceSvc.Create(attendance.NewAttendance{
			StudentID: i + 1, ClassID: 1, Date: day, Status: status,
		}); err != nil {
			t.Fatalf("creating attendance failed: %v", err)
		}
	}

	req, rec := newAuthRequest(http.MethodGet, "/v1/attendance/summary?classId=1&date=2026-03-09", token)
	env.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var sum attendance.Summary
	if err := json.Unmarshal(rec.Body.Bytes(), &sum); err != nil {
		t.Fatalf("unmarshalling summary failed: %v", err)
	}
	assert.Equal(t, 2, sum.Present)
	assert.Equal(t, 1, sum.Absent)
	assert.Equal(t, 3, sum.Total)
	assert.Equal(t, 67, sum.Rate)
}

func TestLibraryIssueFlow(t *testing.T) {
	env := setup(t)
	teacher := env.createUser(t, "jmwangi", user.RoleTeacher, "")
	token := env.token(t, teacher)

	note, err := env.deps.LibrarySvc.CreateNote(library.NewPublicationNote{
		Subject: "Chemistry", Grade: "11", TotalStock: 1,
	})
	if err != nil {
		t.Fatalf("creating note failed: %v", err)
	}

	// first issue succeeds
	req, rec := newAuthRequest(http.MethodPost, "/v1/student-notes", token,
		jsonBody(t, library.NewStudentNote{StudentID: 1, NoteID: note.ID}))
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusCreated, rec.Code)

	var loan library.StudentNote
	if err = json.Unmarshal(rec.Body.Bytes(), &loan); err != nil {
		t.Fatalf("unmarshalling loan failed: %v", err)
	}
	assert.False(t, loan.IsReturned)

	// no copies left
	req, rec = newAuthRequest(http.MethodPost, "/v1/student-notes", token,
		jsonBody(t, library.NewStudentNote{StudentID: 2, NoteID: note.ID}))
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// return the copy
	req, rec = newAuthRequest(http.MethodPost, fmt.Sprintf("/v1/student-notes/%d/return", loan.ID), token,
		jsonBody(t, map[string]string{"condition": library.CondFair}))
	env.server.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	got, err := env.deps.LibrarySvc.GetNote(note.ID)
	if err != nil {
		t.Fatalf("getting note failed: %v", err)
	}
	assert.Equal(t, 1, got.AvailableStock)
}

func TestInstallmentPay(t *testing.T) {
	env := setup(t)
	admin := env.createUser(t, "amina", user.RoleAdmin, "")
	token := env.token(t, admin)

	inst, err := env.deps.FinanceSvc.CreateInstallment(finance.NewInstallment{
		StudentID: 1, Amount: 15000, DueDate: time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC),
	})
	if err != nil {
		t.Fatalf("creating installment failed: %v", err)
	}

	req, rec := newAuthRequest(http.MethodPost, fmt.Sprintf("/v1/installments/%d/pay", inst.ID), token)
	env.server.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	var paid finance.Installment
	if err = json.Unmarshal(rec.Body.Bytes(), &paid); err != nil {
		t.Fatalf("unmarshalling installment failed: %v", err)
	}
	assert.Equal(t, finance.InstallmentPaid, paid.Status)
	assert.Equal(t, inst.Amount, paid.Amount)
	assert.NotNil(t, paid.PaymentDate)
}
