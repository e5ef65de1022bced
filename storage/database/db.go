package database

import (
	"database/sql"
	"fmt"
	"io"
	"net/url"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/trezcool/goose"

	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/attendance"
	"github.com/elimusoft/elimu/core/class"
	"github.com/elimusoft/elimu/core/event"
	"github.com/elimusoft/elimu/core/finance"
	"github.com/elimusoft/elimu/core/library"
	"github.com/elimusoft/elimu/core/student"
	"github.com/elimusoft/elimu/core/testresult"
	"github.com/elimusoft/elimu/core/user"
	appfs "github.com/elimusoft/elimu/fs"
	inmemdb "github.com/elimusoft/elimu/storage/database/inmem"
	pgrepos "github.com/elimusoft/elimu/storage/database/postgres"
)

// Backend identifies which store implementation is serving the repositories.
type Backend string

const (
	BackendPostgres Backend = "postgres"
	BackendMemory   Backend = "memory"
)

// Store aggregates one repository per entity, all backed by the same database.
type Store struct {
	Backend Backend

	Users           user.Repository
	Sessions        user.SessionStore
	Students        student.Repository
	Classes         class.Repository
	Attendance      attendance.Repository
	TestResults     testresult.Repository
	Installments    finance.InstallmentRepository
	TeacherPayments finance.TeacherPaymentRepository
	Events          event.Repository
	Notes           library.NoteRepository
	Loans           library.LoanRepository

	closer io.Closer
}

func (s *Store) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}

func open(dbName string, admin bool, conf *core.Config) (*sqlx.DB, error) {
	usr := url.UserPassword(conf.Database.User, conf.Database.Password)
	if admin && conf.Database.AdminUser != "" {
		usr = url.UserPassword(conf.Database.AdminUser, conf.Database.AdminPassword)
	}

	sslMode := "require"
	if conf.Database.DisableTLS {
		sslMode = "disable"
	}
	q := make(url.Values)
	q.Set("sslmode", sslMode)
	q.Set("timezone", "utc")

	u := url.URL{
		Scheme:   conf.Database.Engine,
		User:     usr,
		Host:     conf.Database.Address(),
		Path:     dbName,
		RawQuery: q.Encode(),
	}
	return sqlx.Open(conf.Database.Engine, u.String())
}

func Open(conf *core.Config) (*sqlx.DB, error) {
	return open(conf.Database.Name, false, conf)
}

// ping waits for the database to be ready. Waits 100ms longer between each attempt.
func ping(db *sqlx.DB) error {
	var err error
	maxAttempts := 30
	for attempts := 1; attempts <= maxAttempts; attempts++ {
		err = db.Ping()
		if err == nil {
			break
		}
		time.Sleep(time.Duration(attempts) * 100 * time.Millisecond)
	}

	if err != nil {
		return errors.Wrap(err, "DB ping timeout")
	}
	return nil
}

func createAppUser(db *sqlx.DB, conf *core.Config) error {
	if conf.Database.User == "" {
		return nil
	}

	// check if app user exists
	var exists bool
	rows, err := db.Query(fmt.Sprintf("SELECT true FROM pg_roles WHERE rolname='%s'", conf.Database.User))
	if err != nil {
		return errors.Wrap(err, "checking app user")
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err = rows.Scan(&exists); err != nil {
			return errors.Wrap(err, "checking app user")
		}
	}
	if err = rows.Err(); err != nil {
		return errors.Wrap(err, "checking app user")
	}

	// create app user if not exist
	if !exists {
		q := fmt.Sprintf("CREATE USER %s CREATEDB ENCRYPTED PASSWORD '%s'", conf.Database.User, conf.Database.Password)
		if _, err = db.Exec(q); err != nil {
			return errors.Wrap(err, "creating app user")
		}
	}
	return nil
}

func createDB(db *sqlx.DB, conf *core.Config) error {
	// check if DB exists
	var exists bool
	rows, err := db.Query(fmt.Sprintf("SELECT true FROM pg_database WHERE datname='%s'", conf.Database.Name))
	if err != nil {
		return errors.Wrap(err, "checking DB")
	}
	defer func() { _ = rows.Close() }()
	for rows.Next() {
		if err = rows.Scan(&exists); err != nil {
			return errors.Wrap(err, "checking DB")
		}
	}
	if err = rows.Err(); err != nil {
		return errors.Wrap(err, "checking DB")
	}

	// create DB if not exist
	if !exists {
		if _, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", conf.Database.Name)); err != nil {
			return errors.Wrap(err, "creating database")
		}
	}
	return nil
}

func CreateIfNotExist(conf *core.Config) error {
	// connect as admin
	db, err := open("postgres", true, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}

	if err = ping(db); err != nil {
		return errors.Wrap(err, "pinging database")
	}

	if err = createAppUser(db, conf); err != nil {
		return errors.Wrap(err, "creating app user")
	}
	defer func() { _ = db.Close() }()

	// create DB as app user
	db, err = open("postgres", false, conf)
	if err != nil {
		return errors.Wrap(err, "opening database")
	}
	if err = createDB(db, conf); err != nil {
		return errors.Wrap(err, "creating database")
	}
	defer func() { _ = db.Close() }()
	return nil
}

func Migrate(db *sql.DB) error {
	if err := goose.RunFS("up", db, appfs.FS, "migrations"); err != nil {
		return errors.Wrap(err, "migrating database")
	}
	return nil
}

func newPostgresStore(conf *core.Config) (*Store, error) {
	if err := CreateIfNotExist(conf); err != nil {
		return nil, err
	}
	db, err := Open(conf)
	if err != nil {
		return nil, errors.Wrap(err, "opening database")
	}
	if err = ping(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	if err = Migrate(db.DB); err != nil {
		_ = db.Close()
		return nil, err
	}

	timeout := conf.Database.Timeout
	return &Store{
		Backend:         BackendPostgres,
		Users:           pgrepos.NewUserRepository(db, timeout),
		Sessions:        inmemdb.NewSessionStore(inmemdb.Open()), // sessions are ephemeral; no table backs them
		Students:        pgrepos.NewStudentRepository(db, timeout),
		Classes:         pgrepos.NewClassRepository(db, timeout),
		Attendance:      pgrepos.NewAttendanceRepository(db, timeout),
		TestResults:     pgrepos.NewTestResultRepository(db, timeout),
		Installments:    pgrepos.NewInstallmentRepository(db, timeout),
		TeacherPayments: pgrepos.NewTeacherPaymentRepository(db, timeout),
		Events:          pgrepos.NewEventRepository(db, timeout),
		Notes:           pgrepos.NewNoteRepository(db, timeout),
		Loans:           pgrepos.NewLoanRepository(db, timeout),
		closer:          db,
	}, nil
}

// NewMemoryStore returns a store backed by the in-memory reference database,
// seeded with the demo dataset.
func NewMemoryStore(logger core.Logger) *Store {
	db := inmemdb.Open()
	inmemdb.Seed(db, logger)
	return &Store{
		Backend:         BackendMemory,
		Users:           inmemdb.NewUserRepository(db),
		Sessions:        inmemdb.NewSessionStore(db),
		Students:        inmemdb.NewStudentRepository(db),
		Classes:         inmemdb.NewClassRepository(db),
		Attendance:      inmemdb.NewAttendanceRepository(db),
		TestResults:     inmemdb.NewTestResultRepository(db),
		Installments:    inmemdb.NewInstallmentRepository(db),
		TeacherPayments: inmemdb.NewTeacherPaymentRepository(db),
		Events:          inmemdb.NewEventRepository(db),
		Notes:           inmemdb.NewNoteRepository(db),
		Loans:           inmemdb.NewLoanRepository(db),
	}
}

// OpenStore connects to postgres and returns a store over it. If the
// connection fails and the database is not marked required, it falls back to
// the seeded in-memory store; the choice happens once at startup and is never
// revisited at runtime.
func OpenStore(conf *core.Config, logger core.Logger) (*Store, error) {
	store, err := newPostgresStore(conf)
	if err == nil {
		logger.Info(fmt.Sprintf("database: using postgres backend at %s", conf.Database.Address()))
		return store, nil
	}
	if conf.Database.Required {
		return nil, errors.Wrap(err, "connecting to required database")
	}

	logger.Warn("database: postgres unavailable; falling back to in-memory store", err)
	return NewMemoryStore(logger), nil
}
