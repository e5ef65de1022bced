package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/elimusoft/elimu/apps/api/echo"
	"github.com/elimusoft/elimu/core"
	"github.com/elimusoft/elimu/core/attendance"
	"github.com/elimusoft/elimu/core/class"
	"github.com/elimusoft/elimu/core/event"
	"github.com/elimusoft/elimu/core/finance"
	"github.com/elimusoft/elimu/core/library"
	"github.com/elimusoft/elimu/core/student"
	"github.com/elimusoft/elimu/core/testresult"
	"github.com/elimusoft/elimu/core/user"
	emailsvc "github.com/elimusoft/elimu/services/email"
	sendgridmail "github.com/elimusoft/elimu/services/email/sendgrid"
	logsvc "github.com/elimusoft/elimu/services/logger"
	"github.com/elimusoft/elimu/storage/database"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	// set up loggers
	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	dbLogger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DB : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	dbLogger.Enable(!conf.Debug)

	// set up the store; falls back to the seeded in-memory store when
	// postgres is down and not marked required
	store, err := database.OpenStore(conf, dbLogger)
	if err != nil {
		logger.Fatal(fmt.Sprintf("setting up store: %v", err), err)
	}
	defer func() {
		if err = store.Close(); err != nil {
			dbLogger.Error("failed to close store", err)
		}
	}()

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = sendgridmail.NewService(conf, logger)
	}

	usrSvc := user.NewService(store.Users)
	studentSvc := student.NewService(store.Students)
	classSvc := class.NewService(store.Classes)
	attendanceSvc := attendance.NewService(store.Attendance)
	testResultSvc := testresult.NewService(store.TestResults)
	financeSvc := finance.NewService(store.Installments, store.TeacherPayments)
	eventSvc := event.NewService(store.Events, store.Users, mailSvc)
	librarySvc := library.NewService(store.Notes, store.Loans)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	// Expose important info under /debug/vars.
	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("backend").Set(string(store.Backend))

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugHost, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:          conf,
			Logger:        logger,
			Validate:      validate,
			Translator:    translator,
			UserSvc:       usrSvc,
			Sessions:      store.Sessions,
			StudentSvc:    studentSvc,
			ClassSvc:      classSvc,
			AttendanceSvc: attendanceSvc,
			TestResultSvc: testResultSvc,
			FinanceSvc:    financeSvc,
			EventSvc:      eventSvc,
			LibrarySvc:    librarySvc,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
