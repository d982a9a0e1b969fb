package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/pkg/errors"

	echoapi "github.com/trezcool/centro/apps/api/echo"
	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/classroom"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/schedule"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/core/teacher"
	logsvc "github.com/trezcool/centro/services/logger"
	"github.com/trezcool/centro/storage/database"
	"github.com/trezcool/centro/storage/database/inmem"
	"github.com/trezcool/centro/storage/database/sqlx"
)

func main() {
	if err := run(); err != nil {
		os.Exit(1)
	}
}

// run serves the API until a shutdown signal or a server error.
func run() error {
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

	// set up DB & services
	deps, err := setUpDeps(context.Background(), conf)
	if err != nil {
		dbLogger.Error(fmt.Sprintf("setting up database: %v", err), err)
		return err
	}
	defer func() {
		if cerr := deps.DB.Close(); cerr != nil {
			dbLogger.Error(fmt.Sprintf("failed to close: %v", cerr), cerr)
		} else {
			dbLogger.Info("Database closed")
		}
	}()

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : %s", conf))
	defer logger.Info("Application stopped")

	deps.Conf = conf
	deps.Logger = logger
	deps.Validate, deps.Translator = core.NewValidate()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)
	expvar.NewString("engine").Set(conf.Database.Engine)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(deps)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err = <-server.Errors():
		logger.Error(fmt.Sprintf("server error: %v", err), err)
		return err

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err = server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Error(fmt.Sprintf("could not force stop server: %v", err), err)
				return err
			}
		}
	}
	return nil
}

// setUpDeps opens the configured store and builds the services on top of it.
func setUpDeps(ctx context.Context, conf *core.Config) (echoapi.ServerDeps, error) {
	switch conf.Database.Engine {
	case core.EngineInmem:
		db := inmemdb.Open()
		return echoapi.ServerDeps{
			DB:            db,
			PersonSvc:     person.NewService(inmemdb.NewPersonRepository(db)),
			StudentSvc:    student.NewService(inmemdb.NewStudentRepository(db)),
			TeacherSvc:    teacher.NewService(inmemdb.NewTeacherRepository(db)),
			CourseSvc:     course.NewService(inmemdb.NewCourseRepository(db)),
			SubjectSvc:    subject.NewService(inmemdb.NewSubjectRepository(db)),
			ClassroomSvc:  classroom.NewService(inmemdb.NewClassroomRepository(db)),
			ScheduleSvc:   schedule.NewService(inmemdb.NewScheduleRepository(db)),
			EnrollmentSvc: enrollment.NewService(inmemdb.NewEnrollmentRepository(db)),
		}, nil

	case core.EnginePostgres:
		if err := database.CreateIfNotExist(ctx, conf); err != nil {
			return echoapi.ServerDeps{}, err
		}
		db, err := database.Open(conf)
		if err != nil {
			return echoapi.ServerDeps{}, err
		}
		if err = database.Migrate(db); err != nil {
			_ = db.Close()
			return echoapi.ServerDeps{}, err
		}
		return echoapi.ServerDeps{
			DB:            db,
			PersonSvc:     person.NewService(sqlxrepos.NewPersonRepository(db)),
			StudentSvc:    student.NewService(sqlxrepos.NewStudentRepository(db)),
			TeacherSvc:    teacher.NewService(sqlxrepos.NewTeacherRepository(db)),
			CourseSvc:     course.NewService(sqlxrepos.NewCourseRepository(db)),
			SubjectSvc:    subject.NewService(sqlxrepos.NewSubjectRepository(db)),
			ClassroomSvc:  classroom.NewService(sqlxrepos.NewClassroomRepository(db)),
			ScheduleSvc:   schedule.NewService(sqlxrepos.NewScheduleRepository(db)),
			EnrollmentSvc: enrollment.NewService(sqlxrepos.NewEnrollmentRepository(db)),
		}, nil
	}
	return echoapi.ServerDeps{}, errors.Errorf("unknown database engine %q", conf.Database.Engine)
}
