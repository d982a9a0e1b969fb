package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/classroom"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/schedule"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/core/teacher"
)

type (
	ServerDeps struct {
		Conf       *core.Config
		Logger     core.Logger
		DB         core.DB
		Validate   *validator.Validate
		Translator ut.Translator

		PersonSvc     *person.Service
		StudentSvc    *student.Service
		TeacherSvc    *teacher.Service
		CourseSvc     *course.Service
		SubjectSvc    *subject.Service
		ClassroomSvc  *classroom.Service
		ScheduleSvc   *schedule.Service
		EnrollmentSvc *enrollment.Service
	}

	Server struct {
		deps     ServerDeps
		app      *echo.Echo
		errors   chan error
		shutdown chan os.Signal
	}
)

func NewServer(deps ServerDeps) *Server {
	s := &Server{
		deps:     deps,
		app:      echo.New(),
		errors:   make(chan error, 1),
		shutdown: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdown, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *Server) setup() {
	conf := s.deps.Conf

	s.app.HideBanner = true
	s.app.Pre(middleware.RemoveTrailingSlash())
	s.app.Use(requestIDMiddleware())
	if !conf.Server.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.Translator, s.SignalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home(conf))
	s.app.GET("/health", health(s.deps.DB))

	v1 := s.app.Group("/v1")
	registerPersonAPI(v1, s.deps.PersonSvc, s.deps.Validate)
	registerStudentAPI(v1, s.deps.StudentSvc, s.deps.Validate)
	registerTeacherAPI(v1, s.deps.TeacherSvc, s.deps.Validate)
	registerCourseAPI(v1, s.deps.CourseSvc, s.deps.Validate)
	registerSubjectAPI(v1, s.deps.SubjectSvc, s.deps.Validate)
	registerClassroomAPI(v1, s.deps.ClassroomSvc, s.deps.Validate)
	registerScheduleAPI(v1, s.deps.ScheduleSvc, s.deps.Validate)
	registerEnrollmentAPI(v1, s.deps.EnrollmentSvc, s.deps.Validate)
}

// Start blocks until the server stops. Failures are reported on Errors().
func (s *Server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil && err != http.ErrServerClosed {
		s.errors <- err
	}
}

func (s *Server) Errors() <-chan error {
	return s.errors
}

func (s *Server) ShutdownSignal() <-chan os.Signal {
	return s.shutdown
}

// SignalShutdown asks the process to shut down gracefully.
func (s *Server) SignalShutdown() {
	select {
	case s.shutdown <- syscall.SIGTERM:
	default: // already signaled
	}
}

func (s *Server) Shutdown(ctx context.Context) error {
	signal.Stop(s.shutdown)
	return s.app.Shutdown(ctx)
}

func (s *Server) Close() error {
	return s.app.Close()
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(conf *core.Config) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		return ctx.String(http.StatusOK, "Welcome to "+conf.AppName+" API!")
	}
}

func health(db core.DB) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		status := http.StatusOK
		resp := echo.Map{"status": "ok"}
		if err := db.PingContext(ctx.Request().Context()); err != nil {
			status = http.StatusServiceUnavailable
			resp["status"] = "db not ready"
		}
		return ctx.JSON(status, resp)
	}
}
