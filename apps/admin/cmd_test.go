package main

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"io/fs"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/teacher"
	"github.com/trezcool/centro/storage/database/inmem"
	"github.com/trezcool/centro/tests"
)

func setup(t *testing.T) (*commandLine, testutil.Repos) {
	// set up DB & repos
	repos := testutil.NewInmemRepos(inmemdb.Open())
	validate, _ := core.NewValidate()

	origIsTerminal := isTerminalFunc
	t.Cleanup(func() { isTerminalFunc = origIsTerminal })
	isTerminalFunc = func(int) bool { return false }

	// start CLI
	return &commandLine{
		conf:          &core.Config{AppName: "Centro", Database: core.DatabaseConfig{Engine: core.EngineInmem, Name: "centro_test"}},
		in:            strings.NewReader(""),
		db:            sqlx.NewDb(nil, "postgres"),
		validate:      validate,
		studentSvc:    student.NewService(repos.Student),
		teacherSvc:    teacher.NewService(repos.Teacher),
		enrollmentSvc: enrollment.NewService(repos.Enrollment),
	}, repos
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    string
}

func runCLITests(t *testing.T, cli *commandLine, tests []cliTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			err := cli.run(append([]string{"admin"}, tt.args...), &out)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.wantErrStr != "":
				assert.EqualError(t, err, tt.wantErrStr)
			default:
				assert.NoError(t, err)
			}
			if tt.wantOut != "" {
				assert.Contains(t, out.String(), tt.wantOut)
			}
		})
	}
}

func Test_commandLine_migrate(t *testing.T) {
	cli, _ := setup(t)

	origGooseRun := gooseRunFunc
	t.Cleanup(func() { gooseRunFunc = origGooseRun })
	gooseRunFunc = func(command string, db *sql.DB, fsys fs.FS, dir string, args ...string) error {
		if _, err := fs.Stat(fsys, dir+"/00001_init.sql"); err != nil {
			return err
		}
		switch command {
		case "up", "up-by-one", "down", "fix", "redo", "reset", "status", "version": // pass
		case "up-to", "down-to":
			if len(args) == 0 {
				return fmt.Errorf("%s must be of form: goose [OPTIONS] DRIVER DBSTRING %s VERSION", command, command)
			}
			if _, err := strconv.ParseInt(args[0], 10, 64); err != nil {
				return fmt.Errorf("version must be a number (got '%s')", args[0])
			}
		case "create":
			if len(args) == 0 {
				return fmt.Errorf("create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]")
			}
		default:
			return fmt.Errorf("%q: no such command", command)
		}
		return nil
	}

	runCLITests(t, cli, []cliTest{
		{name: "no command", wantErr: errHelp},
		{name: "no subcommand", args: []string{"migrate"}, wantErr: errHelp},
		{name: "unknown subcommand", args: []string{"migrate", "lol"}, wantErrStr: "\"lol\": no such command"},
		{name: "up-to: no args", args: []string{"migrate", "up-to"}, wantErrStr: "up-to must be of form: goose [OPTIONS] DRIVER DBSTRING up-to VERSION"},
		{name: "up-to: non-int arg", args: []string{"migrate", "up-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "create: no args", args: []string{"migrate", "create"}, wantErrStr: "create must be of form: goose [OPTIONS] DRIVER DBSTRING create NAME [go|sql]"},
		{name: "down-to: non-int arg", args: []string{"migrate", "down-to", "lol"}, wantErrStr: "version must be a number (got 'lol')"},
		{name: "up", args: []string{"migrate", "up"}},
		{name: "up-to", args: []string{"migrate", "up-to", "2"}},
		{name: "down-to", args: []string{"migrate", "down-to", "1"}},
		{name: "status", args: []string{"migrate", "status"}},
		{name: "create", args: []string{"migrate", "create", "add_exams", "sql"}},
	})
}

func Test_commandLine_createdb(t *testing.T) {
	cli, _ := setup(t)

	origCreateDB := createDBFunc
	t.Cleanup(func() { createDBFunc = origCreateDB })
	var calls int
	createDBFunc = func(_ context.Context, conf *core.Config) error {
		calls++
		if calls > 1 {
			return fmt.Errorf("permission denied")
		}
		return nil
	}

	runCLITests(t, cli, []cliTest{
		{name: "created", args: []string{"createdb"}, wantOut: `database "centro_test" is ready`},
		{name: "failed", args: []string{"createdb"}, wantErrStr: "creating database: permission denied"},
	})
}

func Test_commandLine_connect(t *testing.T) {
	cli, _ := setup(t)
	cli.db = nil

	runCLITests(t, cli, []cliTest{
		{name: "wrong engine", args: []string{"students"}, wantErrStr: `admin commands need the postgres engine (got "inmem")`},
	})
}

func Test_commandLine_students(t *testing.T) {
	cli, repos := setup(t)

	runCLITests(t, cli, []cliTest{
		{name: "empty", args: []string{"students"}, wantOut: "Students (0)"},
	})

	testutil.CreateStudent(t, repos.Student, "Ana", "Pérez", "11111111A", testutil.Date(2001, time.May, 20))
	testutil.CreateStudent(t, repos.Student, "Luis", "García", "22222222B", testutil.Date(2003, time.January, 2))

	var out bytes.Buffer
	require.NoError(t, cli.run([]string{"admin", "students"}, &out))
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "Students (2)")
	assert.Contains(t, lines[2], "Luis García")
	assert.Contains(t, lines[3], "Ana Pérez")
}

func Test_commandLine_ledger(t *testing.T) {
	cli, repos := setup(t)
	ctx := context.Background()

	ana := testutil.CreateStudent(t, repos.Student, "Ana", "Pérez", "11111111A", testutil.Date(2001, time.May, 20))
	marta := testutil.CreateTeacher(t, repos.Teacher, "Marta", "Ruiz", "66666666F", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1ESO", "Primero ESO")
	maths := testutil.CreateSubject(t, repos.Subject, "MAT1", "Matemáticas", 4, c.ID, marta.ID)
	lengua := testutil.CreateSubject(t, repos.Subject, "LEN1", "Lengua", 5, c.ID, marta.ID)

	studentArg, mathsArg, lenguaArg := strconv.Itoa(ana.ID), strconv.Itoa(maths.ID), strconv.Itoa(lengua.ID)
	runCLITests(t, cli, []cliTest{
		{name: "enroll: missing flags", args: []string{"enroll"}, wantErrStr: `required flag(s) "student", "subject" not set`},
		{name: "enroll", args: []string{"enroll", "--student", studentArg, "--subject", mathsArg}, wantOut: "enrollment #1 created"},
		{
			name: "enroll with grade", args: []string{"enroll", "--student", studentArg, "--subject", lenguaArg, "--grade", "0", "--incidents", "late"},
			wantOut: "enrollment #2 created",
		},
		{name: "enroll twice", args: []string{"enroll", "--student", studentArg, "--subject", mathsArg}, wantErr: enrollment.ErrExists},
		{name: "enroll: unknown student", args: []string{"enroll", "--student", "999", "--subject", mathsArg}, wantErr: student.ErrNotFound},
		{name: "grade", args: []string{"grade", "1", "8.5"}, wantOut: "enrollment #1 graded 8.50"},
		{name: "grade: out of range", args: []string{"grade", "1", "11"}, wantErrStr: "grade: must be between 0 and 10 with at most 2 decimals"},
		{name: "grade: NaN", args: []string{"grade", "1", "NaN"}, wantErrStr: "grade: must be between 0 and 10 with at most 2 decimals"},
		{name: "grade: not a number", args: []string{"grade", "1", "ten"}, wantErrStr: `invalid grade "ten"`},
		{name: "grade: bad id", args: []string{"grade", "x", "5"}, wantErrStr: `invalid id "x"`},
		{name: "grade: unknown", args: []string{"grade", "999", "5"}, wantErr: enrollment.ErrNotFound},
		{name: "incident", args: []string{"incident", "2", "no", "homework"}, wantOut: "incident added to enrollment #2"},
		{name: "incident: no text", args: []string{"incident", "2"}, wantErrStr: "requires at least 2 arg(s), only received 1"},
	})

	e1, err := repos.Enrollment.GetEnrollment(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 8.5, e1.Grade.Float64)
	e2, err := repos.Enrollment.GetEnrollment(ctx, 2)
	require.NoError(t, err)
	assert.True(t, e2.Grade.Valid)
	assert.Zero(t, e2.Grade.Float64)
	assert.Equal(t, "late; no homework", e2.Incidents.String)
}

func Test_commandLine_unenroll(t *testing.T) {
	cli, repos := setup(t)

	ana := testutil.CreateStudent(t, repos.Student, "Ana", "Pérez", "11111111A", testutil.Date(2001, time.May, 20))
	marta := testutil.CreateTeacher(t, repos.Teacher, "Marta", "Ruiz", "66666666F", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1ESO", "Primero ESO")
	maths := testutil.CreateSubject(t, repos.Subject, "MAT1", "Matemáticas", 4, c.ID, marta.ID)
	lengua := testutil.CreateSubject(t, repos.Subject, "LEN1", "Lengua", 5, c.ID, marta.ID)
	fisica := testutil.CreateSubject(t, repos.Subject, "FIS1", "Física", 3, c.ID, marta.ID)
	e1 := testutil.Enroll(t, repos.Enrollment, ana.ID, maths.ID)
	e2 := testutil.Enroll(t, repos.Enrollment, ana.ID, lengua.ID)
	e3 := testutil.Enroll(t, repos.Enrollment, ana.ID, fisica.ID)

	// no terminal: no prompt
	runCLITests(t, cli, []cliTest{
		{name: "no terminal", args: []string{"unenroll", strconv.Itoa(e1.ID)}, wantOut: fmt.Sprintf("enrollment #%d removed", e1.ID)},
		{name: "gone", args: []string{"unenroll", strconv.Itoa(e1.ID)}, wantErr: enrollment.ErrNotFound},
	})

	isTerminalFunc = func(int) bool { return true }
	cli.in = strings.NewReader("n\n")
	runCLITests(t, cli, []cliTest{
		{name: "declined", args: []string{"unenroll", strconv.Itoa(e2.ID)}, wantErr: errAborted, wantOut: "[y/N]"},
	})
	cli.in = strings.NewReader("y\n")
	runCLITests(t, cli, []cliTest{
		{name: "confirmed", args: []string{"unenroll", strconv.Itoa(e2.ID)}, wantOut: "removed"},
		{name: "--yes", args: []string{"unenroll", "--yes", strconv.Itoa(e3.ID)}, wantOut: "removed"},
	})

	_, err := repos.Enrollment.GetEnrollment(context.Background(), e3.ID)
	assert.ErrorIs(t, err, enrollment.ErrNotFound)
}

func Test_commandLine_tutorship(t *testing.T) {
	cli, repos := setup(t)
	ctx := context.Background()

	marta := testutil.CreateTeacher(t, repos.Teacher, "Marta", "Ruiz", "66666666F", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1ESO", "Primero ESO")
	teacherArg, courseArg := strconv.Itoa(marta.ID), strconv.Itoa(c.ID)

	runCLITests(t, cli, []cliTest{
		{name: "tutor: missing course", args: []string{"tutor", "--teacher", teacherArg}, wantErrStr: `required flag(s) "course" not set`},
		{name: "tutor: unknown teacher", args: []string{"tutor", "--teacher", "999", "--course", courseArg}, wantErr: teacher.ErrNotFound},
		{name: "tutor", args: []string{"tutor", "--teacher", teacherArg, "--course", courseArg}, wantOut: "now tutors"},
	})
	got, err := repos.Teacher.GetTeacher(ctx, marta.ID)
	require.NoError(t, err)
	assert.Equal(t, c.ID, int(got.TutoredCourseID.Int))

	runCLITests(t, cli, []cliTest{
		{name: "untutor", args: []string{"untutor", "--teacher", teacherArg}, wantOut: "no longer tutors"},
		{name: "untutor: unknown teacher", args: []string{"untutor", "--teacher", "999"}, wantErr: teacher.ErrNotFound},
	})
	got, err = repos.Teacher.GetTeacher(ctx, marta.ID)
	require.NoError(t, err)
	assert.False(t, got.IsTutor())
}
