package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/teacher"
	"github.com/trezcool/centro/storage/database"
	"github.com/trezcool/centro/storage/database/sqlx"
)

var (
	isTerminalFunc = term.IsTerminal // mockable
	openDBFunc     = database.Open   // mockable

	errHelp    = errors.New("help provided")
	errAborted = errors.New("aborted")
)

// storeAnnotation marks the commands that need an open store.
var storeAnnotation = map[string]string{"store": "true"}

type commandLine struct {
	conf     *core.Config
	in       io.Reader
	db       *sqlx.DB
	validate *validator.Validate

	studentSvc    *student.Service
	teacherSvc    *teacher.Service
	enrollmentSvc *enrollment.Service
}

func (cli *commandLine) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:               "admin",
		Short:             cli.conf.AppName + " administration commands",
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: cli.connect,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_ = cmd.Usage()
			return errHelp
		},
	}
	root.AddCommand(
		cli.migrateCmd(),
		cli.createDBCmd(),
		cli.studentsCmd(),
		cli.enrollCmd(),
		cli.gradeCmd(),
		cli.incidentCmd(),
		cli.unenrollCmd(),
		cli.tutorCmd(),
		cli.untutorCmd(),
	)
	return root
}

// run executes the command line (args include the program name).
func (cli *commandLine) run(args []string, out io.Writer) error {
	root := cli.rootCmd()
	root.SetArgs(args[1:])
	root.SetOut(out)
	root.SetErr(out)
	return root.Execute()
}

// connect opens the store once, before any command that needs it.
func (cli *commandLine) connect(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations["store"] == "" || cli.db != nil {
		return nil
	}
	if cli.conf.Database.Engine != core.EnginePostgres {
		return errors.Errorf("admin commands need the %s engine (got %q)", core.EnginePostgres, cli.conf.Database.Engine)
	}
	db, err := openDBFunc(cli.conf)
	if err != nil {
		return err
	}
	cli.db = db
	cli.studentSvc = student.NewService(sqlxrepos.NewStudentRepository(db))
	cli.teacherSvc = teacher.NewService(sqlxrepos.NewTeacherRepository(db))
	cli.enrollmentSvc = enrollment.NewService(sqlxrepos.NewEnrollmentRepository(db))
	return nil
}

func (cli *commandLine) close() error {
	if cli.db == nil {
		return nil
	}
	return cli.db.Close()
}

// confirm asks a yes/no question. Without a terminal on stdin the answer is yes.
func (cli *commandLine) confirm(out io.Writer, question string) (bool, error) {
	if !isTerminalFunc(int(os.Stdin.Fd())) {
		return true, nil
	}
	_, _ = fmt.Fprintf(out, "%s [y/N]: ", question)
	answer, err := bufio.NewReader(cli.in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, err
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes", nil
}

func heading(out io.Writer, title string) {
	_, _ = color.New(color.FgCyan, color.Bold).Fprintln(out, title)
}

func success(out io.Writer, format string, args ...interface{}) {
	_, _ = fmt.Fprintln(out, color.GreenString(format, args...))
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, errors.Errorf("invalid id %q", arg)
	}
	return id, nil
}
