// Package testutil holds fixtures shared by the package tests.
package testutil

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/classroom"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/schedule"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/core/teacher"
	"github.com/trezcool/centro/storage/database"
)

// PrepareDB opens a migrated, empty Postgres test database.
// The test is skipped unless TEST_DATABASE_HOST is set.
func PrepareDB(t *testing.T) *sqlx.DB {
	t.Helper()
	if os.Getenv("TEST_DATABASE_HOST") == "" {
		t.Skip("TEST_DATABASE_HOST not set")
	}
	t.Setenv("ENV", "TEST")
	conf := core.NewConfig()
	ctx := context.Background()

	require.NoError(t, database.CreateIfNotExist(ctx, conf))
	db, err := database.Open(conf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, database.Migrate(db))
	require.NoError(t, database.Reset(ctx, db))
	return db
}

func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}

func NewPerson(name, surname, dni string, birth time.Time) person.NewPerson {
	return person.NewPerson{
		Name:      name,
		Surname:   surname,
		DNI:       dni,
		BirthDate: birth.Format(core.DateLayout),
		Town:      "Valencia",
	}
}

func toPerson(t *testing.T, np person.NewPerson) person.Person {
	p, err := np.Person()
	require.NoError(t, err)
	return p
}

func CreateStudent(t *testing.T, repo student.Repository, name, surname, dni string, birth time.Time) student.Student {
	t.Helper()
	s, err := repo.CreateStudent(context.Background(), toPerson(t, NewPerson(name, surname, dni, birth)))
	require.NoError(t, err)
	return s
}

func CreateTeacher(t *testing.T, repo teacher.Repository, name, surname, dni, specialty string) teacher.Teacher {
	t.Helper()
	p := toPerson(t, NewPerson(name, surname, dni, Date(1980, time.March, 1)))
	tchr, err := repo.CreateTeacher(context.Background(), p, specialty)
	require.NoError(t, err)
	return tchr
}

func CreateCourse(t *testing.T, repo course.Repository, code, name string) course.Course {
	t.Helper()
	c, err := repo.CreateCourse(context.Background(), course.NewCourse{Code: code, Name: name})
	require.NoError(t, err)
	return c
}

func CreateSubject(t *testing.T, repo subject.Repository, code, name string, hours, courseID, teacherID int) subject.Subject {
	t.Helper()
	s, err := repo.CreateSubject(context.Background(), subject.NewSubject{
		Code:        code,
		Name:        name,
		WeeklyHours: hours,
		CourseID:    courseID,
		TeacherID:   teacherID,
	})
	require.NoError(t, err)
	return s
}

func CreateClassroom(t *testing.T, repo classroom.Repository, code string, floor, desks int) classroom.Classroom {
	t.Helper()
	c, err := repo.CreateClassroom(context.Background(), classroom.NewClassroom{Code: code, Floor: floor, Desks: desks})
	require.NoError(t, err)
	return c
}

func CreateSlot(t *testing.T, repo schedule.Repository, subjectID, classroomID, weekday, month int, start, end string) schedule.Slot {
	t.Helper()
	s, err := repo.CreateSlot(context.Background(), schedule.NewSlot{
		SubjectID:   subjectID,
		ClassroomID: classroomID,
		Weekday:     weekday,
		Month:       month,
		Start:       start,
		End:         end,
	})
	require.NoError(t, err)
	return s
}

func Enroll(t *testing.T, repo enrollment.Repository, studentID, subjectID int) enrollment.Enrollment {
	t.Helper()
	e, err := repo.CreateEnrollment(context.Background(), enrollment.Enrollment{StudentID: studentID, SubjectID: subjectID})
	require.NoError(t, err)
	return e
}
