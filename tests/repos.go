package testutil

import (
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core/classroom"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/schedule"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/core/teacher"
	"github.com/trezcool/centro/storage/database/inmem"
	"github.com/trezcool/centro/storage/database/sqlx"
)

// Repos bundles one repository per domain package over the same store.
type Repos struct {
	Person     person.Repository
	Student    student.Repository
	Teacher    teacher.Repository
	Course     course.Repository
	Subject    subject.Repository
	Classroom  classroom.Repository
	Schedule   schedule.Repository
	Enrollment enrollment.Repository
}

func NewInmemRepos(db *inmemdb.DB) Repos {
	return Repos{
		Person:     inmemdb.NewPersonRepository(db),
		Student:    inmemdb.NewStudentRepository(db),
		Teacher:    inmemdb.NewTeacherRepository(db),
		Course:     inmemdb.NewCourseRepository(db),
		Subject:    inmemdb.NewSubjectRepository(db),
		Classroom:  inmemdb.NewClassroomRepository(db),
		Schedule:   inmemdb.NewScheduleRepository(db),
		Enrollment: inmemdb.NewEnrollmentRepository(db),
	}
}

func NewSQLRepos(db *sqlx.DB) Repos {
	return Repos{
		Person:     sqlxrepos.NewPersonRepository(db),
		Student:    sqlxrepos.NewStudentRepository(db),
		Teacher:    sqlxrepos.NewTeacherRepository(db),
		Course:     sqlxrepos.NewCourseRepository(db),
		Subject:    sqlxrepos.NewSubjectRepository(db),
		Classroom:  sqlxrepos.NewClassroomRepository(db),
		Schedule:   sqlxrepos.NewScheduleRepository(db),
		Enrollment: sqlxrepos.NewEnrollmentRepository(db),
	}
}
