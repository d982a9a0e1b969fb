package student

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core/person"
)

// Student owns a Person (1:1) and a set of enrollments.
type Student struct {
	ID int `json:"id" db:"alumno_id"`
	person.Person
	Age int `json:"age" db:"-"`
}

// EnrolledSubject is one of the student's enrollments as seen from the student.
type EnrolledSubject struct {
	EnrollmentID int          `json:"enrollment_id" db:"id"`
	SubjectID    int          `json:"subject_id" db:"asignatura_id"`
	Code         string       `json:"code" db:"codigo"`
	Subject      string       `json:"subject" db:"asignatura"`
	WeeklyHours  int          `json:"weekly_hours" db:"horas_semanales"`
	Course       string       `json:"course" db:"curso"`
	Teacher      string       `json:"teacher" db:"profesor"`
	Grade        null.Float64 `json:"grade" db:"nota"`
	Incidents    null.String  `json:"incidents" db:"incidencias"`
}

// EligibleSubject is a subject the student is not enrolled in yet.
type EligibleSubject struct {
	ID     int    `json:"id" db:"id"`
	Code   string `json:"code" db:"codigo"`
	Name   string `json:"name" db:"nombre"`
	Course string `json:"course" db:"curso"`
}

type Detail struct {
	Student
	Enrollments []EnrolledSubject `json:"enrollments"`
}
