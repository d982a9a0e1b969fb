package subject

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core"
)

// Subject belongs to exactly one course and is taught by exactly one teacher.
type Subject struct {
	ID          int    `json:"id" db:"id"`
	Code        string `json:"code" db:"codigo"`
	Name        string `json:"name" db:"nombre"`
	WeeklyHours int    `json:"weekly_hours" db:"horas_semanales"`
	CourseID    int    `json:"course_id" db:"curso_id"`
	TeacherID   int    `json:"teacher_id" db:"profesor_id"`
	Course      string `json:"course" db:"curso"`
	Teacher     string `json:"teacher" db:"profesor"`
}

// EnrolledStudent is a student enrolled in the subject, with the enrollment's grade and incidents.
type EnrolledStudent struct {
	EnrollmentID int          `json:"enrollment_id" db:"id"`
	StudentID    int          `json:"student_id" db:"alumno_id"`
	Name         string       `json:"name" db:"nombre"`
	Surname      string       `json:"surname" db:"apellidos"`
	DNI          string       `json:"dni" db:"dni"`
	Grade        null.Float64 `json:"grade" db:"nota"`
	Incidents    null.String  `json:"incidents" db:"incidencias"`
}

// Slot is a schedule slot of the subject.
type Slot struct {
	ID          int    `json:"id" db:"id"`
	ClassroomID int    `json:"classroom_id" db:"aula_id"`
	Classroom   string `json:"classroom" db:"aula"`
	Floor       int    `json:"floor" db:"piso"`
	Weekday     int    `json:"weekday" db:"dia_semana"`
	Month       int    `json:"month" db:"mes"`
	Start       string `json:"start" db:"hora_inicio"`
	End         string `json:"end" db:"hora_fin"`
}

type Detail struct {
	Subject
	Students []EnrolledStudent `json:"students"`
	Schedule []Slot            `json:"schedule"`
}

type NewSubject struct {
	Code        string `json:"code" form:"code" validate:"required,notblank,max=20"`
	Name        string `json:"name" form:"name" validate:"required,notblank,max=100"`
	WeeklyHours int    `json:"weekly_hours" form:"weekly_hours" validate:"min=0,max=40"`
	CourseID    int    `json:"course_id" form:"course_id" validate:"required,min=1"`
	TeacherID   int    `json:"teacher_id" form:"teacher_id" validate:"required,min=1"`
}

func (ns *NewSubject) Validate(validate *validator.Validate) error {
	ns.Code = core.CleanString(ns.Code)
	ns.Name = core.CleanString(ns.Name)
	return validate.Struct(ns)
}
