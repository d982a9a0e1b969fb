package course

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core"
)

// Course has an optional single tutor (the only place the tutorship is stored).
type Course struct {
	ID          int         `json:"id" db:"id"`
	Code        string      `json:"code" db:"codigo"`
	Name        string      `json:"name" db:"nombre"`
	TutorID     null.Int    `json:"tutor_id" db:"tutor_id"`
	Tutor       null.String `json:"tutor" db:"tutor"`
	NumSubjects int         `json:"num_subjects" db:"num_asignaturas"`
}

// CourseSubject is a subject of the course with the name of its teacher.
type CourseSubject struct {
	ID          int    `json:"id" db:"id"`
	Code        string `json:"code" db:"codigo"`
	Name        string `json:"name" db:"nombre"`
	WeeklyHours int    `json:"weekly_hours" db:"horas_semanales"`
	Teacher     string `json:"teacher" db:"profesor"`
}

type Detail struct {
	Course
	Subjects []CourseSubject `json:"subjects"`
}

type NewCourse struct {
	Code string `json:"code" form:"code" validate:"required,notblank,max=20"`
	Name string `json:"name" form:"name" validate:"required,notblank,max=100"`
}

func (nc *NewCourse) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code)
	nc.Name = core.CleanString(nc.Name)
	return validate.Struct(nc)
}

// Tutor identifies the teacher who should tutor a course.
type Tutor struct {
	TeacherID int `json:"teacher_id" form:"teacher_id" validate:"required,min=1"`
}

func (t Tutor) Validate(validate *validator.Validate) error { return validate.Struct(t) }
