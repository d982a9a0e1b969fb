package teacher

import (
	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/person"
)

// Teacher owns a Person (1:1), teaches subjects and tutors at most one course.
// The tutorship is read from the course side (curso.tutor_id), never stored here.
type Teacher struct {
	ID int `json:"id" db:"profesor_id"`
	person.Person
	Specialty       string      `json:"specialty" db:"especialidad"`
	Age             int         `json:"age" db:"-"`
	TutoredCourseID null.Int    `json:"tutored_course_id" db:"curso_tutor_id"`
	TutoredCourse   null.String `json:"tutored_course" db:"curso_tutor"`
}

func (t Teacher) IsTutor() bool {
	return t.TutoredCourseID.Valid
}

// TaughtSubject is a subject taught by the teacher.
type TaughtSubject struct {
	ID          int    `json:"id" db:"id"`
	Code        string `json:"code" db:"codigo"`
	Name        string `json:"name" db:"nombre"`
	WeeklyHours int    `json:"weekly_hours" db:"horas_semanales"`
	Course      string `json:"course" db:"curso"`
}

type Detail struct {
	Teacher
	Subjects []TaughtSubject `json:"subjects"`
}

// NewTeacher contains information needed to register a new Teacher.
type NewTeacher struct {
	person.NewPerson
	Specialty string `json:"specialty" form:"specialty" validate:"max=100"`
}

func (nt *NewTeacher) Validate(validate *validator.Validate) error {
	nt.Clean()
	nt.Specialty = core.CleanString(nt.Specialty)
	return validate.Struct(nt)
}

// Tutorship identifies the course a teacher should tutor.
type Tutorship struct {
	CourseID int `json:"course_id" form:"course_id" validate:"required,min=1"`
}

func (tu Tutorship) Validate(validate *validator.Validate) error { return validate.Struct(tu) }
