package enrollment

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core"
)

// IncidentSeparator joins successive incident notes.
const IncidentSeparator = "; "

// Grades are stored as NUMERIC(4,2).
const (
	MinGrade = 0
	MaxGrade = 10
)

// ValidGrade reports whether g is a number in [MinGrade, MaxGrade] with at most 2 decimals.
func ValidGrade(g float64) bool {
	if math.IsNaN(g) || g < MinGrade || g > MaxGrade {
		return false
	}
	cents := g * 100
	return math.Abs(cents-math.Round(cents)) < 1e-6
}

// Enrollment (matricula) joins one student and one subject.
// The (student, subject) pair is unique.
type Enrollment struct {
	ID        int          `json:"id" db:"id"`
	StudentID int          `json:"student_id" db:"alumno_id"`
	SubjectID int          `json:"subject_id" db:"asignatura_id"`
	Grade     null.Float64 `json:"grade" db:"nota"`
	Incidents null.String  `json:"incidents" db:"incidencias"`
}

// AppendIncident returns the incident log with text appended.
func AppendIncident(prev null.String, text string) null.String {
	if !prev.Valid || prev.String == "" {
		return null.StringFrom(text)
	}
	return null.StringFrom(prev.String + IncidentSeparator + text)
}

type NewEnrollment struct {
	StudentID int      `json:"student_id" form:"student_id" validate:"required,min=1"`
	SubjectID int      `json:"subject_id" form:"subject_id" validate:"required,min=1"`
	Grade     *float64 `json:"grade" form:"grade" validate:"omitempty,min=0,max=10"`
	Incidents string   `json:"incidents" form:"incidents"`
}

func (ne *NewEnrollment) Validate(validate *validator.Validate) error {
	ne.Incidents = core.CleanString(ne.Incidents)
	return validate.Struct(ne)
}

// Enrollment converts the (validated) input into an Enrollment without ID.
func (ne NewEnrollment) Enrollment() Enrollment {
	e := Enrollment{
		StudentID: ne.StudentID,
		SubjectID: ne.SubjectID,
		Grade:     null.Float64FromPtr(ne.Grade),
	}
	if ne.Incidents != "" {
		e.Incidents = null.StringFrom(ne.Incidents)
	}
	return e
}

type GradeUpdate struct {
	Grade *float64 `json:"grade" form:"grade" validate:"required,min=0,max=10"`
}

func (gu GradeUpdate) Validate(validate *validator.Validate) error { return validate.Struct(gu) }

type Incident struct {
	Text string `json:"text" form:"text" validate:"required,notblank"`
}

func (in *Incident) Validate(validate *validator.Validate) error {
	in.Text = core.CleanString(in.Text)
	return validate.Struct(in)
}
