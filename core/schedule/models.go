package schedule

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/centro/core"
)

// Slot places a subject into a classroom at a weekday (ISO, 1 = Monday) of a month.
// Overlapping slots are not detected.
type Slot struct {
	ID          int    `json:"id" db:"id"`
	SubjectID   int    `json:"subject_id" db:"asignatura_id"`
	ClassroomID int    `json:"classroom_id" db:"aula_id"`
	Weekday     int    `json:"weekday" db:"dia_semana"`
	Month       int    `json:"month" db:"mes"`
	Start       string `json:"start" db:"hora_inicio"`
	End         string `json:"end" db:"hora_fin"`
	Subject     string `json:"subject" db:"asignatura"`
	Course      string `json:"course" db:"curso"`
	Classroom   string `json:"classroom" db:"aula"`
	Floor       int    `json:"floor" db:"piso"`
}

type NewSlot struct {
	SubjectID   int    `json:"subject_id" form:"subject_id" validate:"required,min=1"`
	ClassroomID int    `json:"classroom_id" form:"classroom_id" validate:"required,min=1"`
	Weekday     int    `json:"weekday" form:"weekday" validate:"required,min=1,max=7"`
	Month       int    `json:"month" form:"month" validate:"required,min=1,max=12"`
	Start       string `json:"start" form:"start" validate:"required,hhmm"`
	End         string `json:"end" form:"end" validate:"required,hhmm"`
}

func (ns *NewSlot) Validate(validate *validator.Validate) error {
	ns.Start = core.CleanString(ns.Start)
	ns.End = core.CleanString(ns.End)
	if err := validate.Struct(ns); err != nil {
		return err
	}
	// HH:MM strings sort chronologically
	if ns.End <= ns.Start {
		return core.NewValidationError(nil, core.FieldError{Field: "end", Error: "must be later than start"})
	}
	return nil
}
