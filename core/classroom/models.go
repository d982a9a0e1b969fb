package classroom

import (
	"github.com/go-playground/validator/v10"

	"github.com/trezcool/centro/core"
)

type Classroom struct {
	ID       int    `json:"id" db:"id"`
	Code     string `json:"code" db:"codigo"`
	Floor    int    `json:"floor" db:"piso"`
	Desks    int    `json:"desks" db:"num_pupitres"`
	NumSlots int    `json:"num_schedules" db:"num_horarios"`
}

// Slot is a schedule slot hosted by the classroom.
type Slot struct {
	ID          int    `json:"id" db:"id"`
	SubjectID   int    `json:"subject_id" db:"asignatura_id"`
	SubjectCode string `json:"subject_code" db:"codigo"`
	Subject     string `json:"subject" db:"asignatura"`
	Course      string `json:"course" db:"curso"`
	Weekday     int    `json:"weekday" db:"dia_semana"`
	Month       int    `json:"month" db:"mes"`
	Start       string `json:"start" db:"hora_inicio"`
	End         string `json:"end" db:"hora_fin"`
}

type Detail struct {
	Classroom
	Schedule []Slot `json:"schedule"`
}

type NewClassroom struct {
	Code  string `json:"code" form:"code" validate:"required,notblank,max=20"`
	Floor int    `json:"floor" form:"floor"`
	Desks int    `json:"desks" form:"desks" validate:"min=0"`
}

func (nc *NewClassroom) Validate(validate *validator.Validate) error {
	nc.Code = core.CleanString(nc.Code)
	return validate.Struct(nc)
}
