package person

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/trezcool/centro/core"
)

// Person holds the identity attributes shared by students and teachers.
// DNI (national ID) is the immutable identity key.
type Person struct {
	ID         int       `json:"person_id" db:"persona_id"`
	Name       string    `json:"name" db:"nombre"`
	Surname    string    `json:"surname" db:"apellidos"`
	Address    string    `json:"address" db:"direccion"`
	Town       string    `json:"town" db:"poblacion"`
	DNI        string    `json:"dni" db:"dni"`
	BirthDate  time.Time `json:"birth_date" db:"fecha_nacimiento"`
	PostalCode string    `json:"postal_code" db:"codigo_postal"`
	Phone      string    `json:"phone" db:"telefono"`
}

// FullName returns "Name Surname".
func FullName(p Person) string {
	return p.Name + " " + p.Surname
}

// Display returns "Name Surname (DNI)".
func Display(p Person) string {
	return fmt.Sprintf("%s (%s)", FullName(p), p.DNI)
}

// Age returns the number of whole years between birth and now:
// one less when this year's birthday has not been reached yet.
func Age(birth, now time.Time) int {
	if birth.IsZero() {
		return 0
	}
	by, bm, bd := birth.Date()
	ny, nm, nd := now.Date()
	age := ny - by
	if nm < bm || (nm == bm && nd < bd) {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}

// NewPerson contains information needed to register a new Person.
type NewPerson struct {
	Name       string `json:"name" form:"name" validate:"required,notblank"`
	Surname    string `json:"surname" form:"surname" validate:"required,notblank"`
	Address    string `json:"address" form:"address"`
	Town       string `json:"town" form:"town"`
	DNI        string `json:"dni" form:"dni" validate:"required,notblank,max=20"`
	BirthDate  string `json:"birth_date" form:"birth_date" validate:"required,isodate"`
	PostalCode string `json:"postal_code" form:"postal_code" validate:"max=10"`
	Phone      string `json:"phone" form:"phone" validate:"max=20"`
}

func (np *NewPerson) Clean() {
	np.Name = core.CleanString(np.Name)
	np.Surname = core.CleanString(np.Surname)
	np.Address = core.CleanString(np.Address)
	np.Town = core.CleanString(np.Town)
	np.DNI = normalizeDNI(np.DNI)
	np.BirthDate = core.CleanString(np.BirthDate)
	np.PostalCode = core.CleanString(np.PostalCode)
	np.Phone = core.CleanString(np.Phone)
}

func (np *NewPerson) Validate(validate *validator.Validate) error {
	np.Clean()
	return validate.Struct(np)
}

// Person converts the (validated) input into a Person.
func (np NewPerson) Person() (Person, error) {
	birth, err := time.Parse(core.DateLayout, np.BirthDate)
	if err != nil {
		return Person{}, core.NewValidationError(err, core.FieldError{Field: "birth_date", Error: "must be a date formatted as YYYY-MM-DD"})
	}
	return Person{
		Name:       np.Name,
		Surname:    np.Surname,
		Address:    np.Address,
		Town:       np.Town,
		DNI:        normalizeDNI(np.DNI),
		BirthDate:  birth,
		PostalCode: np.PostalCode,
		Phone:      np.Phone,
	}, nil
}
