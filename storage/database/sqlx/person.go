package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/storage/database"
)

var personConstraints = map[string]error{
	"persona_dni_key": person.ErrDNIExists,
}

type personRepository struct {
	db *sqlx.DB
}

func NewPersonRepository(db *sqlx.DB) person.Repository {
	return &personRepository{db: db}
}

func (repo *personRepository) CreatePerson(ctx context.Context, p person.Person) (person.Person, error) {
	return createPerson(ctx, repo.db, p)
}

func (repo *personRepository) GetPerson(ctx context.Context, id int) (person.Person, error) {
	var p person.Person
	q := psql.Select(personColumns...).From("persona p").Where("p.id = ?", id)
	if err := get(ctx, repo.db, &p, q, person.ErrNotFound); err != nil {
		return person.Person{}, err
	}
	return p, nil
}

func createPerson(ctx context.Context, q sqlx.QueryerContext, p person.Person) (person.Person, error) {
	b := psql.Insert("persona").
		Columns("nombre", "apellidos", "direccion", "poblacion", "dni", "fecha_nacimiento", "codigo_postal", "telefono").
		Values(p.Name, p.Surname, p.Address, p.Town, p.DNI, p.BirthDate, p.PostalCode, p.Phone)
	id, err := insert(ctx, q, b)
	if err != nil {
		return person.Person{}, database.MapError(err, "inserting persona", personConstraints)
	}
	p.ID = id
	return p, nil
}
