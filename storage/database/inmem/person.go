package inmemdb

import (
	"context"

	"github.com/trezcool/centro/core/person"
)

type personRepository struct {
	db *DB
}

func NewPersonRepository(db *DB) person.Repository {
	return &personRepository{db: db}
}

func (repo *personRepository) CreatePerson(_ context.Context, p person.Person) (person.Person, error) {
	if err := repo.db.lock(); err != nil {
		return person.Person{}, err
	}
	defer repo.db.mutex.Unlock()
	return repo.db.createPerson(p)
}

func (repo *personRepository) GetPerson(_ context.Context, id int) (person.Person, error) {
	if err := repo.db.rlock(); err != nil {
		return person.Person{}, err
	}
	defer repo.db.mutex.RUnlock()

	if p, ok := repo.db.persons[id]; ok {
		return p, nil
	}
	return person.Person{}, person.ErrNotFound
}

// createPerson must be called with the write lock held.
func (db *DB) createPerson(p person.Person) (person.Person, error) {
	for _, other := range db.persons {
		if other.DNI == p.DNI {
			return person.Person{}, person.ErrDNIExists
		}
	}
	p.ID = db.nextID("persona")
	db.persons[p.ID] = p
	return p, nil
}

// personLess orders people by surname, name.
func personLess(a, b person.Person) bool {
	if a.Surname != b.Surname {
		return a.Surname < b.Surname
	}
	return a.Name < b.Name
}
