package inmemdb

import (
	"context"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/subject"
)

type enrollmentRepository struct {
	db *DB
}

func NewEnrollmentRepository(db *DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) CreateEnrollment(_ context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	if err := repo.db.lock(); err != nil {
		return enrollment.Enrollment{}, err
	}
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.students[e.StudentID]; !ok {
		return enrollment.Enrollment{}, student.ErrNotFound
	}
	if _, ok := repo.db.subjects[e.SubjectID]; !ok {
		return enrollment.Enrollment{}, subject.ErrNotFound
	}
	for _, other := range repo.db.enrollments {
		if other.StudentID == e.StudentID && other.SubjectID == e.SubjectID {
			return enrollment.Enrollment{}, enrollment.ErrExists
		}
	}
	e.ID = repo.db.nextID("matricula")
	repo.db.enrollments[e.ID] = e
	return e, nil
}

func (repo *enrollmentRepository) GetEnrollment(_ context.Context, id int) (enrollment.Enrollment, error) {
	if err := repo.db.rlock(); err != nil {
		return enrollment.Enrollment{}, err
	}
	defer repo.db.mutex.RUnlock()

	if e, ok := repo.db.enrollments[id]; ok {
		return e, nil
	}
	return enrollment.Enrollment{}, enrollment.ErrNotFound
}

func (repo *enrollmentRepository) UpdateGrade(_ context.Context, id int, grade float64) error {
	return repo.update(id, func(e *enrollment.Enrollment) {
		e.Grade = null.Float64From(grade)
	})
}

func (repo *enrollmentRepository) AppendIncident(_ context.Context, id int, text string) error {
	return repo.update(id, func(e *enrollment.Enrollment) {
		e.Incidents = enrollment.AppendIncident(e.Incidents, text)
	})
}

func (repo *enrollmentRepository) DeleteEnrollment(_ context.Context, id int) error {
	if err := repo.db.lock(); err != nil {
		return err
	}
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.enrollments[id]; !ok {
		return enrollment.ErrNotFound
	}
	delete(repo.db.enrollments, id)
	return nil
}

// update applies fn to the enrollment under the write lock.
func (repo *enrollmentRepository) update(id int, fn func(e *enrollment.Enrollment)) error {
	if err := repo.db.lock(); err != nil {
		return err
	}
	defer repo.db.mutex.Unlock()

	e, ok := repo.db.enrollments[id]
	if !ok {
		return enrollment.ErrNotFound
	}
	fn(&e)
	repo.db.enrollments[id] = e
	return nil
}
