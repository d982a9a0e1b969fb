package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/storage/database"
)

type studentRepository struct {
	db *sqlx.DB
}

func NewStudentRepository(db *sqlx.DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) selectStudents() squirrel.SelectBuilder {
	return psql.Select(append([]string{"a.id AS alumno_id"}, personColumns...)...).
		From("alumno a").
		Join("persona p ON p.id = a.persona_id")
}

func (repo *studentRepository) CreateStudent(ctx context.Context, p person.Person) (student.Student, error) {
	var s student.Student
	err := inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		var err error
		if p, err = createPerson(ctx, tx, p); err != nil {
			return err
		}
		id, err := insert(ctx, tx, psql.Insert("alumno").Columns("persona_id").Values(p.ID))
		if err != nil {
			return database.MapError(err, "inserting alumno", nil)
		}
		s = student.Student{ID: id, Person: p}
		return nil
	})
	return s, err
}

func (repo *studentRepository) GetStudent(ctx context.Context, id int) (student.Student, error) {
	var s student.Student
	if err := get(ctx, repo.db, &s, repo.selectStudents().Where("a.id = ?", id), student.ErrNotFound); err != nil {
		return student.Student{}, err
	}
	return s, nil
}

func (repo *studentRepository) QueryStudents(ctx context.Context) ([]student.Student, error) {
	students := make([]student.Student, 0)
	q := repo.selectStudents().OrderBy("p.apellidos", "p.nombre", "a.id")
	if err := selectAll(ctx, repo.db, &students, q); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *studentRepository) QueryEnrollments(ctx context.Context, studentID int) ([]student.EnrolledSubject, error) {
	enrollments := make([]student.EnrolledSubject, 0)
	q := psql.Select(
		"m.id",
		"m.asignatura_id",
		"s.codigo",
		"s.nombre AS asignatura",
		"s.horas_semanales",
		"c.nombre AS curso",
		fullNameExpr+" AS profesor",
		"m.nota",
		"m.incidencias",
	).
		From("matricula m").
		Join("asignatura s ON s.id = m.asignatura_id").
		Join("curso c ON c.id = s.curso_id").
		Join("profesor t ON t.id = s.profesor_id").
		Join("persona p ON p.id = t.persona_id").
		Where("m.alumno_id = ?", studentID).
		OrderBy("c.nombre", "s.nombre", "m.id")
	if err := selectAll(ctx, repo.db, &enrollments, q); err != nil {
		return nil, err
	}
	return enrollments, nil
}

func (repo *studentRepository) QueryEligibleSubjects(ctx context.Context, studentID int) ([]student.EligibleSubject, error) {
	subjects := make([]student.EligibleSubject, 0)
	q := psql.Select("s.id", "s.codigo", "s.nombre", "c.nombre AS curso").
		From("asignatura s").
		Join("curso c ON c.id = s.curso_id").
		Where("s.id NOT IN (SELECT asignatura_id FROM matricula WHERE alumno_id = ?)", studentID).
		OrderBy("c.nombre", "s.nombre", "s.id")
	if err := selectAll(ctx, repo.db, &subjects, q); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *studentRepository) DeleteStudent(ctx context.Context, id int) error {
	return inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		var personID int
		q := psql.Select("persona_id").From("alumno").Where("id = ?", id).Suffix("FOR UPDATE")
		if err := get(ctx, tx, &personID, q, student.ErrNotFound); err != nil {
			return err
		}

		if _, err := exec(ctx, tx, psql.Delete("matricula").Where("alumno_id = ?", id)); err != nil {
			return core.NewStoreError(err, "deleting matricula")
		}
		if _, err := exec(ctx, tx, psql.Delete("alumno").Where("id = ?", id)); err != nil {
			return core.NewStoreError(err, "deleting alumno")
		}
		// the person may also be a teacher
		delPerson := psql.Delete("persona").
			Where("id = ?", personID).
			Where("NOT EXISTS (SELECT 1 FROM profesor WHERE persona_id = ?)", personID)
		if _, err := exec(ctx, tx, delPerson); err != nil {
			return core.NewStoreError(err, "deleting persona")
		}
		return nil
	})
}
