package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/storage/database"
)

var enrollmentConstraints = map[string]error{
	"matricula_alumno_asignatura_key": enrollment.ErrExists,
	"matricula_alumno_id_fkey":        student.ErrNotFound,
	"matricula_asignatura_id_fkey":    subject.ErrNotFound,
}

type enrollmentRepository struct {
	db *sqlx.DB
}

func NewEnrollmentRepository(db *sqlx.DB) enrollment.Repository {
	return &enrollmentRepository{db: db}
}

func (repo *enrollmentRepository) CreateEnrollment(ctx context.Context, e enrollment.Enrollment) (enrollment.Enrollment, error) {
	b := psql.Insert("matricula").
		Columns("alumno_id", "asignatura_id", "nota", "incidencias").
		Values(e.StudentID, e.SubjectID, e.Grade, e.Incidents)
	id, err := insert(ctx, repo.db, b)
	if err != nil {
		return enrollment.Enrollment{}, database.MapError(err, "inserting matricula", enrollmentConstraints)
	}
	e.ID = id
	return e, nil
}

func (repo *enrollmentRepository) GetEnrollment(ctx context.Context, id int) (enrollment.Enrollment, error) {
	var e enrollment.Enrollment
	q := psql.Select("id", "alumno_id", "asignatura_id", "nota", "incidencias").From("matricula").Where("id = ?", id)
	if err := get(ctx, repo.db, &e, q, enrollment.ErrNotFound); err != nil {
		return enrollment.Enrollment{}, err
	}
	return e, nil
}

func (repo *enrollmentRepository) UpdateGrade(ctx context.Context, id int, grade float64) error {
	return repo.update(ctx, psql.Update("matricula").Set("nota", grade).Where("id = ?", id))
}

// AppendIncident concatenates in the UPDATE itself so concurrent appends cannot lose notes.
func (repo *enrollmentRepository) AppendIncident(ctx context.Context, id int, text string) error {
	appended := squirrel.Expr(
		"CASE WHEN incidencias IS NULL OR incidencias = '' THEN CAST(? AS TEXT) ELSE incidencias || CAST(? AS TEXT) END",
		text, enrollment.IncidentSeparator+text,
	)
	return repo.update(ctx, psql.Update("matricula").Set("incidencias", appended).Where("id = ?", id))
}

func (repo *enrollmentRepository) DeleteEnrollment(ctx context.Context, id int) error {
	n, err := exec(ctx, repo.db, psql.Delete("matricula").Where("id = ?", id))
	if err != nil {
		return core.NewStoreError(err, "deleting matricula")
	}
	if n == 0 {
		return enrollment.ErrNotFound
	}
	return nil
}

func (repo *enrollmentRepository) update(ctx context.Context, b squirrel.UpdateBuilder) error {
	n, err := exec(ctx, repo.db, b)
	if err != nil {
		return core.NewStoreError(err, "updating matricula")
	}
	if n == 0 {
		return enrollment.ErrNotFound
	}
	return nil
}
