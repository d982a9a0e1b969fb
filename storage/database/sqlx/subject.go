package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/storage/database"
)

var subjectConstraints = map[string]error{
	"asignatura_curso_id_fkey":    subject.ErrUnknownCourse,
	"asignatura_profesor_id_fkey": subject.ErrUnknownTeacher,
}

type subjectRepository struct {
	db *sqlx.DB
}

func NewSubjectRepository(db *sqlx.DB) subject.Repository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) selectSubjects() squirrel.SelectBuilder {
	return psql.Select(
		"s.id",
		"s.codigo",
		"s.nombre",
		"s.horas_semanales",
		"s.curso_id",
		"s.profesor_id",
		"COALESCE(c.nombre, '') AS curso",
		"COALESCE("+fullNameExpr+", '') AS profesor",
	).
		From("asignatura s").
		LeftJoin("curso c ON c.id = s.curso_id").
		LeftJoin("profesor t ON t.id = s.profesor_id").
		LeftJoin("persona p ON p.id = t.persona_id")
}

func (repo *subjectRepository) CreateSubject(ctx context.Context, ns subject.NewSubject) (subject.Subject, error) {
	b := psql.Insert("asignatura").
		Columns("codigo", "nombre", "horas_semanales", "curso_id", "profesor_id").
		Values(ns.Code, ns.Name, ns.WeeklyHours, ns.CourseID, ns.TeacherID)
	id, err := insert(ctx, repo.db, b)
	if err != nil {
		return subject.Subject{}, database.MapError(err, "inserting asignatura", subjectConstraints)
	}
	return repo.GetSubject(ctx, id)
}

func (repo *subjectRepository) GetSubject(ctx context.Context, id int) (subject.Subject, error) {
	var s subject.Subject
	if err := get(ctx, repo.db, &s, repo.selectSubjects().Where("s.id = ?", id), subject.ErrNotFound); err != nil {
		return subject.Subject{}, err
	}
	return s, nil
}

func (repo *subjectRepository) QuerySubjects(ctx context.Context) ([]subject.Subject, error) {
	subjects := make([]subject.Subject, 0)
	q := repo.selectSubjects().OrderBy("c.nombre", "s.nombre", "s.id")
	if err := selectAll(ctx, repo.db, &subjects, q); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *subjectRepository) QueryStudents(ctx context.Context, subjectID int) ([]subject.EnrolledStudent, error) {
	students := make([]subject.EnrolledStudent, 0)
	q := psql.Select("m.id", "m.alumno_id", "p.nombre", "p.apellidos", "p.dni", "m.nota", "m.incidencias").
		From("matricula m").
		Join("alumno a ON a.id = m.alumno_id").
		Join("persona p ON p.id = a.persona_id").
		Where("m.asignatura_id = ?", subjectID).
		OrderBy("p.apellidos", "p.nombre", "m.id")
	if err := selectAll(ctx, repo.db, &students, q); err != nil {
		return nil, err
	}
	return students, nil
}

func (repo *subjectRepository) QuerySchedule(ctx context.Context, subjectID int) ([]subject.Slot, error) {
	slots := make([]subject.Slot, 0)
	q := psql.Select(
		"h.id",
		"h.aula_id",
		"a.codigo AS aula",
		"a.piso",
		"h.dia_semana",
		"h.mes",
		hhmm("h.hora_inicio")+" AS hora_inicio",
		hhmm("h.hora_fin")+" AS hora_fin",
	).
		From("horario_clase h").
		Join("aula a ON a.id = h.aula_id").
		Where("h.asignatura_id = ?", subjectID).
		OrderBy("h.mes", "h.dia_semana", "h.hora_inicio", "h.id")
	if err := selectAll(ctx, repo.db, &slots, q); err != nil {
		return nil, err
	}
	return slots, nil
}
