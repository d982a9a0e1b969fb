package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/storage/database"
)

type courseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) selectCourses() squirrel.SelectBuilder {
	return psql.Select(
		"c.id",
		"c.codigo",
		"c.nombre",
		"c.tutor_id",
		fullNameExpr+" AS tutor",
		"COUNT(s.id) AS num_asignaturas",
	).
		From("curso c").
		LeftJoin("profesor t ON t.id = c.tutor_id").
		LeftJoin("persona p ON p.id = t.persona_id").
		LeftJoin("asignatura s ON s.curso_id = c.id").
		GroupBy("c.id", "p.nombre", "p.apellidos")
}

func (repo *courseRepository) CreateCourse(ctx context.Context, nc course.NewCourse) (course.Course, error) {
	id, err := insert(ctx, repo.db, psql.Insert("curso").Columns("codigo", "nombre").Values(nc.Code, nc.Name))
	if err != nil {
		return course.Course{}, database.MapError(err, "inserting curso", nil)
	}
	return course.Course{ID: id, Code: nc.Code, Name: nc.Name}, nil
}

func (repo *courseRepository) GetCourse(ctx context.Context, id int) (course.Course, error) {
	var c course.Course
	if err := get(ctx, repo.db, &c, repo.selectCourses().Where("c.id = ?", id), course.ErrNotFound); err != nil {
		return course.Course{}, err
	}
	return c, nil
}

func (repo *courseRepository) QueryCourses(ctx context.Context) ([]course.Course, error) {
	courses := make([]course.Course, 0)
	if err := selectAll(ctx, repo.db, &courses, repo.selectCourses().OrderBy("c.codigo", "c.id")); err != nil {
		return nil, err
	}
	return courses, nil
}

func (repo *courseRepository) QuerySubjects(ctx context.Context, courseID int) ([]course.CourseSubject, error) {
	subjects := make([]course.CourseSubject, 0)
	q := psql.Select("s.id", "s.codigo", "s.nombre", "s.horas_semanales", fullNameExpr+" AS profesor").
		From("asignatura s").
		Join("profesor t ON t.id = s.profesor_id").
		Join("persona p ON p.id = t.persona_id").
		Where("s.curso_id = ?", courseID).
		OrderBy("s.nombre", "s.id")
	if err := selectAll(ctx, repo.db, &subjects, q); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *courseRepository) AssignTutor(ctx context.Context, courseID, teacherID int) error {
	return assignTutor(ctx, repo.db, courseID, teacherID)
}

func (repo *courseRepository) RemoveTutor(ctx context.Context, courseID int) error {
	n, err := exec(ctx, repo.db, psql.Update("curso").Set("tutor_id", nil).Where("id = ?", courseID))
	if err != nil {
		return core.NewStoreError(err, "removing tutor")
	}
	if n == 0 {
		return course.ErrNotFound
	}
	return nil
}
