package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/teacher"
	"github.com/trezcool/centro/storage/database"
)

type teacherRepository struct {
	db *sqlx.DB
}

func NewTeacherRepository(db *sqlx.DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) selectTeachers() squirrel.SelectBuilder {
	cols := append([]string{"t.id AS profesor_id"}, personColumns...)
	cols = append(cols, "t.especialidad", "c.id AS curso_tutor_id", "c.nombre AS curso_tutor")
	return psql.Select(cols...).
		From("profesor t").
		Join("persona p ON p.id = t.persona_id").
		LeftJoin("curso c ON c.tutor_id = t.id")
}

func (repo *teacherRepository) CreateTeacher(ctx context.Context, p person.Person, specialty string) (teacher.Teacher, error) {
	var t teacher.Teacher
	err := inTx(ctx, repo.db, func(tx *sqlx.Tx) error {
		var err error
		if p, err = createPerson(ctx, tx, p); err != nil {
			return err
		}
		b := psql.Insert("profesor").Columns("persona_id", "especialidad").Values(p.ID, specialty)
		id, err := insert(ctx, tx, b)
		if err != nil {
			return database.MapError(err, "inserting profesor", nil)
		}
		t = teacher.Teacher{ID: id, Person: p, Specialty: specialty}
		return nil
	})
	return t, err
}

func (repo *teacherRepository) GetTeacher(ctx context.Context, id int) (teacher.Teacher, error) {
	var t teacher.Teacher
	if err := get(ctx, repo.db, &t, repo.selectTeachers().Where("t.id = ?", id), teacher.ErrNotFound); err != nil {
		return teacher.Teacher{}, err
	}
	return t, nil
}

func (repo *teacherRepository) QueryTeachers(ctx context.Context) ([]teacher.Teacher, error) {
	teachers := make([]teacher.Teacher, 0)
	q := repo.selectTeachers().OrderBy("p.apellidos", "p.nombre", "t.id")
	if err := selectAll(ctx, repo.db, &teachers, q); err != nil {
		return nil, err
	}
	return teachers, nil
}

func (repo *teacherRepository) QuerySubjects(ctx context.Context, teacherID int) ([]teacher.TaughtSubject, error) {
	subjects := make([]teacher.TaughtSubject, 0)
	q := psql.Select("s.id", "s.codigo", "s.nombre", "s.horas_semanales", "c.nombre AS curso").
		From("asignatura s").
		Join("curso c ON c.id = s.curso_id").
		Where("s.profesor_id = ?", teacherID).
		OrderBy("c.nombre", "s.nombre", "s.id")
	if err := selectAll(ctx, repo.db, &subjects, q); err != nil {
		return nil, err
	}
	return subjects, nil
}

func (repo *teacherRepository) AssignTutorship(ctx context.Context, teacherID, courseID int) error {
	return assignTutor(ctx, repo.db, courseID, teacherID)
}

func (repo *teacherRepository) RemoveTutorship(ctx context.Context, teacherID int) error {
	if err := checkTeacher(ctx, repo.db, teacherID); err != nil {
		return err
	}
	if _, err := exec(ctx, repo.db, psql.Update("curso").Set("tutor_id", nil).Where("tutor_id = ?", teacherID)); err != nil {
		return core.NewStoreError(err, "removing tutorship")
	}
	return nil
}
