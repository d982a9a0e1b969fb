package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core/classroom"
	"github.com/trezcool/centro/storage/database"
)

type classroomRepository struct {
	db *sqlx.DB
}

func NewClassroomRepository(db *sqlx.DB) classroom.Repository {
	return &classroomRepository{db: db}
}

// rooms without slots are kept by the outer join and counted as 0
func (repo *classroomRepository) selectClassrooms() squirrel.SelectBuilder {
	return psql.Select("a.id", "a.codigo", "a.piso", "a.num_pupitres", "COUNT(h.id) AS num_horarios").
		From("aula a").
		LeftJoin("horario_clase h ON h.aula_id = a.id").
		GroupBy("a.id")
}

func (repo *classroomRepository) CreateClassroom(ctx context.Context, nc classroom.NewClassroom) (classroom.Classroom, error) {
	b := psql.Insert("aula").Columns("codigo", "piso", "num_pupitres").Values(nc.Code, nc.Floor, nc.Desks)
	id, err := insert(ctx, repo.db, b)
	if err != nil {
		return classroom.Classroom{}, database.MapError(err, "inserting aula", nil)
	}
	return classroom.Classroom{ID: id, Code: nc.Code, Floor: nc.Floor, Desks: nc.Desks}, nil
}

func (repo *classroomRepository) GetClassroom(ctx context.Context, id int) (classroom.Classroom, error) {
	var c classroom.Classroom
	if err := get(ctx, repo.db, &c, repo.selectClassrooms().Where("a.id = ?", id), classroom.ErrNotFound); err != nil {
		return classroom.Classroom{}, err
	}
	return c, nil
}

func (repo *classroomRepository) QueryClassrooms(ctx context.Context) ([]classroom.Classroom, error) {
	classrooms := make([]classroom.Classroom, 0)
	q := repo.selectClassrooms().OrderBy("a.piso", "a.codigo", "a.id")
	if err := selectAll(ctx, repo.db, &classrooms, q); err != nil {
		return nil, err
	}
	return classrooms, nil
}

func (repo *classroomRepository) QuerySchedule(ctx context.Context, classroomID int) ([]classroom.Slot, error) {
	slots := make([]classroom.Slot, 0)
	q := psql.Select(
		"h.id",
		"h.asignatura_id",
		"s.codigo",
		"s.nombre AS asignatura",
		"c.nombre AS curso",
		"h.dia_semana",
		"h.mes",
		hhmm("h.hora_inicio")+" AS hora_inicio",
		hhmm("h.hora_fin")+" AS hora_fin",
	).
		From("horario_clase h").
		Join("asignatura s ON s.id = h.asignatura_id").
		Join("curso c ON c.id = s.curso_id").
		Where("h.aula_id = ?", classroomID).
		OrderBy("h.mes", "h.dia_semana", "h.hora_inicio", "h.id")
	if err := selectAll(ctx, repo.db, &slots, q); err != nil {
		return nil, err
	}
	return slots, nil
}
