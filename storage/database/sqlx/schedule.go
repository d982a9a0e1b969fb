package sqlxrepos

import (
	"context"

	"github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/schedule"
	"github.com/trezcool/centro/storage/database"
)

var scheduleConstraints = map[string]error{
	"horario_clase_asignatura_id_fkey": schedule.ErrUnknownSubject,
	"horario_clase_aula_id_fkey":       schedule.ErrUnknownClassroom,
}

type scheduleRepository struct {
	db *sqlx.DB
}

func NewScheduleRepository(db *sqlx.DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) selectSlots() squirrel.SelectBuilder {
	return psql.Select(
		"h.id",
		"h.asignatura_id",
		"h.aula_id",
		"h.dia_semana",
		"h.mes",
		hhmm("h.hora_inicio")+" AS hora_inicio",
		hhmm("h.hora_fin")+" AS hora_fin",
		"s.nombre AS asignatura",
		"c.nombre AS curso",
		"a.codigo AS aula",
		"a.piso",
	).
		From("horario_clase h").
		Join("asignatura s ON s.id = h.asignatura_id").
		Join("curso c ON c.id = s.curso_id").
		Join("aula a ON a.id = h.aula_id")
}

func (repo *scheduleRepository) CreateSlot(ctx context.Context, ns schedule.NewSlot) (schedule.Slot, error) {
	b := psql.Insert("horario_clase").
		Columns("asignatura_id", "aula_id", "dia_semana", "mes", "hora_inicio", "hora_fin").
		Values(
			ns.SubjectID, ns.ClassroomID, ns.Weekday, ns.Month,
			squirrel.Expr("CAST(? AS TEXT)::time", ns.Start),
			squirrel.Expr("CAST(? AS TEXT)::time", ns.End),
		)
	id, err := insert(ctx, repo.db, b)
	if err != nil {
		return schedule.Slot{}, database.MapError(err, "inserting horario_clase", scheduleConstraints)
	}

	var s schedule.Slot
	if err = get(ctx, repo.db, &s, repo.selectSlots().Where("h.id = ?", id), schedule.ErrNotFound); err != nil {
		return schedule.Slot{}, err
	}
	return s, nil
}

func (repo *scheduleRepository) QuerySlots(ctx context.Context) ([]schedule.Slot, error) {
	slots := make([]schedule.Slot, 0)
	q := repo.selectSlots().OrderBy("h.mes", "h.dia_semana", "h.hora_inicio", "h.id")
	if err := selectAll(ctx, repo.db, &slots, q); err != nil {
		return nil, err
	}
	return slots, nil
}

func (repo *scheduleRepository) DeleteSlot(ctx context.Context, id int) error {
	n, err := exec(ctx, repo.db, psql.Delete("horario_clase").Where("id = ?", id))
	if err != nil {
		return core.NewStoreError(err, "deleting horario_clase")
	}
	if n == 0 {
		return schedule.ErrNotFound
	}
	return nil
}
