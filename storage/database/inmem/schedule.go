package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/centro/core/schedule"
)

type slotKey struct {
	month, weekday int
	start          string
	id             int
}

// slotLess orders slots by month, weekday, start.
func slotLess(a, b slotKey) bool {
	if a.month != b.month {
		return a.month < b.month
	}
	if a.weekday != b.weekday {
		return a.weekday < b.weekday
	}
	if a.start != b.start {
		return a.start < b.start
	}
	return a.id < b.id
}

type scheduleRepository struct {
	db *DB
}

func NewScheduleRepository(db *DB) schedule.Repository {
	return &scheduleRepository{db: db}
}

func (repo *scheduleRepository) slot(id int) schedule.Slot {
	ns := repo.db.slots[id]
	s := repo.db.subjects[ns.SubjectID]
	room := repo.db.classrooms[ns.ClassroomID]
	return schedule.Slot{
		ID:          id,
		SubjectID:   ns.SubjectID,
		ClassroomID: ns.ClassroomID,
		Weekday:     ns.Weekday,
		Month:       ns.Month,
		Start:       ns.Start,
		End:         ns.End,
		Subject:     s.Name,
		Course:      repo.db.courseName(s.CourseID),
		Classroom:   room.Code,
		Floor:       room.Floor,
	}
}

func (repo *scheduleRepository) CreateSlot(_ context.Context, ns schedule.NewSlot) (schedule.Slot, error) {
	if err := repo.db.lock(); err != nil {
		return schedule.Slot{}, err
	}
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.subjects[ns.SubjectID]; !ok {
		return schedule.Slot{}, schedule.ErrUnknownSubject
	}
	if _, ok := repo.db.classrooms[ns.ClassroomID]; !ok {
		return schedule.Slot{}, schedule.ErrUnknownClassroom
	}
	id := repo.db.nextID("horario_clase")
	repo.db.slots[id] = ns
	return repo.slot(id), nil
}

func (repo *scheduleRepository) QuerySlots(_ context.Context) ([]schedule.Slot, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	slots := make([]schedule.Slot, 0, len(repo.db.slots))
	for id := range repo.db.slots {
		slots = append(slots, repo.slot(id))
	}
	sort.Slice(slots, func(i, j int) bool {
		return slotLess(
			slotKey{slots[i].Month, slots[i].Weekday, slots[i].Start, slots[i].ID},
			slotKey{slots[j].Month, slots[j].Weekday, slots[j].Start, slots[j].ID},
		)
	})
	return slots, nil
}

func (repo *scheduleRepository) DeleteSlot(_ context.Context, id int) error {
	if err := repo.db.lock(); err != nil {
		return err
	}
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.slots[id]; !ok {
		return schedule.ErrNotFound
	}
	delete(repo.db.slots, id)
	return nil
}
