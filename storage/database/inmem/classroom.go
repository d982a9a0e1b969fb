package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/centro/core/classroom"
)

type classroomRepository struct {
	db *DB
}

func NewClassroomRepository(db *DB) classroom.Repository {
	return &classroomRepository{db: db}
}

func (repo *classroomRepository) classroom(id int) (classroom.Classroom, bool) {
	nc, ok := repo.db.classrooms[id]
	if !ok {
		return classroom.Classroom{}, false
	}
	c := classroom.Classroom{ID: id, Code: nc.Code, Floor: nc.Floor, Desks: nc.Desks}
	for _, s := range repo.db.slots {
		if s.ClassroomID == id {
			c.NumSlots++
		}
	}
	return c, true
}

func (repo *classroomRepository) CreateClassroom(_ context.Context, nc classroom.NewClassroom) (classroom.Classroom, error) {
	if err := repo.db.lock(); err != nil {
		return classroom.Classroom{}, err
	}
	defer repo.db.mutex.Unlock()

	id := repo.db.nextID("aula")
	repo.db.classrooms[id] = nc
	return classroom.Classroom{ID: id, Code: nc.Code, Floor: nc.Floor, Desks: nc.Desks}, nil
}

func (repo *classroomRepository) GetClassroom(_ context.Context, id int) (classroom.Classroom, error) {
	if err := repo.db.rlock(); err != nil {
		return classroom.Classroom{}, err
	}
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.classroom(id); ok {
		return c, nil
	}
	return classroom.Classroom{}, classroom.ErrNotFound
}

func (repo *classroomRepository) QueryClassrooms(_ context.Context) ([]classroom.Classroom, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	classrooms := make([]classroom.Classroom, 0, len(repo.db.classrooms))
	for id := range repo.db.classrooms {
		c, _ := repo.classroom(id)
		classrooms = append(classrooms, c)
	}
	sort.Slice(classrooms, func(i, j int) bool {
		a, b := classrooms[i], classrooms[j]
		if a.Floor != b.Floor {
			return a.Floor < b.Floor
		}
		if a.Code != b.Code {
			return a.Code < b.Code
		}
		return a.ID < b.ID
	})
	return classrooms, nil
}

func (repo *classroomRepository) QuerySchedule(_ context.Context, classroomID int) ([]classroom.Slot, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	slots := make([]classroom.Slot, 0)
	for id, ns := range repo.db.slots {
		if ns.ClassroomID != classroomID {
			continue
		}
		s := repo.db.subjects[ns.SubjectID]
		slots = append(slots, classroom.Slot{
			ID:          id,
			SubjectID:   ns.SubjectID,
			SubjectCode: s.Code,
			Subject:     s.Name,
			Course:      repo.db.courseName(s.CourseID),
			Weekday:     ns.Weekday,
			Month:       ns.Month,
			Start:       ns.Start,
			End:         ns.End,
		})
	}
	sort.Slice(slots, func(i, j int) bool {
		return slotLess(
			slotKey{slots[i].Month, slots[i].Weekday, slots[i].Start, slots[i].ID},
			slotKey{slots[j].Month, slots[j].Weekday, slots[j].Start, slots[j].ID},
		)
	})
	return slots, nil
}
