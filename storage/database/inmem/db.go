// Package inmemdb implements the core repositories in memory.
// It keeps the same ordering and integrity rules as the SQL store and is used
// by tests and by the `inmem` database engine.
package inmemdb

import (
	"context"
	"sync"

	"github.com/pkg/errors"
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/classroom"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/schedule"
	"github.com/trezcool/centro/core/subject"
)

var errClosed = errors.New("in-memory database is closed")

type (
	DB struct {
		mutex  sync.RWMutex
		closed bool
		seq    map[string]int

		persons     map[int]person.Person
		students    map[int]studentRow
		teachers    map[int]teacherRow
		courses     map[int]courseRow
		subjects    map[int]subject.NewSubject
		classrooms  map[int]classroom.NewClassroom
		slots       map[int]schedule.NewSlot
		enrollments map[int]enrollment.Enrollment
	}

	studentRow struct {
		personID int
	}

	teacherRow struct {
		personID  int
		specialty string
	}

	courseRow struct {
		course.NewCourse
		tutorID null.Int
	}
)

var _ core.DB = (*DB)(nil)

func Open() *DB {
	db := &DB{}
	db.reset()
	return db
}

func (db *DB) reset() {
	db.seq = make(map[string]int)
	db.persons = make(map[int]person.Person)
	db.students = make(map[int]studentRow)
	db.teachers = make(map[int]teacherRow)
	db.courses = make(map[int]courseRow)
	db.subjects = make(map[int]subject.NewSubject)
	db.classrooms = make(map[int]classroom.NewClassroom)
	db.slots = make(map[int]schedule.NewSlot)
	db.enrollments = make(map[int]enrollment.Enrollment)
}

// Reset drops every record and restarts the id sequences.
func (db *DB) Reset() {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.reset()
}

func (db *DB) PingContext(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	db.mutex.RLock()
	defer db.mutex.RUnlock()
	if db.closed {
		return errClosed
	}
	return nil
}

func (db *DB) Close() error {
	db.mutex.Lock()
	defer db.mutex.Unlock()
	db.closed = true
	return nil
}

// nextID must be called with the write lock held.
func (db *DB) nextID(table string) int {
	db.seq[table]++
	return db.seq[table]
}

func (db *DB) rlock() error {
	db.mutex.RLock()
	if db.closed {
		db.mutex.RUnlock()
		return core.NewStoreError(errClosed, "reading")
	}
	return nil
}

func (db *DB) lock() error {
	db.mutex.Lock()
	if db.closed {
		db.mutex.Unlock()
		return core.NewStoreError(errClosed, "writing")
	}
	return nil
}

func (db *DB) fullName(personID int) string {
	return person.FullName(db.persons[personID])
}

func (db *DB) teacherName(teacherID int) string {
	t, ok := db.teachers[teacherID]
	if !ok {
		return ""
	}
	return db.fullName(t.personID)
}

func (db *DB) courseName(courseID int) string {
	return db.courses[courseID].Name
}
