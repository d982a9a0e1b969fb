package inmemdb

import (
	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/teacher"
)

// assignTutor must be called with the write lock held.
func (db *DB) assignTutor(courseID, teacherID int) error {
	if _, ok := db.teachers[teacherID]; !ok {
		return teacher.ErrNotFound
	}
	c, ok := db.courses[courseID]
	if !ok {
		return course.ErrNotFound
	}
	db.releaseTutorship(teacherID)
	c.tutorID = null.IntFrom(teacherID)
	db.courses[courseID] = c
	return nil
}

// releaseTutorship must be called with the write lock held.
func (db *DB) releaseTutorship(teacherID int) {
	for id, c := range db.courses {
		if c.tutorID.Valid && c.tutorID.Int == teacherID {
			c.tutorID = null.Int{}
			db.courses[id] = c
		}
	}
}

// tutoredCourse returns the id of the course tutored by the teacher (0 if none).
func (db *DB) tutoredCourse(teacherID int) int {
	for id, c := range db.courses {
		if c.tutorID.Valid && c.tutorID.Int == teacherID {
			return id
		}
	}
	return 0
}
