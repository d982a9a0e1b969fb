package inmemdb

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core/course"
)

type courseRepository struct {
	db *DB
}

func NewCourseRepository(db *DB) course.Repository {
	return &courseRepository{db: db}
}

func (repo *courseRepository) course(id int) (course.Course, bool) {
	row, ok := repo.db.courses[id]
	if !ok {
		return course.Course{}, false
	}
	c := course.Course{ID: id, Code: row.Code, Name: row.Name, TutorID: row.tutorID}
	if row.tutorID.Valid {
		c.Tutor = null.StringFrom(repo.db.teacherName(row.tutorID.Int))
	}
	for _, s := range repo.db.subjects {
		if s.CourseID == id {
			c.NumSubjects++
		}
	}
	return c, true
}

func (repo *courseRepository) CreateCourse(_ context.Context, nc course.NewCourse) (course.Course, error) {
	if err := repo.db.lock(); err != nil {
		return course.Course{}, err
	}
	defer repo.db.mutex.Unlock()

	id := repo.db.nextID("curso")
	repo.db.courses[id] = courseRow{NewCourse: nc}
	return course.Course{ID: id, Code: nc.Code, Name: nc.Name}, nil
}

func (repo *courseRepository) GetCourse(_ context.Context, id int) (course.Course, error) {
	if err := repo.db.rlock(); err != nil {
		return course.Course{}, err
	}
	defer repo.db.mutex.RUnlock()

	if c, ok := repo.course(id); ok {
		return c, nil
	}
	return course.Course{}, course.ErrNotFound
}

func (repo *courseRepository) QueryCourses(_ context.Context) ([]course.Course, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	courses := make([]course.Course, 0, len(repo.db.courses))
	for id := range repo.db.courses {
		c, _ := repo.course(id)
		courses = append(courses, c)
	}
	sort.Slice(courses, func(i, j int) bool {
		if courses[i].Code != courses[j].Code {
			return courses[i].Code < courses[j].Code
		}
		return courses[i].ID < courses[j].ID
	})
	return courses, nil
}

func (repo *courseRepository) QuerySubjects(_ context.Context, courseID int) ([]course.CourseSubject, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	subjects := make([]course.CourseSubject, 0)
	for id, s := range repo.db.subjects {
		if s.CourseID != courseID {
			continue
		}
		subjects = append(subjects, course.CourseSubject{
			ID:          id,
			Code:        s.Code,
			Name:        s.Name,
			WeeklyHours: s.WeeklyHours,
			Teacher:     repo.db.teacherName(s.TeacherID),
		})
	}
	sort.Slice(subjects, func(i, j int) bool {
		if subjects[i].Name != subjects[j].Name {
			return subjects[i].Name < subjects[j].Name
		}
		return subjects[i].ID < subjects[j].ID
	})
	return subjects, nil
}

func (repo *courseRepository) AssignTutor(_ context.Context, courseID, teacherID int) error {
	if err := repo.db.lock(); err != nil {
		return err
	}
	defer repo.db.mutex.Unlock()
	return repo.db.assignTutor(courseID, teacherID)
}

func (repo *courseRepository) RemoveTutor(_ context.Context, courseID int) error {
	if err := repo.db.lock(); err != nil {
		return err
	}
	defer repo.db.mutex.Unlock()

	c, ok := repo.db.courses[courseID]
	if !ok {
		return course.ErrNotFound
	}
	c.tutorID = null.Int{}
	repo.db.courses[courseID] = c
	return nil
}
