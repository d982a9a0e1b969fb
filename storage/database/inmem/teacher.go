package inmemdb

import (
	"context"
	"sort"

	"github.com/volatiletech/null/v8"

	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/teacher"
)

type teacherRepository struct {
	db *DB
}

func NewTeacherRepository(db *DB) teacher.Repository {
	return &teacherRepository{db: db}
}

func (repo *teacherRepository) teacher(id int) (teacher.Teacher, bool) {
	row, ok := repo.db.teachers[id]
	if !ok {
		return teacher.Teacher{}, false
	}
	t := teacher.Teacher{ID: id, Person: repo.db.persons[row.personID], Specialty: row.specialty}
	if courseID := repo.db.tutoredCourse(id); courseID != 0 {
		t.TutoredCourseID = null.IntFrom(courseID)
		t.TutoredCourse = null.StringFrom(repo.db.courseName(courseID))
	}
	return t, true
}

func (repo *teacherRepository) CreateTeacher(_ context.Context, p person.Person, specialty string) (teacher.Teacher, error) {
	if err := repo.db.lock(); err != nil {
		return teacher.Teacher{}, err
	}
	defer repo.db.mutex.Unlock()

	p, err := repo.db.createPerson(p)
	if err != nil {
		return teacher.Teacher{}, err
	}
	id := repo.db.nextID("profesor")
	repo.db.teachers[id] = teacherRow{personID: p.ID, specialty: specialty}
	return teacher.Teacher{ID: id, Person: p, Specialty: specialty}, nil
}

func (repo *teacherRepository) GetTeacher(_ context.Context, id int) (teacher.Teacher, error) {
	if err := repo.db.rlock(); err != nil {
		return teacher.Teacher{}, err
	}
	defer repo.db.mutex.RUnlock()

	if t, ok := repo.teacher(id); ok {
		return t, nil
	}
	return teacher.Teacher{}, teacher.ErrNotFound
}

func (repo *teacherRepository) QueryTeachers(_ context.Context) ([]teacher.Teacher, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	teachers := make([]teacher.Teacher, 0, len(repo.db.teachers))
	for id := range repo.db.teachers {
		t, _ := repo.teacher(id)
		teachers = append(teachers, t)
	}
	sort.Slice(teachers, func(i, j int) bool {
		if teachers[i].Surname != teachers[j].Surname || teachers[i].Name != teachers[j].Name {
			return personLess(teachers[i].Person, teachers[j].Person)
		}
		return teachers[i].ID < teachers[j].ID
	})
	return teachers, nil
}

func (repo *teacherRepository) QuerySubjects(_ context.Context, teacherID int) ([]teacher.TaughtSubject, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	subjects := make([]teacher.TaughtSubject, 0)
	for id, s := range repo.db.subjects {
		if s.TeacherID != teacherID {
			continue
		}
		subjects = append(subjects, teacher.TaughtSubject{
			ID:          id,
			Code:        s.Code,
			Name:        s.Name,
			WeeklyHours: s.WeeklyHours,
			Course:      repo.db.courseName(s.CourseID),
		})
	}
	sort.Slice(subjects, func(i, j int) bool {
		a, b := subjects[i], subjects[j]
		if a.Course != b.Course {
			return a.Course < b.Course
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.ID < b.ID
	})
	return subjects, nil
}

func (repo *teacherRepository) AssignTutorship(_ context.Context, teacherID, courseID int) error {
	if err := repo.db.lock(); err != nil {
		return err
	}
	defer repo.db.mutex.Unlock()
	return repo.db.assignTutor(courseID, teacherID)
}

func (repo *teacherRepository) RemoveTutorship(_ context.Context, teacherID int) error {
	if err := repo.db.lock(); err != nil {
		return err
	}
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.teachers[teacherID]; !ok {
		return teacher.ErrNotFound
	}
	repo.db.releaseTutorship(teacherID)
	return nil
}
