package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/student"
)

type studentRepository struct {
	db *DB
}

func NewStudentRepository(db *DB) student.Repository {
	return &studentRepository{db: db}
}

func (repo *studentRepository) student(id int) (student.Student, bool) {
	row, ok := repo.db.students[id]
	if !ok {
		return student.Student{}, false
	}
	return student.Student{ID: id, Person: repo.db.persons[row.personID]}, true
}

func (repo *studentRepository) CreateStudent(_ context.Context, p person.Person) (student.Student, error) {
	if err := repo.db.lock(); err != nil {
		return student.Student{}, err
	}
	defer repo.db.mutex.Unlock()

	p, err := repo.db.createPerson(p)
	if err != nil {
		return student.Student{}, err
	}
	id := repo.db.nextID("alumno")
	repo.db.students[id] = studentRow{personID: p.ID}
	return student.Student{ID: id, Person: p}, nil
}

func (repo *studentRepository) GetStudent(_ context.Context, id int) (student.Student, error) {
	if err := repo.db.rlock(); err != nil {
		return student.Student{}, err
	}
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.student(id); ok {
		return s, nil
	}
	return student.Student{}, student.ErrNotFound
}

func (repo *studentRepository) QueryStudents(_ context.Context) ([]student.Student, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	students := make([]student.Student, 0, len(repo.db.students))
	for id := range repo.db.students {
		s, _ := repo.student(id)
		students = append(students, s)
	}
	sort.Slice(students, func(i, j int) bool {
		if students[i].Surname != students[j].Surname || students[i].Name != students[j].Name {
			return personLess(students[i].Person, students[j].Person)
		}
		return students[i].ID < students[j].ID
	})
	return students, nil
}

func (repo *studentRepository) QueryEnrollments(_ context.Context, studentID int) ([]student.EnrolledSubject, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	enrollments := make([]student.EnrolledSubject, 0)
	for _, e := range repo.db.enrollments {
		if e.StudentID != studentID {
			continue
		}
		s := repo.db.subjects[e.SubjectID]
		enrollments = append(enrollments, student.EnrolledSubject{
			EnrollmentID: e.ID,
			SubjectID:    e.SubjectID,
			Code:         s.Code,
			Subject:      s.Name,
			WeeklyHours:  s.WeeklyHours,
			Course:       repo.db.courseName(s.CourseID),
			Teacher:      repo.db.teacherName(s.TeacherID),
			Grade:        e.Grade,
			Incidents:    e.Incidents,
		})
	}
	sort.Slice(enrollments, func(i, j int) bool {
		a, b := enrollments[i], enrollments[j]
		if a.Course != b.Course {
			return a.Course < b.Course
		}
		if a.Subject != b.Subject {
			return a.Subject < b.Subject
		}
		return a.EnrollmentID < b.EnrollmentID
	})
	return enrollments, nil
}

func (repo *studentRepository) QueryEligibleSubjects(_ context.Context, studentID int) ([]student.EligibleSubject, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	enrolled := make(map[int]bool)
	for _, e := range repo.db.enrollments {
		if e.StudentID == studentID {
			enrolled[e.SubjectID] = true
		}
	}

	subjects := make([]student.EligibleSubject, 0)
	for id, s := range repo.db.subjects {
		if enrolled[id] {
			continue
		}
		subjects = append(subjects, student.EligibleSubject{
			ID:     id,
			Code:   s.Code,
			Name:   s.Name,
			Course: repo.db.courseName(s.CourseID),
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

func (repo *studentRepository) DeleteStudent(_ context.Context, id int) error {
	if err := repo.db.lock(); err != nil {
		return err
	}
	defer repo.db.mutex.Unlock()

	row, ok := repo.db.students[id]
	if !ok {
		return student.ErrNotFound
	}
	for eid, e := range repo.db.enrollments {
		if e.StudentID == id {
			delete(repo.db.enrollments, eid)
		}
	}
	delete(repo.db.students, id)

	// the person may also be a teacher
	for _, t := range repo.db.teachers {
		if t.personID == row.personID {
			return nil
		}
	}
	delete(repo.db.persons, row.personID)
	return nil
}
