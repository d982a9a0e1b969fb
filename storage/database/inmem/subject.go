package inmemdb

import (
	"context"
	"sort"

	"github.com/trezcool/centro/core/subject"
)

type subjectRepository struct {
	db *DB
}

func NewSubjectRepository(db *DB) subject.Repository {
	return &subjectRepository{db: db}
}

func (repo *subjectRepository) subject(id int) (subject.Subject, bool) {
	ns, ok := repo.db.subjects[id]
	if !ok {
		return subject.Subject{}, false
	}
	return subject.Subject{
		ID:          id,
		Code:        ns.Code,
		Name:        ns.Name,
		WeeklyHours: ns.WeeklyHours,
		CourseID:    ns.CourseID,
		TeacherID:   ns.TeacherID,
		Course:      repo.db.courseName(ns.CourseID),
		Teacher:     repo.db.teacherName(ns.TeacherID),
	}, true
}

func (repo *subjectRepository) CreateSubject(_ context.Context, ns subject.NewSubject) (subject.Subject, error) {
	if err := repo.db.lock(); err != nil {
		return subject.Subject{}, err
	}
	defer repo.db.mutex.Unlock()

	if _, ok := repo.db.courses[ns.CourseID]; !ok {
		return subject.Subject{}, subject.ErrUnknownCourse
	}
	if _, ok := repo.db.teachers[ns.TeacherID]; !ok {
		return subject.Subject{}, subject.ErrUnknownTeacher
	}
	id := repo.db.nextID("asignatura")
	repo.db.subjects[id] = ns
	s, _ := repo.subject(id)
	return s, nil
}

func (repo *subjectRepository) GetSubject(_ context.Context, id int) (subject.Subject, error) {
	if err := repo.db.rlock(); err != nil {
		return subject.Subject{}, err
	}
	defer repo.db.mutex.RUnlock()

	if s, ok := repo.subject(id); ok {
		return s, nil
	}
	return subject.Subject{}, subject.ErrNotFound
}

func (repo *subjectRepository) QuerySubjects(_ context.Context) ([]subject.Subject, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	subjects := make([]subject.Subject, 0, len(repo.db.subjects))
	for id := range repo.db.subjects {
		s, _ := repo.subject(id)
		subjects = append(subjects, s)
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

func (repo *subjectRepository) QueryStudents(_ context.Context, subjectID int) ([]subject.EnrolledStudent, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	students := make([]subject.EnrolledStudent, 0)
	for _, e := range repo.db.enrollments {
		if e.SubjectID != subjectID {
			continue
		}
		p := repo.db.persons[repo.db.students[e.StudentID].personID]
		students = append(students, subject.EnrolledStudent{
			EnrollmentID: e.ID,
			StudentID:    e.StudentID,
			Name:         p.Name,
			Surname:      p.Surname,
			DNI:          p.DNI,
			Grade:        e.Grade,
			Incidents:    e.Incidents,
		})
	}
	sort.Slice(students, func(i, j int) bool {
		a, b := students[i], students[j]
		if a.Surname != b.Surname {
			return a.Surname < b.Surname
		}
		if a.Name != b.Name {
			return a.Name < b.Name
		}
		return a.EnrollmentID < b.EnrollmentID
	})
	return students, nil
}

func (repo *subjectRepository) QuerySchedule(_ context.Context, subjectID int) ([]subject.Slot, error) {
	if err := repo.db.rlock(); err != nil {
		return nil, err
	}
	defer repo.db.mutex.RUnlock()

	slots := make([]subject.Slot, 0)
	for id, ns := range repo.db.slots {
		if ns.SubjectID != subjectID {
			continue
		}
		room := repo.db.classrooms[ns.ClassroomID]
		slots = append(slots, subject.Slot{
			ID:          id,
			ClassroomID: ns.ClassroomID,
			Classroom:   room.Code,
			Floor:       room.Floor,
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
