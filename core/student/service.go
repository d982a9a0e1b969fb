package student

import (
	"context"
	"time"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/person"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound = core.NewNotFoundError("student not found")
)

type (
	Repository interface {
		// CreateStudent registers the person and links it as a student in one step.
		CreateStudent(ctx context.Context, p person.Person) (Student, error)
		GetStudent(ctx context.Context, id int) (Student, error)
		// QueryStudents returns all students ordered by surname, name.
		QueryStudents(ctx context.Context) ([]Student, error)
		// QueryEnrollments returns the student's enrollments ordered by course, subject.
		QueryEnrollments(ctx context.Context, studentID int) ([]EnrolledSubject, error)
		// QueryEligibleSubjects returns every subject the student is not enrolled in,
		// ordered by course, subject.
		QueryEligibleSubjects(ctx context.Context, studentID int) ([]EligibleSubject, error)
		// DeleteStudent removes the student's enrollments, then the student and its person.
		DeleteStudent(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) withAge(s Student) Student {
	s.Age = person.Age(s.BirthDate, nowFunc())
	return s
}

func (svc *Service) Create(ctx context.Context, np person.NewPerson) (Student, error) {
	p, err := np.Person()
	if err != nil {
		return Student{}, err
	}
	s, err := svc.repo.CreateStudent(ctx, p)
	if err != nil {
		return Student{}, person.CheckDNIConflict(err)
	}
	return svc.withAge(s), nil
}

func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	s, err := svc.repo.GetStudent(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	enrollments, err := svc.repo.QueryEnrollments(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Student: svc.withAge(s), Enrollments: enrollments}, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Student, error) {
	students, err := svc.repo.QueryStudents(ctx)
	if err != nil {
		return nil, err
	}
	for i := range students {
		students[i] = svc.withAge(students[i])
	}
	return students, nil
}

// EligibleSubjects returns all subjects minus the ones the student is already enrolled in.
func (svc *Service) EligibleSubjects(ctx context.Context, id int) ([]EligibleSubject, error) {
	if _, err := svc.repo.GetStudent(ctx, id); err != nil {
		return nil, err
	}
	return svc.repo.QueryEligibleSubjects(ctx, id)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteStudent(ctx, id)
}
