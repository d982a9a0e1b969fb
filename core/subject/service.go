package subject

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/centro/core"
)

var (
	// errors
	ErrNotFound       = core.NewNotFoundError("subject not found")
	ErrUnknownCourse  = errors.New("course does not exist")
	ErrUnknownTeacher = errors.New("teacher does not exist")
)

type (
	Repository interface {
		// CreateSubject fails with ErrUnknownCourse or ErrUnknownTeacher when a reference does not resolve.
		CreateSubject(ctx context.Context, ns NewSubject) (Subject, error)
		GetSubject(ctx context.Context, id int) (Subject, error)
		// QuerySubjects returns all subjects ordered by course name, subject name.
		QuerySubjects(ctx context.Context) ([]Subject, error)
		// QueryStudents returns the students enrolled in the subject ordered by surname, name.
		QueryStudents(ctx context.Context, subjectID int) ([]EnrolledStudent, error)
		// QuerySchedule returns the subject's slots ordered by month, weekday, start.
		QuerySchedule(ctx context.Context, subjectID int) ([]Slot, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewSubject) (Subject, error) {
	s, err := svc.repo.CreateSubject(ctx, ns)
	switch {
	case errors.Is(err, ErrUnknownCourse):
		return Subject{}, core.NewValidationError(err, core.FieldError{Field: "course_id", Error: err.Error()})
	case errors.Is(err, ErrUnknownTeacher):
		return Subject{}, core.NewValidationError(err, core.FieldError{Field: "teacher_id", Error: err.Error()})
	case err != nil:
		return Subject{}, err
	}
	return s, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	s, err := svc.repo.GetSubject(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	students, err := svc.repo.QueryStudents(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	slots, err := svc.repo.QuerySchedule(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Subject: s, Students: students, Schedule: slots}, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Subject, error) {
	return svc.repo.QuerySubjects(ctx)
}
