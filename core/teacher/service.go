package teacher

import (
	"context"
	"time"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/person"
)

var (
	nowFunc = time.Now // mockable

	// errors
	ErrNotFound     = core.NewNotFoundError("teacher not found")
	ErrAlreadyTutor = core.NewConflictError("teacher already tutors another course")
)

type (
	Repository interface {
		CreateTeacher(ctx context.Context, p person.Person, specialty string) (Teacher, error)
		GetTeacher(ctx context.Context, id int) (Teacher, error)
		// QueryTeachers returns all teachers ordered by surname, name.
		QueryTeachers(ctx context.Context) ([]Teacher, error)
		// QuerySubjects returns the subjects taught by the teacher ordered by course, name.
		QuerySubjects(ctx context.Context, teacherID int) ([]TaughtSubject, error)
		// AssignTutorship makes the teacher the tutor of the course, releasing any
		// other course the teacher was tutoring. Fails with a not found error when
		// either the teacher or the course does not exist.
		AssignTutorship(ctx context.Context, teacherID, courseID int) error
		// RemoveTutorship releases the course tutored by the teacher, if any.
		RemoveTutorship(ctx context.Context, teacherID int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) withAge(t Teacher) Teacher {
	t.Age = person.Age(t.BirthDate, nowFunc())
	return t
}

func (svc *Service) Create(ctx context.Context, nt NewTeacher) (Teacher, error) {
	p, err := nt.Person()
	if err != nil {
		return Teacher{}, err
	}
	t, err := svc.repo.CreateTeacher(ctx, p, nt.Specialty)
	if err != nil {
		return Teacher{}, person.CheckDNIConflict(err)
	}
	return svc.withAge(t), nil
}

func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	t, err := svc.repo.GetTeacher(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	subjects, err := svc.repo.QuerySubjects(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	return Detail{Teacher: svc.withAge(t), Subjects: subjects}, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Teacher, error) {
	teachers, err := svc.repo.QueryTeachers(ctx)
	if err != nil {
		return nil, err
	}
	for i := range teachers {
		teachers[i] = svc.withAge(teachers[i])
	}
	return teachers, nil
}

func (svc *Service) Subjects(ctx context.Context, id int) ([]TaughtSubject, error) {
	if _, err := svc.repo.GetTeacher(ctx, id); err != nil {
		return nil, err
	}
	return svc.repo.QuerySubjects(ctx, id)
}

func (svc *Service) AssignTutorship(ctx context.Context, teacherID, courseID int) error {
	return svc.repo.AssignTutorship(ctx, teacherID, courseID)
}

func (svc *Service) RemoveTutorship(ctx context.Context, teacherID int) error {
	return svc.repo.RemoveTutorship(ctx, teacherID)
}
