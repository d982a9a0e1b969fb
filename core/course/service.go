package course

import (
	"context"

	"github.com/trezcool/centro/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("course not found")
)

type (
	Repository interface {
		CreateCourse(ctx context.Context, nc NewCourse) (Course, error)
		GetCourse(ctx context.Context, id int) (Course, error)
		// QueryCourses returns all courses ordered by code, with their tutor and subject count.
		QueryCourses(ctx context.Context) ([]Course, error)
		// QuerySubjects returns the course's subjects ordered by name.
		QuerySubjects(ctx context.Context, courseID int) ([]CourseSubject, error)
		// AssignTutor sets the tutor of the course, releasing any other course the
		// teacher was tutoring.
		AssignTutor(ctx context.Context, courseID, teacherID int) error
		RemoveTutor(ctx context.Context, courseID int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewCourse) (Course, error) {
	return svc.repo.CreateCourse(ctx, nc)
}

func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	c, err := svc.repo.GetCourse(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	subjects, err := svc.repo.QuerySubjects(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	c.NumSubjects = len(subjects)
	return Detail{Course: c, Subjects: subjects}, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Course, error) {
	return svc.repo.QueryCourses(ctx)
}

func (svc *Service) AssignTutor(ctx context.Context, courseID, teacherID int) error {
	return svc.repo.AssignTutor(ctx, courseID, teacherID)
}

func (svc *Service) RemoveTutor(ctx context.Context, courseID int) error {
	return svc.repo.RemoveTutor(ctx, courseID)
}
