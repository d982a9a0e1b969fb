package classroom

import (
	"context"

	"github.com/trezcool/centro/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("classroom not found")
)

type (
	Repository interface {
		CreateClassroom(ctx context.Context, nc NewClassroom) (Classroom, error)
		GetClassroom(ctx context.Context, id int) (Classroom, error)
		// QueryClassrooms returns every classroom ordered by floor, code, including
		// the ones without schedule slots.
		QueryClassrooms(ctx context.Context) ([]Classroom, error)
		// QuerySchedule returns the classroom's slots ordered by month, weekday, start.
		QuerySchedule(ctx context.Context, classroomID int) ([]Slot, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, nc NewClassroom) (Classroom, error) {
	return svc.repo.CreateClassroom(ctx, nc)
}

func (svc *Service) Get(ctx context.Context, id int) (Detail, error) {
	c, err := svc.repo.GetClassroom(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	slots, err := svc.repo.QuerySchedule(ctx, id)
	if err != nil {
		return Detail{}, err
	}
	c.NumSlots = len(slots)
	return Detail{Classroom: c, Schedule: slots}, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Classroom, error) {
	return svc.repo.QueryClassrooms(ctx)
}
