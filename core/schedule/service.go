package schedule

import (
	"context"

	"github.com/pkg/errors"

	"github.com/trezcool/centro/core"
)

var (
	// errors
	ErrNotFound         = core.NewNotFoundError("schedule slot not found")
	ErrUnknownSubject   = errors.New("subject does not exist")
	ErrUnknownClassroom = errors.New("classroom does not exist")
)

type (
	Repository interface {
		// CreateSlot fails with ErrUnknownSubject or ErrUnknownClassroom when a reference does not resolve.
		CreateSlot(ctx context.Context, ns NewSlot) (Slot, error)
		// QuerySlots returns all slots ordered by month, weekday, start.
		QuerySlots(ctx context.Context) ([]Slot, error)
		DeleteSlot(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, ns NewSlot) (Slot, error) {
	s, err := svc.repo.CreateSlot(ctx, ns)
	switch {
	case errors.Is(err, ErrUnknownSubject):
		return Slot{}, core.NewValidationError(err, core.FieldError{Field: "subject_id", Error: err.Error()})
	case errors.Is(err, ErrUnknownClassroom):
		return Slot{}, core.NewValidationError(err, core.FieldError{Field: "classroom_id", Error: err.Error()})
	case err != nil:
		return Slot{}, err
	}
	return s, nil
}

func (svc *Service) QueryAll(ctx context.Context) ([]Slot, error) {
	return svc.repo.QuerySlots(ctx)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteSlot(ctx, id)
}
