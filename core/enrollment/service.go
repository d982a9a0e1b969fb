package enrollment

import (
	"context"

	"github.com/trezcool/centro/core"
)

var (
	// errors
	ErrNotFound = core.NewNotFoundError("enrollment not found")
	ErrExists   = core.NewConflictError("the student is already enrolled in this subject")
)

type (
	// Repository stores the enrollment ledger.
	// Enroll fails with student.ErrNotFound or subject.ErrNotFound when a reference
	// does not resolve and with ErrExists when the pair is already enrolled.
	Repository interface {
		CreateEnrollment(ctx context.Context, e Enrollment) (Enrollment, error)
		GetEnrollment(ctx context.Context, id int) (Enrollment, error)
		UpdateGrade(ctx context.Context, id int, grade float64) error
		// AppendIncident appends text to the incident log in a single store operation.
		AppendIncident(ctx context.Context, id int, text string) error
		DeleteEnrollment(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

var errInvalidGrade = core.NewValidationError(nil, core.FieldError{Field: "grade", Error: "must be between 0 and 10 with at most 2 decimals"})

func (svc *Service) Enroll(ctx context.Context, ne NewEnrollment) (Enrollment, error) {
	if ne.Grade != nil && !ValidGrade(*ne.Grade) {
		return Enrollment{}, errInvalidGrade
	}
	return svc.repo.CreateEnrollment(ctx, ne.Enrollment())
}

func (svc *Service) Get(ctx context.Context, id int) (Enrollment, error) {
	return svc.repo.GetEnrollment(ctx, id)
}

// UpdateGrade overwrites the grade. No history is kept.
func (svc *Service) UpdateGrade(ctx context.Context, id int, grade float64) error {
	if !ValidGrade(grade) {
		return errInvalidGrade
	}
	return svc.repo.UpdateGrade(ctx, id, grade)
}

func (svc *Service) AppendIncident(ctx context.Context, id int, text string) error {
	text = core.CleanString(text)
	if text == "" {
		return core.NewValidationError(nil, core.FieldError{Field: "text", Error: "this field cannot be blank"})
	}
	return svc.repo.AppendIncident(ctx, id, text)
}

// Remove deletes the enrollment. Removing it again gives ErrNotFound.
func (svc *Service) Remove(ctx context.Context, id int) error {
	return svc.repo.DeleteEnrollment(ctx, id)
}
