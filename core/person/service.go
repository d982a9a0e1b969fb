package person

import (
	"context"
	"strings"

	"github.com/pkg/errors"

	"github.com/trezcool/centro/core"
)

var (
	// errors
	ErrNotFound  = core.NewNotFoundError("person not found")
	ErrDNIExists = core.NewConflictError("a person with this national ID already exists")
)

type (
	Repository interface {
		// CreatePerson fails with ErrDNIExists when the national ID is taken.
		CreatePerson(ctx context.Context, p Person) (Person, error)
		GetPerson(ctx context.Context, id int) (Person, error)
	}

	Service struct {
		repo Repository
	}
)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Create(ctx context.Context, np NewPerson) (Person, error) {
	p, err := np.Person()
	if err != nil {
		return Person{}, err
	}
	p, err = svc.repo.CreatePerson(ctx, p)
	if err != nil {
		return Person{}, CheckDNIConflict(err)
	}
	return p, nil
}

func (svc *Service) Get(ctx context.Context, id int) (Person, error) {
	return svc.repo.GetPerson(ctx, id)
}

// CheckDNIConflict turns ErrDNIExists into a ValidationError on the `dni` field
// (still matching core.ErrConflict). Other errors are returned as they are.
func CheckDNIConflict(err error) error {
	if errors.Is(err, ErrDNIExists) {
		return core.NewValidationError(ErrDNIExists, core.FieldError{Field: "dni", Error: ErrDNIExists.Error()})
	}
	return err
}

func normalizeDNI(dni string) string {
	return strings.ToUpper(core.CleanString(dni))
}
