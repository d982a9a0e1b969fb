package person_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/storage/database/inmem"
	"github.com/trezcool/centro/tests"
)

func TestService_Create(t *testing.T) {
	svc := person.NewService(inmemdb.NewPersonRepository(inmemdb.Open()))
	ctx := context.Background()

	p, err := svc.Create(ctx, testutil.NewPerson("Ana", "García", "111A", testutil.Date(2000, time.May, 4)))
	require.NoError(t, err)
	assert.NotZero(t, p.ID)

	got, err := svc.Get(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, p, got)

	_, err = svc.Create(ctx, testutil.NewPerson("Eva", "Ruiz", "111a", testutil.Date(1990, time.May, 4)))
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "dni", verr.Fields[0].Field)
	assert.True(t, errors.Is(err, person.ErrDNIExists))
	assert.True(t, core.IsConflict(err))

	_, err = svc.Create(ctx, person.NewPerson{Name: "X", Surname: "Y", DNI: "2", BirthDate: "nope"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "birth_date", verr.Fields[0].Field)
}

func TestService_Get(t *testing.T) {
	svc := person.NewService(inmemdb.NewPersonRepository(inmemdb.Open()))
	_, err := svc.Get(context.Background(), 42)
	assert.True(t, errors.Is(err, person.ErrNotFound))
	assert.True(t, core.IsNotFound(err))
}
