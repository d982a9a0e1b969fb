package person

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core"
)

func TestAge(t *testing.T) {
	date := func(y int, m time.Month, d int) time.Time { return time.Date(y, m, d, 0, 0, 0, 0, time.UTC) }
	now := date(2024, time.June, 15)

	tests := []struct {
		name  string
		birth time.Time
		want  int
	}{
		{name: "birthday passed", birth: date(2000, time.January, 1), want: 24},
		{name: "birthday today", birth: date(2000, time.June, 15), want: 24},
		{name: "birthday tomorrow", birth: date(2000, time.June, 16), want: 23},
		{name: "birthday later this year", birth: date(2000, time.December, 31), want: 23},
		{name: "born today", birth: now, want: 0},
		{name: "born in the future", birth: date(2030, time.January, 1), want: 0},
		{name: "unknown", birth: time.Time{}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Age(tt.birth, now))
		})
	}
}

func TestNames(t *testing.T) {
	p := Person{Name: "Ana", Surname: "García López", DNI: "12345678Z"}
	assert.Equal(t, "Ana García López", FullName(p))
	assert.Equal(t, "Ana García López (12345678Z)", Display(p))
}

func TestNewPerson_Validate(t *testing.T) {
	validate, _ := core.NewValidate()

	np := NewPerson{
		Name:      "  Ana ",
		Surname:   "García",
		DNI:       " 12345678z ",
		BirthDate: "2001-02-03",
	}
	require.NoError(t, np.Validate(validate))
	assert.Equal(t, "Ana", np.Name)
	assert.Equal(t, "12345678Z", np.DNI)

	p, err := np.Person()
	require.NoError(t, err)
	assert.Equal(t, time.Date(2001, time.February, 3, 0, 0, 0, 0, time.UTC), p.BirthDate)

	bad := NewPerson{Name: "Ana", Surname: "García", DNI: "1", BirthDate: "03-02-2001"}
	assert.Error(t, bad.Validate(validate))
	_, err = bad.Person()
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "birth_date", verr.Fields[0].Field)
}
