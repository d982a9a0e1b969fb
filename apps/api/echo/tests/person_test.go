package tests

import (
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/tests"
)

func Test_personApi_create(t *testing.T) {
	resetDB(t)

	valid := testutil.NewPerson("Ana", "Pérez López", " 12345678z ", testutil.Date(2001, time.May, 20))

	rec := do(t, http.MethodPost, "/v1/persons", valid)
	if assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String()) {
		var p person.Person
		decode(t, rec, &p)
		assert.NotZero(t, p.ID)
		assert.Equal(t, "12345678Z", p.DNI)
		assert.Equal(t, "Pérez López", p.Surname)
		assert.True(t, p.BirthDate.Equal(testutil.Date(2001, time.May, 20)))
	}

	blank := valid
	blank.Name = "   "
	badDate := valid
	badDate.DNI = "99999999R"
	badDate.BirthDate = "2001-13-01"

	run(t, []httpTest{
		{
			name: "duplicate dni", method: http.MethodPost, path: "/v1/persons", body: valid,
			wantCode: http.StatusConflict, wantData: map[string]string{"dni": person.ErrDNIExists.Error()},
		},
		{
			name: "blank name", method: http.MethodPost, path: "/v1/persons", body: blank,
			wantCode: http.StatusBadRequest, wantData: map[string]string{"name": "this field is required"},
		},
		{
			name: "bad birth date", method: http.MethodPost, path: "/v1/persons", body: badDate,
			wantCode: http.StatusBadRequest, wantData: map[string]string{"birth_date": "must be a date formatted as YYYY-MM-DD"},
		},
		{
			name: "malformed body", method: http.MethodPost, path: "/v1/persons", body: `{"name": `,
			wantCode: http.StatusBadRequest,
		},
	})
}

func Test_personApi_retrieve(t *testing.T) {
	resetDB(t)

	s := testutil.CreateStudent(t, repos.Student, "Ana", "Pérez", "11111111A", testutil.Date(2001, time.May, 20))

	run(t, []httpTest{
		{name: "found", path: "/v1/persons/" + strconv.Itoa(s.Person.ID), wantData: s.Person},
		{name: "not found", path: "/v1/persons/999", wantCode: http.StatusNotFound, wantData: httpErr{Error: "person not found"}},
		{name: "malformed id", path: "/v1/persons/abc", wantCode: http.StatusNotFound, wantData: httpErr{Error: "not found"}},
	})
}
