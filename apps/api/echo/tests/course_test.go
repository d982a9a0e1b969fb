package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/teacher"
	"github.com/trezcool/centro/tests"
)

func Test_courseApi_create(t *testing.T) {
	resetDB(t)

	rec := do(t, http.MethodPost, "/v1/courses", course.NewCourse{Code: " 1ESO ", Name: "Primero ESO"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c course.Course
	decode(t, rec, &c)
	assert.NotZero(t, c.ID)
	assert.Equal(t, "1ESO", c.Code)
	assert.False(t, c.TutorID.Valid)

	run(t, []httpTest{
		{
			name: "missing name", method: http.MethodPost, path: "/v1/courses", body: course.NewCourse{Code: "2ESO"},
			wantCode: http.StatusBadRequest, wantData: map[string]string{"name": "this field is required"},
		},
	})
}

func Test_courseApi_queryAndRetrieve(t *testing.T) {
	resetDB(t)

	marta := testutil.CreateTeacher(t, repos.Teacher, "Marta", "Ruiz", "66666666F", "Maths")
	second := testutil.CreateCourse(t, repos.Course, "2ESO", "Segundo ESO")
	first := testutil.CreateCourse(t, repos.Course, "1ESO", "Primero ESO")
	maths := testutil.CreateSubject(t, repos.Subject, "MAT1", "Matemáticas", 4, first.ID, marta.ID)
	testutil.CreateSubject(t, repos.Subject, "LEN1", "Lengua", 5, first.ID, marta.ID)

	rec := do(t, http.MethodGet, "/v1/courses", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []course.Course
	decode(t, rec, &got)
	if assert.Len(t, got, 2) {
		// courses without subjects are listed too
		assert.Equal(t, first.ID, got[0].ID)
		assert.Equal(t, 2, got[0].NumSubjects)
		assert.Equal(t, second.ID, got[1].ID)
		assert.Equal(t, 0, got[1].NumSubjects)
	}

	rec = do(t, http.MethodGet, fmt.Sprintf("/v1/courses/%d", first.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var d course.Detail
	decode(t, rec, &d)
	assert.Equal(t, 2, d.NumSubjects)
	if assert.Len(t, d.Subjects, 2) {
		assert.Equal(t, "Lengua", d.Subjects[0].Name)
		assert.Equal(t, maths.ID, d.Subjects[1].ID)
		assert.Equal(t, "Marta Ruiz", d.Subjects[1].Teacher)
	}

	run(t, []httpTest{
		{name: "not found", path: "/v1/courses/999", wantCode: http.StatusNotFound, wantData: httpErr{Error: course.ErrNotFound.Error()}},
	})
}

func Test_courseApi_tutor(t *testing.T) {
	resetDB(t)

	marta := testutil.CreateTeacher(t, repos.Teacher, "Marta", "Ruiz", "66666666F", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1ESO", "Primero ESO")
	tutor := fmt.Sprintf("/v1/courses/%d/tutor", c.ID)

	rec := do(t, http.MethodPut, tutor, course.Tutor{TeacherID: marta.ID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var d course.Detail
	decode(t, rec, &d)
	assert.Equal(t, marta.ID, int(d.TutorID.Int))
	assert.Equal(t, "Marta Ruiz", d.Tutor.String)

	run(t, []httpTest{
		{
			name: "unknown teacher", method: http.MethodPut, path: tutor, body: course.Tutor{TeacherID: 999},
			wantCode: http.StatusNotFound, wantData: httpErr{Error: teacher.ErrNotFound.Error()},
		},
		{
			name: "unknown course", method: http.MethodPut, path: "/v1/courses/999/tutor", body: course.Tutor{TeacherID: marta.ID},
			wantCode: http.StatusNotFound, wantData: httpErr{Error: course.ErrNotFound.Error()},
		},
		{name: "remove", method: http.MethodDelete, path: tutor, wantCode: http.StatusNoContent},
		{name: "remove (unknown course)", method: http.MethodDelete, path: "/v1/courses/999/tutor", wantCode: http.StatusNotFound},
	})

	rec = do(t, http.MethodGet, fmt.Sprintf("/v1/teachers/%d", marta.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var td teacher.Detail
	decode(t, rec, &td)
	assert.False(t, td.IsTutor())
}
