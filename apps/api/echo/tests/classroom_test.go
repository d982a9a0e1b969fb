package tests

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core/classroom"
	"github.com/trezcool/centro/tests"
)

func Test_classroomApi_create(t *testing.T) {
	resetDB(t)

	rec := do(t, http.MethodPost, "/v1/classrooms", classroom.NewClassroom{Code: "B2", Floor: 2, Desks: 25})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var c classroom.Classroom
	decode(t, rec, &c)
	assert.NotZero(t, c.ID)
	assert.Equal(t, 25, c.Desks)

	run(t, []httpTest{
		{
			name: "missing code", method: http.MethodPost, path: "/v1/classrooms", body: classroom.NewClassroom{Floor: 1},
			wantCode: http.StatusBadRequest, wantData: map[string]string{"code": "this field is required"},
		},
		{
			name: "negative desks", method: http.MethodPost, path: "/v1/classrooms", body: classroom.NewClassroom{Code: "B3", Desks: -1},
			wantCode: http.StatusBadRequest,
		},
	})
}

func Test_classroomApi_queryAndRetrieve(t *testing.T) {
	resetDB(t)

	marta := testutil.CreateTeacher(t, repos.Teacher, "Marta", "Ruiz", "66666666F", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1ESO", "Primero ESO")
	maths := testutil.CreateSubject(t, repos.Subject, "MAT1", "Matemáticas", 4, c.ID, marta.ID)
	upstairs := testutil.CreateClassroom(t, repos.Classroom, "B1", 2, 20)
	ground := testutil.CreateClassroom(t, repos.Classroom, "A1", 0, 30)
	slot := testutil.CreateSlot(t, repos.Schedule, maths.ID, ground.ID, 3, 10, "12:00", "13:00")

	rec := do(t, http.MethodGet, "/v1/classrooms", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []classroom.Classroom
	decode(t, rec, &got)
	if assert.Len(t, got, 2) {
		assert.Equal(t, ground.ID, got[0].ID)
		assert.Equal(t, 1, got[0].NumSlots)
		// classrooms without slots are listed too
		assert.Equal(t, upstairs.ID, got[1].ID)
		assert.Equal(t, 0, got[1].NumSlots)
	}

	rec = do(t, http.MethodGet, fmt.Sprintf("/v1/classrooms/%d", ground.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var d classroom.Detail
	decode(t, rec, &d)
	assert.Equal(t, 1, d.NumSlots)
	if assert.Len(t, d.Schedule, 1) {
		assert.Equal(t, slot.ID, d.Schedule[0].ID)
		assert.Equal(t, "MAT1", d.Schedule[0].SubjectCode)
		assert.Equal(t, "12:00", d.Schedule[0].Start)
	}

	run(t, []httpTest{
		{name: "empty schedule", path: fmt.Sprintf("/v1/classrooms/%d", upstairs.ID)},
		{name: "not found", path: "/v1/classrooms/999", wantCode: http.StatusNotFound, wantData: httpErr{Error: classroom.ErrNotFound.Error()}},
	})
}
