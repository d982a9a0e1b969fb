package tests

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/tests"
)

func Test_subjectApi_create(t *testing.T) {
	resetDB(t)

	marta := testutil.CreateTeacher(t, repos.Teacher, "Marta", "Ruiz", "66666666F", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1ESO", "Primero ESO")
	ns := subject.NewSubject{Code: "MAT1", Name: "Matemáticas", WeeklyHours: 4, CourseID: c.ID, TeacherID: marta.ID}

	rec := do(t, http.MethodPost, "/v1/subjects", ns)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	var s subject.Subject
	decode(t, rec, &s)
	assert.NotZero(t, s.ID)
	assert.Equal(t, "Primero ESO", s.Course)
	assert.Equal(t, "Marta Ruiz", s.Teacher)

	unknownCourse := ns
	unknownCourse.CourseID = 999
	unknownTeacher := ns
	unknownTeacher.TeacherID = 999
	tooLong := ns
	tooLong.WeeklyHours = 41

	run(t, []httpTest{
		{
			name: "unknown course", method: http.MethodPost, path: "/v1/subjects", body: unknownCourse,
			wantCode: http.StatusBadRequest, wantData: map[string]string{"course_id": subject.ErrUnknownCourse.Error()},
		},
		{
			name: "unknown teacher", method: http.MethodPost, path: "/v1/subjects", body: unknownTeacher,
			wantCode: http.StatusBadRequest, wantData: map[string]string{"teacher_id": subject.ErrUnknownTeacher.Error()},
		},
		{name: "too many hours", method: http.MethodPost, path: "/v1/subjects", body: tooLong, wantCode: http.StatusBadRequest},
	})
}

func Test_subjectApi_queryAndRetrieve(t *testing.T) {
	resetDB(t)

	marta := testutil.CreateTeacher(t, repos.Teacher, "Marta", "Ruiz", "66666666F", "Maths")
	first := testutil.CreateCourse(t, repos.Course, "1ESO", "Primero ESO")
	second := testutil.CreateCourse(t, repos.Course, "2ESO", "Segundo ESO")
	maths2 := testutil.CreateSubject(t, repos.Subject, "MAT2", "Matemáticas", 4, second.ID, marta.ID)
	maths1 := testutil.CreateSubject(t, repos.Subject, "MAT1", "Matemáticas", 4, first.ID, marta.ID)
	lengua1 := testutil.CreateSubject(t, repos.Subject, "LEN1", "Lengua", 5, first.ID, marta.ID)
	room := testutil.CreateClassroom(t, repos.Classroom, "A1", 1, 30)
	late := testutil.CreateSlot(t, repos.Schedule, maths1.ID, room.ID, 1, 9, "10:00", "11:00")
	early := testutil.CreateSlot(t, repos.Schedule, maths1.ID, room.ID, 1, 9, "08:30", "09:30")
	ana := testutil.CreateStudent(t, repos.Student, "Ana", "Pérez", "11111111A", testutil.Date(2001, time.May, 20))
	testutil.Enroll(t, repos.Enrollment, ana.ID, maths1.ID)

	rec := do(t, http.MethodGet, "/v1/subjects", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got []subject.Subject
	decode(t, rec, &got)
	ids := make([]int, len(got))
	for i, s := range got {
		ids[i] = s.ID
	}
	assert.Equal(t, []int{lengua1.ID, maths1.ID, maths2.ID}, ids)

	rec = do(t, http.MethodGet, fmt.Sprintf("/v1/subjects/%d", maths1.ID), nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var d subject.Detail
	decode(t, rec, &d)
	if assert.Len(t, d.Students, 1) {
		assert.Equal(t, ana.ID, d.Students[0].StudentID)
		assert.Equal(t, "11111111A", d.Students[0].DNI)
	}
	if assert.Len(t, d.Schedule, 2) {
		assert.Equal(t, early.ID, d.Schedule[0].ID)
		assert.Equal(t, late.ID, d.Schedule[1].ID)
		assert.Equal(t, "A1", d.Schedule[0].Classroom)
	}

	run(t, []httpTest{
		{name: "not found", path: "/v1/subjects/999", wantCode: http.StatusNotFound, wantData: httpErr{Error: subject.ErrNotFound.Error()}},
	})
}
