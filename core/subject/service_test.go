package subject_test

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/storage/database/inmem"
	"github.com/trezcool/centro/tests"
)

func setup() (*subject.Service, testutil.Repos) {
	repos := testutil.NewInmemRepos(inmemdb.Open())
	return subject.NewService(repos.Subject), repos
}

func TestService_Create(t *testing.T) {
	svc, repos := setup()
	ctx := context.Background()
	tchr := testutil.CreateTeacher(t, repos.Teacher, "Luis", "Pérez", "T1", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1A", "Primero")

	tests := []struct {
		name      string
		input     subject.NewSubject
		wantField string
	}{
		{name: "valid", input: subject.NewSubject{Code: "MAT1", Name: "Maths", WeeklyHours: 4, CourseID: c.ID, TeacherID: tchr.ID}},
		{name: "unknown course", input: subject.NewSubject{Code: "X", Name: "X", CourseID: 9999, TeacherID: tchr.ID}, wantField: "course_id"},
		{name: "unknown teacher", input: subject.NewSubject{Code: "X", Name: "X", CourseID: c.ID, TeacherID: 9999}, wantField: "teacher_id"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := svc.Create(ctx, tt.input)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, "Primero", s.Course)
				assert.Equal(t, "Luis Pérez", s.Teacher)
				return
			}
			var verr *core.ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Equal(t, tt.wantField, verr.Fields[0].Field)
		})
	}
}

func TestService_Get(t *testing.T) {
	svc, repos := setup()
	ctx := context.Background()
	tchr := testutil.CreateTeacher(t, repos.Teacher, "Luis", "Pérez", "T1", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1A", "Primero")
	subj := testutil.CreateSubject(t, repos.Subject, "MAT1", "Maths", 4, c.ID, tchr.ID)
	s := testutil.CreateStudent(t, repos.Student, "Ana", "Alba", "1", testutil.Date(2008, time.January, 1))
	testutil.Enroll(t, repos.Enrollment, s.ID, subj.ID)
	room := testutil.CreateClassroom(t, repos.Classroom, "A1", 1, 30)
	testutil.CreateSlot(t, repos.Schedule, subj.ID, room.ID, 2, 9, "10:00", "11:00")

	got, err := svc.Get(ctx, subj.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primero", got.Course)
	assert.Equal(t, "Luis Pérez", got.Teacher)
	require.Len(t, got.Students, 1)
	assert.Equal(t, s.ID, got.Students[0].StudentID)
	require.Len(t, got.Schedule, 1)
	assert.Equal(t, "A1", got.Schedule[0].Classroom)

	_, err = svc.Get(ctx, 9999)
	assert.True(t, errors.Is(err, subject.ErrNotFound))
}

func TestService_QueryAll(t *testing.T) {
	svc, repos := setup()
	tchr := testutil.CreateTeacher(t, repos.Teacher, "Luis", "Pérez", "T1", "Maths")
	c2 := testutil.CreateCourse(t, repos.Course, "2A", "Segundo")
	c1 := testutil.CreateCourse(t, repos.Course, "1A", "Primero")
	physics := testutil.CreateSubject(t, repos.Subject, "PHY2", "Physics", 3, c2.ID, tchr.ID)
	maths := testutil.CreateSubject(t, repos.Subject, "MAT1", "Maths", 4, c1.ID, tchr.ID)
	art := testutil.CreateSubject(t, repos.Subject, "ART1", "Art", 2, c1.ID, tchr.ID)

	subjects, err := svc.QueryAll(context.Background())
	require.NoError(t, err)
	ids := make([]int, 0, len(subjects))
	for _, s := range subjects {
		ids = append(ids, s.ID)
	}
	assert.Equal(t, []int{art.ID, maths.ID, physics.ID}, ids)
}
