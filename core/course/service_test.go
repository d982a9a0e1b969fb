package course_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/teacher"
	"github.com/trezcool/centro/storage/database/inmem"
	"github.com/trezcool/centro/tests"
)

func setup() (*course.Service, testutil.Repos) {
	repos := testutil.NewInmemRepos(inmemdb.Open())
	return course.NewService(repos.Course), repos
}

func TestNewCourse_Validate(t *testing.T) {
	validate, _ := core.NewValidate()

	tests := []struct {
		name    string
		input   course.NewCourse
		wantErr bool
	}{
		{name: "valid", input: course.NewCourse{Code: " 1A ", Name: "Primero"}},
		{name: "missing code", input: course.NewCourse{Name: "Primero"}, wantErr: true},
		{name: "blank name", input: course.NewCourse{Code: "1A", Name: "  "}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.input.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "1A", tt.input.Code)
			}
		})
	}
}

func TestService_Get(t *testing.T) {
	svc, repos := setup()
	ctx := context.Background()

	c, err := svc.Create(ctx, course.NewCourse{Code: "1A", Name: "Primero"})
	require.NoError(t, err)
	tchr := testutil.CreateTeacher(t, repos.Teacher, "Luis", "Pérez", "T1", "Maths")
	testutil.CreateSubject(t, repos.Subject, "MAT1", "Maths", 4, c.ID, tchr.ID)
	testutil.CreateSubject(t, repos.Subject, "ART1", "Art", 2, c.ID, tchr.ID)
	require.NoError(t, svc.AssignTutor(ctx, c.ID, tchr.ID))

	got, err := svc.Get(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, "Primero", got.Name)
	assert.Equal(t, "Luis Pérez", got.Tutor.String)
	assert.Equal(t, 2, got.NumSubjects)
	require.Len(t, got.Subjects, 2)
	assert.Equal(t, "Art", got.Subjects[0].Name)
	assert.Equal(t, "Luis Pérez", got.Subjects[0].Teacher)

	_, err = svc.Get(ctx, 9999)
	assert.True(t, errors.Is(err, course.ErrNotFound))
}

func TestService_QueryAll(t *testing.T) {
	svc, _ := setup()
	ctx := context.Background()

	for _, nc := range []course.NewCourse{{Code: "2B", Name: "Segundo B"}, {Code: "1A", Name: "Primero A"}} {
		_, err := svc.Create(ctx, nc)
		require.NoError(t, err)
	}
	courses, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "1A", courses[0].Code)
	assert.Equal(t, "2B", courses[1].Code)
	assert.False(t, courses[0].Tutor.Valid)
	assert.Zero(t, courses[0].NumSubjects)
}

func TestService_AssignTutor(t *testing.T) {
	svc, repos := setup()
	ctx := context.Background()
	luis := testutil.CreateTeacher(t, repos.Teacher, "Luis", "Pérez", "T1", "Maths")
	eva := testutil.CreateTeacher(t, repos.Teacher, "Eva", "Ruiz", "T2", "Art")
	c1 := testutil.CreateCourse(t, repos.Course, "1A", "Primero")
	c2 := testutil.CreateCourse(t, repos.Course, "2A", "Segundo")

	require.NoError(t, svc.AssignTutor(ctx, c1.ID, luis.ID))
	require.NoError(t, svc.AssignTutor(ctx, c2.ID, luis.ID))

	first, err := svc.Get(ctx, c1.ID)
	require.NoError(t, err)
	assert.False(t, first.TutorID.Valid, "previous tutorship must be released")

	// replacing the tutor of a course
	require.NoError(t, svc.AssignTutor(ctx, c2.ID, eva.ID))
	second, err := svc.Get(ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, eva.ID, second.TutorID.Int)

	tchr, err := repos.Teacher.GetTeacher(ctx, luis.ID)
	require.NoError(t, err)
	assert.False(t, tchr.IsTutor())

	require.NoError(t, svc.RemoveTutor(ctx, c2.ID))
	second, err = svc.Get(ctx, c2.ID)
	require.NoError(t, err)
	assert.False(t, second.TutorID.Valid)

	assert.True(t, errors.Is(svc.AssignTutor(ctx, c1.ID, 9999), teacher.ErrNotFound))
	assert.True(t, errors.Is(svc.AssignTutor(ctx, 9999, eva.ID), course.ErrNotFound))
	assert.True(t, errors.Is(svc.RemoveTutor(ctx, 9999), course.ErrNotFound))
}
