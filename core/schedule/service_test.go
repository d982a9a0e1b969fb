package schedule_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/schedule"
	"github.com/trezcool/centro/storage/database/inmem"
	"github.com/trezcool/centro/tests"
)

func TestNewSlot_Validate(t *testing.T) {
	validate, _ := core.NewValidate()
	valid := schedule.NewSlot{SubjectID: 1, ClassroomID: 1, Weekday: 1, Month: 9, Start: "08:00", End: "09:00"}

	tests := []struct {
		name    string
		modify  func(ns *schedule.NewSlot)
		wantErr bool
	}{
		{name: "valid", modify: func(ns *schedule.NewSlot) {}},
		{name: "sunday", modify: func(ns *schedule.NewSlot) { ns.Weekday = 7 }},
		{name: "weekday too big", modify: func(ns *schedule.NewSlot) { ns.Weekday = 8 }, wantErr: true},
		{name: "no weekday", modify: func(ns *schedule.NewSlot) { ns.Weekday = 0 }, wantErr: true},
		{name: "month too big", modify: func(ns *schedule.NewSlot) { ns.Month = 13 }, wantErr: true},
		{name: "bad start", modify: func(ns *schedule.NewSlot) { ns.Start = "8h" }, wantErr: true},
		{name: "end before start", modify: func(ns *schedule.NewSlot) { ns.End = "07:59" }, wantErr: true},
		{name: "empty slot", modify: func(ns *schedule.NewSlot) { ns.End = ns.Start }, wantErr: true},
		{name: "missing subject", modify: func(ns *schedule.NewSlot) { ns.SubjectID = 0 }, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ns := valid
			tt.modify(&ns)
			err := ns.Validate(validate)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestService(t *testing.T) {
	repos := testutil.NewInmemRepos(inmemdb.Open())
	svc := schedule.NewService(repos.Schedule)
	ctx := context.Background()

	tchr := testutil.CreateTeacher(t, repos.Teacher, "Luis", "Pérez", "T1", "Maths")
	c := testutil.CreateCourse(t, repos.Course, "1A", "Primero")
	subj := testutil.CreateSubject(t, repos.Subject, "MAT1", "Maths", 4, c.ID, tchr.ID)
	room := testutil.CreateClassroom(t, repos.Classroom, "A1", 2, 30)

	afternoon, err := svc.Create(ctx, schedule.NewSlot{SubjectID: subj.ID, ClassroomID: room.ID, Weekday: 1, Month: 9, Start: "15:00", End: "16:00"})
	require.NoError(t, err)
	morning, err := svc.Create(ctx, schedule.NewSlot{SubjectID: subj.ID, ClassroomID: room.ID, Weekday: 1, Month: 9, Start: "08:00", End: "09:00"})
	require.NoError(t, err)
	assert.Equal(t, "Primero", morning.Course)
	assert.Equal(t, 2, morning.Floor)

	_, err = svc.Create(ctx, schedule.NewSlot{SubjectID: 9999, ClassroomID: room.ID, Weekday: 1, Month: 9, Start: "08:00", End: "09:00"})
	var verr *core.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "subject_id", verr.Fields[0].Field)
	_, err = svc.Create(ctx, schedule.NewSlot{SubjectID: subj.ID, ClassroomID: 9999, Weekday: 1, Month: 9, Start: "08:00", End: "09:00"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "classroom_id", verr.Fields[0].Field)

	slots, err := svc.QueryAll(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, morning.ID, slots[0].ID)
	assert.Equal(t, afternoon.ID, slots[1].ID)

	require.NoError(t, svc.Delete(ctx, morning.ID))
	assert.True(t, errors.Is(svc.Delete(ctx, morning.ID), schedule.ErrNotFound))
}
