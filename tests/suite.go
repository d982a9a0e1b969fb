package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/classroom"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/enrollment"
	"github.com/trezcool/centro/core/person"
	"github.com/trezcool/centro/core/schedule"
	"github.com/trezcool/centro/core/student"
	"github.com/trezcool/centro/core/subject"
	"github.com/trezcool/centro/core/teacher"
)

// RunRepositorySuite checks the behaviour every store must share.
// newRepos must return repositories over an empty store.
func RunRepositorySuite(t *testing.T, newRepos func(t *testing.T) Repos) {
	tests := []struct {
		name string
		run  func(t *testing.T, r Repos)
	}{
		{name: "person dni is unique", run: testPersonDNI},
		{name: "students", run: testStudents},
		{name: "student delete", run: testStudentDelete},
		{name: "tutorship", run: testTutorship},
		{name: "courses", run: testCourses},
		{name: "subjects", run: testSubjects},
		{name: "classrooms", run: testClassrooms},
		{name: "schedule", run: testSchedule},
		{name: "enrollment ledger", run: testEnrollments},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.run(t, newRepos(t))
		})
	}
}

func testPersonDNI(t *testing.T, r Repos) {
	ctx := context.Background()
	p, err := r.Person.CreatePerson(ctx, toPerson(t, NewPerson("Ana", "García", "111A", Date(2000, time.May, 4))))
	require.NoError(t, err)

	got, err := r.Person.GetPerson(ctx, p.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ana", got.Name)
	assert.Equal(t, "111A", got.DNI)
	assert.True(t, Date(2000, time.May, 4).Equal(got.BirthDate.UTC()))

	_, err = r.Person.CreatePerson(ctx, toPerson(t, NewPerson("Other", "Person", "111A", Date(1999, time.May, 4))))
	assert.True(t, errors.Is(err, person.ErrDNIExists))

	// also through the role tables
	_, err = r.Student.CreateStudent(ctx, toPerson(t, NewPerson("Other", "Person", "111A", Date(1999, time.May, 4))))
	assert.True(t, errors.Is(err, person.ErrDNIExists))
	_, err = r.Teacher.CreateTeacher(ctx, toPerson(t, NewPerson("Other", "Person", "111A", Date(1999, time.May, 4))), "")
	assert.True(t, errors.Is(err, person.ErrDNIExists))

	_, err = r.Person.GetPerson(ctx, 9999)
	assert.True(t, errors.Is(err, person.ErrNotFound))
}

func testStudents(t *testing.T, r Repos) {
	ctx := context.Background()
	zoe := CreateStudent(t, r.Student, "Zoe", "Alba", "1", Date(2005, time.January, 1))
	ana := CreateStudent(t, r.Student, "Ana", "Alba", "2", Date(2006, time.January, 1))
	bea := CreateStudent(t, r.Student, "Bea", "Costa", "3", Date(2007, time.January, 1))

	got, err := r.Student.GetStudent(ctx, zoe.ID)
	require.NoError(t, err)
	assert.Equal(t, zoe.ID, got.ID)
	assert.Equal(t, zoe.Person.ID, got.Person.ID)
	assert.Equal(t, "Zoe", got.Name)

	_, err = r.Student.GetStudent(ctx, 9999)
	assert.True(t, errors.Is(err, student.ErrNotFound))

	students, err := r.Student.QueryStudents(ctx)
	require.NoError(t, err)
	assert.Equal(t, []int{ana.ID, zoe.ID, bea.ID}, studentIDs(students))

	tchr := CreateTeacher(t, r.Teacher, "Luis", "Pérez", "T1", "Maths")
	c1 := CreateCourse(t, r.Course, "1A", "Primero")
	c2 := CreateCourse(t, r.Course, "2A", "Segundo")
	maths := CreateSubject(t, r.Subject, "MAT2", "Maths", 4, c2.ID, tchr.ID)
	art := CreateSubject(t, r.Subject, "ART1", "Art", 2, c1.ID, tchr.ID)
	bio := CreateSubject(t, r.Subject, "BIO1", "Biology", 3, c1.ID, tchr.ID)

	Enroll(t, r.Enrollment, zoe.ID, maths.ID)
	e := Enroll(t, r.Enrollment, zoe.ID, bio.ID)
	require.NoError(t, r.Enrollment.UpdateGrade(ctx, e.ID, 7.5))

	enrollments, err := r.Student.QueryEnrollments(ctx, zoe.ID)
	require.NoError(t, err)
	require.Len(t, enrollments, 2)
	assert.Equal(t, "Biology", enrollments[0].Subject)
	assert.Equal(t, "Primero", enrollments[0].Course)
	assert.Equal(t, "Luis Pérez", enrollments[0].Teacher)
	assert.Equal(t, 3, enrollments[0].WeeklyHours)
	assert.Equal(t, 7.5, enrollments[0].Grade.Float64)
	assert.False(t, enrollments[1].Grade.Valid)
	assert.Equal(t, "Maths", enrollments[1].Subject)

	eligible, err := r.Student.QueryEligibleSubjects(ctx, zoe.ID)
	require.NoError(t, err)
	require.Len(t, eligible, 1)
	assert.Equal(t, art.ID, eligible[0].ID)
	assert.Equal(t, "Primero", eligible[0].Course)

	eligible, err = r.Student.QueryEligibleSubjects(ctx, ana.ID)
	require.NoError(t, err)
	assert.Len(t, eligible, 3)
}

func testStudentDelete(t *testing.T, r Repos) {
	ctx := context.Background()
	s := CreateStudent(t, r.Student, "Ana", "Alba", "1", Date(2005, time.January, 1))
	tchr := CreateTeacher(t, r.Teacher, "Luis", "Pérez", "T1", "Maths")
	c := CreateCourse(t, r.Course, "1A", "Primero")
	subj := CreateSubject(t, r.Subject, "MAT1", "Maths", 4, c.ID, tchr.ID)
	e := Enroll(t, r.Enrollment, s.ID, subj.ID)

	require.NoError(t, r.Student.DeleteStudent(ctx, s.ID))

	_, err := r.Student.GetStudent(ctx, s.ID)
	assert.True(t, errors.Is(err, student.ErrNotFound))
	_, err = r.Enrollment.GetEnrollment(ctx, e.ID)
	assert.True(t, errors.Is(err, enrollment.ErrNotFound))
	_, err = r.Person.GetPerson(ctx, s.Person.ID)
	assert.True(t, errors.Is(err, person.ErrNotFound))

	err = r.Student.DeleteStudent(ctx, s.ID)
	assert.True(t, errors.Is(err, student.ErrNotFound))
}

func testTutorship(t *testing.T, r Repos) {
	ctx := context.Background()
	luis := CreateTeacher(t, r.Teacher, "Luis", "Pérez", "T1", "Maths")
	eva := CreateTeacher(t, r.Teacher, "Eva", "Ruiz", "T2", "Art")
	c1 := CreateCourse(t, r.Course, "1A", "Primero")
	c2 := CreateCourse(t, r.Course, "2A", "Segundo")

	got, err := r.Teacher.GetTeacher(ctx, luis.ID)
	require.NoError(t, err)
	assert.False(t, got.IsTutor())

	require.NoError(t, r.Teacher.AssignTutorship(ctx, luis.ID, c1.ID))
	got, err = r.Teacher.GetTeacher(ctx, luis.ID)
	require.NoError(t, err)
	assert.True(t, got.IsTutor())
	assert.Equal(t, c1.ID, got.TutoredCourseID.Int)
	assert.Equal(t, "Primero", got.TutoredCourse.String)

	// a new tutorship releases the previous one
	require.NoError(t, r.Teacher.AssignTutorship(ctx, luis.ID, c2.ID))
	first, err := r.Course.GetCourse(ctx, c1.ID)
	require.NoError(t, err)
	assert.False(t, first.TutorID.Valid)
	second, err := r.Course.GetCourse(ctx, c2.ID)
	require.NoError(t, err)
	assert.Equal(t, luis.ID, second.TutorID.Int)
	assert.Equal(t, "Luis Pérez", second.Tutor.String)

	// another teacher replaces the course's tutor
	require.NoError(t, r.Course.AssignTutor(ctx, c2.ID, eva.ID))
	got, err = r.Teacher.GetTeacher(ctx, luis.ID)
	require.NoError(t, err)
	assert.False(t, got.IsTutor())

	teachers, err := r.Teacher.QueryTeachers(ctx)
	require.NoError(t, err)
	require.Len(t, teachers, 2)
	assert.Equal(t, luis.ID, teachers[0].ID)
	assert.Equal(t, "Segundo", teachers[1].TutoredCourse.String)

	require.NoError(t, r.Teacher.RemoveTutorship(ctx, eva.ID))
	second, err = r.Course.GetCourse(ctx, c2.ID)
	require.NoError(t, err)
	assert.False(t, second.TutorID.Valid)
	// nothing to release
	require.NoError(t, r.Teacher.RemoveTutorship(ctx, eva.ID))

	err = r.Teacher.AssignTutorship(ctx, 9999, c1.ID)
	assert.True(t, errors.Is(err, teacher.ErrNotFound))
	err = r.Teacher.AssignTutorship(ctx, luis.ID, 9999)
	assert.True(t, errors.Is(err, course.ErrNotFound))
	err = r.Teacher.RemoveTutorship(ctx, 9999)
	assert.True(t, errors.Is(err, teacher.ErrNotFound))
}

func testCourses(t *testing.T, r Repos) {
	ctx := context.Background()
	tchr := CreateTeacher(t, r.Teacher, "Luis", "Pérez", "T1", "Maths")
	c2 := CreateCourse(t, r.Course, "2A", "Segundo")
	c1 := CreateCourse(t, r.Course, "1A", "Primero")
	CreateSubject(t, r.Subject, "MAT1", "Maths", 4, c1.ID, tchr.ID)
	CreateSubject(t, r.Subject, "ART1", "Art", 2, c1.ID, tchr.ID)
	require.NoError(t, r.Course.AssignTutor(ctx, c1.ID, tchr.ID))

	courses, err := r.Course.QueryCourses(ctx)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, c1.ID, courses[0].ID)
	assert.Equal(t, 2, courses[0].NumSubjects)
	assert.Equal(t, "Luis Pérez", courses[0].Tutor.String)
	assert.Equal(t, c2.ID, courses[1].ID)
	assert.Equal(t, 0, courses[1].NumSubjects)
	assert.False(t, courses[1].Tutor.Valid)

	subjects, err := r.Course.QuerySubjects(ctx, c1.ID)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, "Art", subjects[0].Name)
	assert.Equal(t, "Luis Pérez", subjects[0].Teacher)

	require.NoError(t, r.Course.RemoveTutor(ctx, c1.ID))
	got, err := r.Course.GetCourse(ctx, c1.ID)
	require.NoError(t, err)
	assert.False(t, got.TutorID.Valid)

	_, err = r.Course.GetCourse(ctx, 9999)
	assert.True(t, errors.Is(err, course.ErrNotFound))
	err = r.Course.RemoveTutor(ctx, 9999)
	assert.True(t, errors.Is(err, course.ErrNotFound))
}

func testSubjects(t *testing.T, r Repos) {
	ctx := context.Background()
	tchr := CreateTeacher(t, r.Teacher, "Luis", "Pérez", "T1", "Maths")
	c1 := CreateCourse(t, r.Course, "1A", "Primero")
	c2 := CreateCourse(t, r.Course, "2A", "Segundo")

	maths := CreateSubject(t, r.Subject, "MAT2", "Maths", 4, c2.ID, tchr.ID)
	art := CreateSubject(t, r.Subject, "ART1", "Art", 2, c1.ID, tchr.ID)
	assert.Equal(t, "Segundo", maths.Course)
	assert.Equal(t, "Luis Pérez", maths.Teacher)

	_, err := r.Subject.CreateSubject(ctx, subject.NewSubject{Code: "X", Name: "X", CourseID: 9999, TeacherID: tchr.ID})
	assert.True(t, errors.Is(err, subject.ErrUnknownCourse))
	_, err = r.Subject.CreateSubject(ctx, subject.NewSubject{Code: "X", Name: "X", CourseID: c1.ID, TeacherID: 9999})
	assert.True(t, errors.Is(err, subject.ErrUnknownTeacher))

	subjects, err := r.Subject.QuerySubjects(ctx)
	require.NoError(t, err)
	require.Len(t, subjects, 2)
	assert.Equal(t, art.ID, subjects[0].ID)
	assert.Equal(t, maths.ID, subjects[1].ID)

	zoe := CreateStudent(t, r.Student, "Zoe", "Vidal", "1", Date(2005, time.January, 1))
	ana := CreateStudent(t, r.Student, "Ana", "Alba", "2", Date(2006, time.January, 1))
	Enroll(t, r.Enrollment, zoe.ID, maths.ID)
	Enroll(t, r.Enrollment, ana.ID, maths.ID)

	students, err := r.Subject.QueryStudents(ctx, maths.ID)
	require.NoError(t, err)
	require.Len(t, students, 2)
	assert.Equal(t, ana.ID, students[0].StudentID)
	assert.Equal(t, "Alba", students[0].Surname)
	assert.Equal(t, zoe.ID, students[1].StudentID)

	room := CreateClassroom(t, r.Classroom, "A1", 1, 30)
	CreateSlot(t, r.Schedule, maths.ID, room.ID, 3, 10, "10:00", "11:00")
	CreateSlot(t, r.Schedule, maths.ID, room.ID, 1, 10, "09:00", "10:00")

	slots, err := r.Subject.QuerySchedule(ctx, maths.ID)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, 1, slots[0].Weekday)
	assert.Equal(t, "09:00", slots[0].Start)
	assert.Equal(t, "A1", slots[0].Classroom)
	assert.Equal(t, 1, slots[0].Floor)

	_, err = r.Subject.GetSubject(ctx, 9999)
	assert.True(t, errors.Is(err, subject.ErrNotFound))
}

func testClassrooms(t *testing.T, r Repos) {
	ctx := context.Background()
	tchr := CreateTeacher(t, r.Teacher, "Luis", "Pérez", "T1", "Maths")
	c := CreateCourse(t, r.Course, "1A", "Primero")
	subj := CreateSubject(t, r.Subject, "MAT1", "Maths", 4, c.ID, tchr.ID)

	b2 := CreateClassroom(t, r.Classroom, "B2", 2, 20)
	a1 := CreateClassroom(t, r.Classroom, "A1", 1, 30)
	a0 := CreateClassroom(t, r.Classroom, "A0", 1, 10)
	CreateSlot(t, r.Schedule, subj.ID, a1.ID, 1, 9, "09:00", "10:00")
	CreateSlot(t, r.Schedule, subj.ID, a1.ID, 2, 9, "09:00", "10:00")

	rooms, err := r.Classroom.QueryClassrooms(ctx)
	require.NoError(t, err)
	require.Len(t, rooms, 3)
	assert.Equal(t, []int{a0.ID, a1.ID, b2.ID}, []int{rooms[0].ID, rooms[1].ID, rooms[2].ID})
	assert.Equal(t, 0, rooms[0].NumSlots)
	assert.Equal(t, 2, rooms[1].NumSlots)
	assert.Equal(t, 0, rooms[2].NumSlots)

	slots, err := r.Classroom.QuerySchedule(ctx, a1.ID)
	require.NoError(t, err)
	require.Len(t, slots, 2)
	assert.Equal(t, "MAT1", slots[0].SubjectCode)
	assert.Equal(t, "Primero", slots[0].Course)

	_, err = r.Classroom.GetClassroom(ctx, 9999)
	assert.True(t, errors.Is(err, classroom.ErrNotFound))
}

func testSchedule(t *testing.T, r Repos) {
	ctx := context.Background()
	tchr := CreateTeacher(t, r.Teacher, "Luis", "Pérez", "T1", "Maths")
	c := CreateCourse(t, r.Course, "1A", "Primero")
	subj := CreateSubject(t, r.Subject, "MAT1", "Maths", 4, c.ID, tchr.ID)
	room := CreateClassroom(t, r.Classroom, "A1", 1, 30)

	late := CreateSlot(t, r.Schedule, subj.ID, room.ID, 1, 11, "08:00", "09:00")
	early := CreateSlot(t, r.Schedule, subj.ID, room.ID, 5, 10, "12:30", "13:15")
	// double booking is allowed
	twin := CreateSlot(t, r.Schedule, subj.ID, room.ID, 5, 10, "12:30", "13:15")
	assert.Equal(t, "Maths", early.Subject)
	assert.Equal(t, "A1", early.Classroom)
	assert.Equal(t, "13:15", early.End)

	slots, err := r.Schedule.QuerySlots(ctx)
	require.NoError(t, err)
	require.Len(t, slots, 3)
	assert.Equal(t, []int{early.ID, twin.ID, late.ID}, []int{slots[0].ID, slots[1].ID, slots[2].ID})

	_, err = r.Schedule.CreateSlot(ctx, schedule.NewSlot{SubjectID: 9999, ClassroomID: room.ID, Weekday: 1, Month: 1, Start: "08:00", End: "09:00"})
	assert.True(t, errors.Is(err, schedule.ErrUnknownSubject))
	_, err = r.Schedule.CreateSlot(ctx, schedule.NewSlot{SubjectID: subj.ID, ClassroomID: 9999, Weekday: 1, Month: 1, Start: "08:00", End: "09:00"})
	assert.True(t, errors.Is(err, schedule.ErrUnknownClassroom))

	require.NoError(t, r.Schedule.DeleteSlot(ctx, twin.ID))
	err = r.Schedule.DeleteSlot(ctx, twin.ID)
	assert.True(t, errors.Is(err, schedule.ErrNotFound))
}

func testEnrollments(t *testing.T, r Repos) {
	ctx := context.Background()
	s := CreateStudent(t, r.Student, "Ana", "Alba", "1", Date(2005, time.January, 1))
	tchr := CreateTeacher(t, r.Teacher, "Luis", "Pérez", "T1", "Maths")
	c := CreateCourse(t, r.Course, "1A", "Primero")
	subj := CreateSubject(t, r.Subject, "MAT1", "Maths", 4, c.ID, tchr.ID)

	e := Enroll(t, r.Enrollment, s.ID, subj.ID)
	assert.False(t, e.Grade.Valid)
	assert.False(t, e.Incidents.Valid)

	_, err := r.Enrollment.CreateEnrollment(ctx, enrollment.Enrollment{StudentID: s.ID, SubjectID: subj.ID})
	assert.True(t, errors.Is(err, enrollment.ErrExists))
	assert.True(t, core.IsConflict(err))
	_, err = r.Enrollment.CreateEnrollment(ctx, enrollment.Enrollment{StudentID: 9999, SubjectID: subj.ID})
	assert.True(t, core.IsNotFound(err))
	_, err = r.Enrollment.CreateEnrollment(ctx, enrollment.Enrollment{StudentID: s.ID, SubjectID: 9999})
	assert.True(t, core.IsNotFound(err))

	require.NoError(t, r.Enrollment.UpdateGrade(ctx, e.ID, 6))
	require.NoError(t, r.Enrollment.UpdateGrade(ctx, e.ID, 8.25))
	require.NoError(t, r.Enrollment.AppendIncident(ctx, e.ID, "late"))
	require.NoError(t, r.Enrollment.AppendIncident(ctx, e.ID, "no homework"))

	got, err := r.Enrollment.GetEnrollment(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, 8.25, got.Grade.Float64)
	assert.Equal(t, "late; no homework", got.Incidents.String)

	err = r.Enrollment.UpdateGrade(ctx, 9999, 5)
	assert.True(t, errors.Is(err, enrollment.ErrNotFound))
	err = r.Enrollment.AppendIncident(ctx, 9999, "x")
	assert.True(t, errors.Is(err, enrollment.ErrNotFound))

	require.NoError(t, r.Enrollment.DeleteEnrollment(ctx, e.ID))
	err = r.Enrollment.DeleteEnrollment(ctx, e.ID)
	assert.True(t, errors.Is(err, enrollment.ErrNotFound))
}

func studentIDs(students []student.Student) []int {
	ids := make([]int, 0, len(students))
	for _, s := range students {
		ids = append(ids, s.ID)
	}
	return ids
}
