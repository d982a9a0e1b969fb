package sqlxrepos

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/trezcool/centro/core"
	"github.com/trezcool/centro/core/course"
	"github.com/trezcool/centro/core/teacher"
	"github.com/trezcool/centro/storage/database"
)

var tutorConstraints = map[string]error{
	"curso_tutor_id_key":  teacher.ErrAlreadyTutor,
	"curso_tutor_id_fkey": teacher.ErrNotFound,
}

// assignTutor makes the teacher the only tutor of the course: any other course
// tutored by the teacher is released first, in the same transaction.
func assignTutor(ctx context.Context, db *sqlx.DB, courseID, teacherID int) error {
	return inTx(ctx, db, func(tx *sqlx.Tx) error {
		if err := checkTeacher(ctx, tx, teacherID); err != nil {
			return err
		}

		release := psql.Update("curso").
			Set("tutor_id", nil).
			Where("tutor_id = ?", teacherID).
			Where("id <> ?", courseID)
		if _, err := exec(ctx, tx, release); err != nil {
			return core.NewStoreError(err, "releasing tutorship")
		}

		n, err := exec(ctx, tx, psql.Update("curso").Set("tutor_id", teacherID).Where("id = ?", courseID))
		if err != nil {
			return database.MapError(err, "assigning tutorship", tutorConstraints)
		}
		if n == 0 {
			return course.ErrNotFound
		}
		return nil
	})
}

func checkTeacher(ctx context.Context, q sqlx.QueryerContext, teacherID int) error {
	var found bool
	return get(ctx, q, &found, psql.Select("true").From("profesor").Where("id = ?", teacherID), teacher.ErrNotFound)
}
