package enrollment

import (
	"context"

	"github.com/uptrace/bun"
)

type Repository interface {
	Insert(ctx context.Context, e *Enrollment) error
	StudentClasses(ctx context.Context, studentID string) ([]StudentClassRow, error)
	Roster(ctx context.Context, teacherID string) ([]RosterRow, error)
	UpdateByPair(ctx context.Context, teacherID, studentID, grade, attendance string, assignmentsDue int) (int64, error)
}

type repository struct {
	db *bun.DB
}

func NewRepository(db *bun.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Insert(ctx context.Context, e *Enrollment) error {
	_, err := r.db.NewInsert().Model(e).Exec(ctx)
	return err
}

func (r *repository) StudentClasses(ctx context.Context, studentID string) ([]StudentClassRow, error) {
	var rows []StudentClassRow
	err := r.db.NewSelect().
		Model((*Enrollment)(nil)).
		ColumnExpr("u.name AS teacher_name").
		ColumnExpr("e.grade, e.attendance, e.assignments_due").
		Join("JOIN users AS u ON u.user_id = e.teacher_id").
		Where("e.student_id = ?", studentID).
		Scan(ctx, &rows)
	return rows, err
}

func (r *repository) Roster(ctx context.Context, teacherID string) ([]RosterRow, error) {
	var rows []RosterRow
	err := r.db.NewSelect().
		Model((*Enrollment)(nil)).
		ColumnExpr("u.user_id AS student_id").
		ColumnExpr("u.name AS student_name").
		ColumnExpr("e.grade, e.attendance, e.assignments_due").
		Join("JOIN users AS u ON u.user_id = e.student_id").
		Where("e.teacher_id = ?", teacherID).
		Scan(ctx, &rows)
	return rows, err
}

// UpdateByPair updates every enrollment matching the pair and returns the
// number of rows touched. Zero is not an error: an update for a pair with
// no enrollment is a no-op.
func (r *repository) UpdateByPair(ctx context.Context, teacherID, studentID, grade, attendance string, assignmentsDue int) (int64, error) {
	res, err := r.db.NewUpdate().
		Model((*Enrollment)(nil)).
		Set("grade = ?", grade).
		Set("attendance = ?", attendance).
		Set("assignments_due = ?", assignmentsDue).
		Where("student_id = ?", studentID).
		Where("teacher_id = ?", teacherID).
		Exec(ctx)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
