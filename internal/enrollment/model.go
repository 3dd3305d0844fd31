package enrollment

import "github.com/uptrace/bun"

// Defaults for a freshly added enrollment.
const (
	GradeUnset        = "N/A"
	AttendanceDefault = "Present"
)

// Enrollment links one teacher and one student. There is no uniqueness on
// (teacher_id, student_id): the same pair can be enrolled more than once,
// and updates apply to every matching row.
type Enrollment struct {
	bun.BaseModel `bun:"table:enrollments,alias:e"`

	ID             int64  `bun:"id,pk,autoincrement"`
	TeacherID      string `bun:"teacher_id,notnull"`
	StudentID      string `bun:"student_id,notnull"`
	Grade          string `bun:"grade,notnull"`
	Attendance     string `bun:"attendance,notnull"`
	AssignmentsDue int    `bun:"assignments_due,notnull"`
}

// StudentClassRow is one class on a student's dashboard: the enrollment
// fields joined with the owning teacher's display name.
type StudentClassRow struct {
	TeacherName    string `bun:"teacher_name"`
	Grade          string `bun:"grade"`
	Attendance     string `bun:"attendance"`
	AssignmentsDue int    `bun:"assignments_due"`
}

// RosterRow is one student on a teacher's console: the enrollment fields
// joined with the student's id and display name.
type RosterRow struct {
	StudentID      string `bun:"student_id"`
	StudentName    string `bun:"student_name"`
	Grade          string `bun:"grade"`
	Attendance     string `bun:"attendance"`
	AssignmentsDue int    `bun:"assignments_due"`
}

// StudentSummary is the aggregated student dashboard view.
type StudentSummary struct {
	Classes          []StudentClassRow
	TotalClasses     int
	TotalAssignments int
	// GPA is the mean of the numerically parsable grades rounded to two
	// decimals, or "N/A" when no grade parses.
	GPA string
}
