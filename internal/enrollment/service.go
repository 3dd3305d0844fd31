package enrollment

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/elethrixneil1/bsit1e/internal/user"
)

var (
	ErrStudentNotFound = errors.New("student id not found")
	ErrNotAStudent     = errors.New("id does not belong to a student")
)

type Service interface {
	StudentSummary(ctx context.Context, studentID string) (*StudentSummary, error)
	Roster(ctx context.Context, teacherID string) ([]RosterRow, error)
	AddStudent(ctx context.Context, teacherID, studentID string) error
	UpdateRecord(ctx context.Context, teacherID, studentID, grade, attendance string, assignmentsDue int) error
}

type service struct {
	repo  Repository
	users user.Repository
}

func NewService(repo Repository, users user.Repository) Service {
	return &service{
		repo:  repo,
		users: users,
	}
}

// StudentSummary aggregates all of a student's enrollments into the
// dashboard view. Grades of "N/A" and grades that fail to parse are
// excluded from the GPA without aborting the aggregation.
func (s *service) StudentSummary(ctx context.Context, studentID string) (*StudentSummary, error) {
	rows, err := s.repo.StudentClasses(ctx, studentID)
	if err != nil {
		return nil, fmt.Errorf("query student classes: %w", err)
	}

	summary := &StudentSummary{
		Classes:      rows,
		TotalClasses: len(rows),
		GPA:          GradeUnset,
	}

	gradeSum := 0.0
	graded := 0
	for _, row := range rows {
		summary.TotalAssignments += row.AssignmentsDue

		if row.Grade == GradeUnset {
			continue
		}
		value, err := strconv.ParseFloat(row.Grade, 64)
		if err != nil {
			// malformed grade, skip
			continue
		}
		gradeSum += value
		graded++
	}

	if graded > 0 {
		summary.GPA = formatGPA(math.Round(gradeSum/float64(graded)*100) / 100)
	}

	return summary, nil
}

func (s *service) Roster(ctx context.Context, teacherID string) ([]RosterRow, error) {
	rows, err := s.repo.Roster(ctx, teacherID)
	if err != nil {
		return nil, fmt.Errorf("query roster: %w", err)
	}
	return rows, nil
}

// AddStudent enrolls studentID with teacherID after checking the id exists
// and belongs to a student. The check and the insert are separate
// statements and there is no duplicate check: enrolling the same pair
// twice creates two rows.
func (s *service) AddStudent(ctx context.Context, teacherID, studentID string) error {
	u, err := s.users.GetByID(ctx, studentID)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("look up student: %w", err)
	}
	if u.Role != user.RoleStudent {
		return ErrNotAStudent
	}

	e := &Enrollment{
		TeacherID:      teacherID,
		StudentID:      studentID,
		Grade:          GradeUnset,
		Attendance:     AttendanceDefault,
		AssignmentsDue: 0,
	}
	if err := s.repo.Insert(ctx, e); err != nil {
		return fmt.Errorf("insert enrollment: %w", err)
	}
	return nil
}

// UpdateRecord applies the new field values to every enrollment matching
// (teacherID, studentID). A pair with no enrollment is a silent no-op.
func (s *service) UpdateRecord(ctx context.Context, teacherID, studentID, grade, attendance string, assignmentsDue int) error {
	_, err := s.repo.UpdateByPair(ctx, teacherID, studentID, grade, attendance, assignmentsDue)
	if err != nil {
		return fmt.Errorf("update enrollment: %w", err)
	}
	return nil
}

// formatGPA renders a grade average with at least one decimal, so an
// integral mean still reads as a number with precision (95 -> "95.0").
func formatGPA(value float64) string {
	formatted := strconv.FormatFloat(value, 'f', -1, 64)
	if !strings.Contains(formatted, ".") {
		formatted += ".0"
	}
	return formatted
}
