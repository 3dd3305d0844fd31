package enrollment_test

import (
	"context"
	"testing"

	"github.com/elethrixneil1/bsit1e/internal/enrollment"
	"github.com/elethrixneil1/bsit1e/internal/testutil"
	"github.com/elethrixneil1/bsit1e/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"
)

func seedUser(t *testing.T, database *bun.DB, id, name, role string) {
	t.Helper()
	hash, err := user.HashPassword("pw")
	require.NoError(t, err)
	u := &user.User{UserID: id, Name: name, PasswordHash: hash, Role: role}
	_, err = database.NewInsert().Model(u).Exec(context.Background())
	require.NoError(t, err)
}

func TestService(t *testing.T) {
	database := testutil.NewDB(t)
	userRepo := user.NewRepository(database)
	repo := enrollment.NewRepository(database)
	service := enrollment.NewService(repo, userRepo)
	ctx := context.Background()

	t.Run("StudentSummary_GPA", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)
		seedUser(t, database, "s1", "Alice", user.RoleStudent)

		// "N/A" and unparsable grades are excluded from numerator and
		// denominator alike
		grades := []string{"90", "N/A", "85", "bogus"}
		for i, grade := range grades {
			e := &enrollment.Enrollment{
				TeacherID:      "t1",
				StudentID:      "s1",
				Grade:          grade,
				Attendance:     enrollment.AttendanceDefault,
				AssignmentsDue: i,
			}
			require.NoError(t, repo.Insert(ctx, e))
		}

		summary, err := service.StudentSummary(ctx, "s1")
		require.NoError(t, err)

		assert.Equal(t, "87.5", summary.GPA)
		assert.Equal(t, 4, summary.TotalClasses)
		assert.Equal(t, 0+1+2+3, summary.TotalAssignments)
		require.Len(t, summary.Classes, 4)
		assert.Equal(t, "Mr. Reyes", summary.Classes[0].TeacherName)
	})

	t.Run("StudentSummary_NoGrades", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)
		seedUser(t, database, "s1", "Alice", user.RoleStudent)

		require.NoError(t, service.AddStudent(ctx, "t1", "s1"))

		summary, err := service.StudentSummary(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "N/A", summary.GPA)
		assert.Equal(t, 1, summary.TotalClasses)
	})

	t.Run("StudentSummary_IntegralMean", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)
		seedUser(t, database, "s1", "Alice", user.RoleStudent)

		require.NoError(t, service.AddStudent(ctx, "t1", "s1"))
		require.NoError(t, service.UpdateRecord(ctx, "t1", "s1", "95", "Present", 0))

		summary, err := service.StudentSummary(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "95.0", summary.GPA)
	})

	t.Run("AddStudent_UnknownID", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)

		err := service.AddStudent(ctx, "t1", "ghost")
		assert.ErrorIs(t, err, enrollment.ErrStudentNotFound)
	})

	t.Run("AddStudent_WrongRole", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)
		seedUser(t, database, "t2", "Ms. Cruz", user.RoleTeacher)

		err := service.AddStudent(ctx, "t1", "t2")
		assert.ErrorIs(t, err, enrollment.ErrNotAStudent)
	})

	t.Run("AddStudent_DuplicatePair", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)
		seedUser(t, database, "s1", "Alice", user.RoleStudent)

		// There is no uniqueness on the pair: both calls insert a row
		require.NoError(t, service.AddStudent(ctx, "t1", "s1"))
		require.NoError(t, service.AddStudent(ctx, "t1", "s1"))

		roster, err := service.Roster(ctx, "t1")
		require.NoError(t, err)
		assert.Len(t, roster, 2)

		// An update for the pair touches every matching row
		rows, err := repo.UpdateByPair(ctx, "t1", "s1", "88", "Late", 2)
		require.NoError(t, err)
		assert.EqualValues(t, 2, rows)

		roster, err = service.Roster(ctx, "t1")
		require.NoError(t, err)
		for _, row := range roster {
			assert.Equal(t, "88", row.Grade)
			assert.Equal(t, "Late", row.Attendance)
			assert.Equal(t, 2, row.AssignmentsDue)
		}
	})

	t.Run("UpdateRecord_NoEnrollment", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)
		seedUser(t, database, "s1", "Alice", user.RoleStudent)

		// No enrollment for the pair: the update is a silent no-op
		err := service.UpdateRecord(ctx, "t1", "s1", "90", "Present", 1)
		require.NoError(t, err)

		rows, err := repo.UpdateByPair(ctx, "t1", "s1", "90", "Present", 1)
		require.NoError(t, err)
		assert.EqualValues(t, 0, rows)
	})

	t.Run("UpdateRecord_ScopedToTeacher", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)
		seedUser(t, database, "t2", "Ms. Cruz", user.RoleTeacher)
		seedUser(t, database, "s1", "Alice", user.RoleStudent)

		require.NoError(t, service.AddStudent(ctx, "t1", "s1"))
		require.NoError(t, service.AddStudent(ctx, "t2", "s1"))

		require.NoError(t, service.UpdateRecord(ctx, "t1", "s1", "75", "Absent", 3))

		roster1, err := service.Roster(ctx, "t1")
		require.NoError(t, err)
		require.Len(t, roster1, 1)
		assert.Equal(t, "75", roster1[0].Grade)

		roster2, err := service.Roster(ctx, "t2")
		require.NoError(t, err)
		require.Len(t, roster2, 1)
		assert.Equal(t, enrollment.GradeUnset, roster2[0].Grade)
	})

	t.Run("Roster_JoinsStudentName", func(t *testing.T) {
		testutil.CleanupTables(t, database, "enrollments", "users")
		seedUser(t, database, "t1", "Mr. Reyes", user.RoleTeacher)
		seedUser(t, database, "s1", "Alice", user.RoleStudent)

		require.NoError(t, service.AddStudent(ctx, "t1", "s1"))

		roster, err := service.Roster(ctx, "t1")
		require.NoError(t, err)
		require.Len(t, roster, 1)
		assert.Equal(t, "s1", roster[0].StudentID)
		assert.Equal(t, "Alice", roster[0].StudentName)
		assert.Equal(t, enrollment.GradeUnset, roster[0].Grade)
		assert.Equal(t, enrollment.AttendanceDefault, roster[0].Attendance)
		assert.Equal(t, 0, roster[0].AssignmentsDue)
	})
}
