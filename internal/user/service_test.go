package user_test

import (
	"context"
	"testing"

	"github.com/elethrixneil1/bsit1e/internal/testutil"
	"github.com/elethrixneil1/bsit1e/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService(t *testing.T) {
	database := testutil.NewDB(t)
	repo := user.NewRepository(database)
	service := user.NewService(repo)
	ctx := context.Background()

	t.Run("Register_Success", func(t *testing.T) {
		testutil.CleanupTables(t, database, "users")

		err := service.Register(ctx, "s1", "Alice", "pw1", user.RoleStudent)
		require.NoError(t, err)

		stored, err := repo.GetByID(ctx, "s1")
		require.NoError(t, err)
		assert.Equal(t, "Alice", stored.Name)
		assert.Equal(t, user.RoleStudent, stored.Role)
		assert.NotEqual(t, "pw1", stored.PasswordHash)
		assert.NotContains(t, stored.PasswordHash, "pw1")
	})

	t.Run("Register_DuplicateID", func(t *testing.T) {
		testutil.CleanupTables(t, database, "users")

		require.NoError(t, service.Register(ctx, "s1", "Alice", "pw1", user.RoleStudent))

		err := service.Register(ctx, "s1", "Impostor", "other", user.RoleStudent)
		assert.ErrorIs(t, err, user.ErrDuplicateID)

		count, err := database.NewSelect().
			Model((*user.User)(nil)).
			Where("user_id = ?", "s1").
			Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})

	t.Run("Register_FreeFormRole", func(t *testing.T) {
		testutil.CleanupTables(t, database, "users")

		// The role field is stored as given, not checked against an enum
		require.NoError(t, service.Register(ctx, "x1", "X", "pw", "principal"))
		stored, err := repo.GetByID(ctx, "x1")
		require.NoError(t, err)
		assert.Equal(t, "principal", stored.Role)
	})

	t.Run("Verify_Success", func(t *testing.T) {
		testutil.CleanupTables(t, database, "users")
		require.NoError(t, service.Register(ctx, "s1", "Alice", "pw1", user.RoleStudent))

		u, err := service.Verify(ctx, "s1", "pw1")
		require.NoError(t, err)
		assert.Equal(t, "s1", u.UserID)
		assert.Equal(t, "Alice", u.Name)
	})

	t.Run("Verify_WrongPassword", func(t *testing.T) {
		testutil.CleanupTables(t, database, "users")
		require.NoError(t, service.Register(ctx, "s1", "Alice", "pw1", user.RoleStudent))

		_, err := service.Verify(ctx, "s1", "pw2")
		assert.ErrorIs(t, err, user.ErrInvalidPassword)

		_, err = service.Verify(ctx, "s1", "")
		assert.ErrorIs(t, err, user.ErrInvalidPassword)
	})

	t.Run("Verify_UnknownID", func(t *testing.T) {
		testutil.CleanupTables(t, database, "users")

		// An unknown id is reported as not found, never as a bad password
		_, err := service.Verify(ctx, "ghost", "pw1")
		assert.ErrorIs(t, err, user.ErrUserNotFound)
		assert.NotErrorIs(t, err, user.ErrInvalidPassword)
	})

	t.Run("Verify_SQLMetacharacters", func(t *testing.T) {
		testutil.CleanupTables(t, database, "users")

		password := `'; DROP TABLE users; --`
		require.NoError(t, service.Register(ctx, "s1", "Alice", password, user.RoleStudent))

		u, err := service.Verify(ctx, "s1", password)
		require.NoError(t, err)
		assert.Equal(t, "s1", u.UserID)

		_, err = service.Verify(ctx, "s1", "' OR '1'='1")
		assert.ErrorIs(t, err, user.ErrInvalidPassword)

		// The users table survived
		count, err := database.NewSelect().Model((*user.User)(nil)).Count(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, count)
	})
}
