package user

import "github.com/uptrace/bun"

// Roles the portal distinguishes. Registration accepts the role field as
// free-form input, so comparisons must not assume these are the only values.
const (
	RoleStudent = "student"
	RoleTeacher = "teacher"
)

type User struct {
	bun.BaseModel `bun:"table:users,alias:u"`

	UserID       string `bun:"user_id,pk"`
	Name         string `bun:"name,notnull"`
	PasswordHash string `bun:"password,notnull"`
	Role         string `bun:"role,notnull"`
}
