package entity

type UserRole string

const (
	RoleAdmin UserRole = "admin"
)

// User is an administrator account. Buyers never sign in, so there is
// no customer role here.
type User struct {
	Base
	Email        string   `db:"email"`
	PasswordHash string   `db:"password"`
	Role         UserRole `db:"role"`
	IsActive     bool     `db:"is_active"`
}
