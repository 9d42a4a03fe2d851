package domain

// UserRole enumerates supported roles.
type UserRole string

const (
	UserRoleClient UserRole = "client"
	UserRoleAdmin  UserRole = "admin"
)

// Valid reports whether the role is one of the supported values.
func (r UserRole) Valid() bool {
	return r == UserRoleClient || r == UserRoleAdmin
}
