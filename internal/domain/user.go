package domain

import "time"

// UserRole enumerates account roles.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"
	RolePetugas UserRole = "PETUGAS"
)

// ValidRole reports whether the value is a known role.
func ValidRole(role UserRole) bool {
	return role == RoleAdmin || role == RolePetugas
}

// User is the domain model for worker and admin accounts. PetugasID is the
// external worker identifier used to log in and is unique across accounts.
type User struct {
	ID           string
	Role         UserRole
	PetugasID    string
	Nama         string
	NoTelp       *string
	Aktif        bool
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
