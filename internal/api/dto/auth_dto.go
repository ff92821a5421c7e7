package dto

import (
	"time"

	"github.com/spec-kit/field-report-service/internal/domain"
)

// LoginRequest payload.
type LoginRequest struct {
	PetugasID string `json:"petugasId"`
	Password  string `json:"password"`
}

// ChangePasswordRequest payload for self-service password change.
type ChangePasswordRequest struct {
	CurPwd string `json:"curPwd"`
	NewPwd string `json:"newPwd"`
}

// UserResponse is the sanitized account shape; the password hash never
// leaves the service.
type UserResponse struct {
	ID        string          `json:"id"`
	Role      domain.UserRole `json:"role"`
	PetugasID string          `json:"petugasId"`
	Nama      string          `json:"nama"`
	NoTelp    *string         `json:"noTelp"`
	Aktif     bool            `json:"aktif"`
	CreatedAt time.Time       `json:"createdAt"`
	UpdatedAt time.Time       `json:"updatedAt"`
}
