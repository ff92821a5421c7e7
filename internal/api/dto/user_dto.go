package dto

import "github.com/spec-kit/field-report-service/internal/domain"

// CreateUserRequest payload for admin account creation.
type CreateUserRequest struct {
	PetugasID string          `json:"petugasId"`
	Nama      string          `json:"nama"`
	Password  string          `json:"password"`
	Role      domain.UserRole `json:"role"`
	NoTelp    *string         `json:"noTelp"`
	Aktif     *bool           `json:"aktif"`
}

// UpdateUserRequest payload; nil fields are left untouched.
type UpdateUserRequest struct {
	Nama   *string          `json:"nama"`
	Role   *domain.UserRole `json:"role"`
	NoTelp *string          `json:"noTelp"`
	Aktif  *bool            `json:"aktif"`
}

// ResetPasswordRequest payload for admin-side password recovery.
type ResetPasswordRequest struct {
	NewPassword string `json:"newPassword"`
}

// ProfileUpdateRequest payload for self-service profile edits.
type ProfileUpdateRequest struct {
	Nama   string  `json:"nama"`
	NoTelp *string `json:"noTelp"`
}
