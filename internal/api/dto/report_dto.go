package dto

import (
	"time"

	"github.com/spec-kit/field-report-service/internal/domain"
)

// ReviewRequest payload for the admin review action.
type ReviewRequest struct {
	Status     domain.ReviewStatus `json:"status"`
	ReviewNote string              `json:"reviewNote"`
}

// PelaporResponse is the report owner summary.
type PelaporResponse struct {
	ID        string `json:"id"`
	Nama      string `json:"nama"`
	PetugasID string `json:"petugasId"`
}

// ReportResponse is the full report shape.
type ReportResponse struct {
	ID            string              `json:"id"`
	PelaporUserID string              `json:"pelaporUserId"`
	Judul         string              `json:"judul"`
	Deskripsi     string              `json:"deskripsi"`
	Bidang        domain.Bidang       `json:"bidang"`
	StatusReview  domain.ReviewStatus `json:"statusReview"`
	Location      string              `json:"location"`
	FotoSesudah   []string            `json:"fotoSesudah"`
	PerformedAt   time.Time           `json:"performedAt"`
	ReviewedAt    *time.Time          `json:"reviewedAt"`
	ReviewNote    *string             `json:"reviewNote"`
	CreatedAt     time.Time           `json:"createdAt"`
	UpdatedAt     time.Time           `json:"updatedAt"`
	Pelapor       *PelaporResponse    `json:"pelaporUser,omitempty"`
}

// DashboardResponse bundles the session user with their own reports.
type DashboardResponse struct {
	User    UserResponse     `json:"user"`
	Reports []ReportResponse `json:"reports"`
}
