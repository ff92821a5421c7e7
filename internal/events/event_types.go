package events

import (
	"time"

	"github.com/spec-kit/field-report-service/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventReportCreated  EventType = "report_created"
	EventReportReviewed EventType = "report_reviewed"
	EventUserCreated    EventType = "user_created"
)

// Actor encapsulates actor metadata for an event.
type Actor struct {
	UserID string          `json:"user_id"`
	Role   domain.UserRole `json:"role"`
}

// Event represents a domain event emitted by services.
type Event struct {
	ID        string      `json:"id"`
	Type      EventType   `json:"type"`
	ReportID  string      `json:"report_id,omitempty"`
	Actor     Actor       `json:"actor"`
	Timestamp time.Time   `json:"timestamp"`
	Payload   interface{} `json:"payload"`
}

// ReportCreatedPayload payload.
type ReportCreatedPayload struct {
	PelaporUserID string        `json:"pelapor_user_id"`
	Bidang        domain.Bidang `json:"bidang"`
	Judul         string        `json:"judul"`
}

// ReportReviewedPayload payload.
type ReportReviewedPayload struct {
	OldStatus  domain.ReviewStatus `json:"old_status"`
	NewStatus  domain.ReviewStatus `json:"new_status"`
	ReviewNote string              `json:"review_note,omitempty"`
}

// UserCreatedPayload payload.
type UserCreatedPayload struct {
	PetugasID string          `json:"petugas_id"`
	Role      domain.UserRole `json:"role"`
}
