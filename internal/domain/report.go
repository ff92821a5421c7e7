package domain

import "time"

// Bidang enumerates report categories.
type Bidang string

const (
	BidangKerusakan  Bidang = "KERUSAKAN"
	BidangKebersihan Bidang = "KEBERSIHAN"
	BidangLainnya    Bidang = "LAINNYA"
)

// ValidBidang reports whether the value is a known category.
func ValidBidang(b Bidang) bool {
	return b == BidangKerusakan || b == BidangKebersihan || b == BidangLainnya
}

// ReviewStatus enumerates review lifecycle states for reports.
type ReviewStatus string

const (
	ReviewStatusPending  ReviewStatus = "PENDING"
	ReviewStatusDiterima ReviewStatus = "DITERIMA"
	ReviewStatusDitolak  ReviewStatus = "DITOLAK"
)

// ValidReviewStatus reports whether the value is a known status.
func ValidReviewStatus(s ReviewStatus) bool {
	return s == ReviewStatusPending || s == ReviewStatusDiterima || s == ReviewStatusDitolak
}

// Terminal reports whether no further review transition is permitted.
func (s ReviewStatus) Terminal() bool {
	return s == ReviewStatusDiterima || s == ReviewStatusDitolak
}

var reviewStatusOrder = map[ReviewStatus]int{
	ReviewStatusPending:  0,
	ReviewStatusDiterima: 1,
	ReviewStatusDitolak:  2,
}

// SortOrder returns the fixed priority used when sorting by status.
func (s ReviewStatus) SortOrder() int {
	return reviewStatusOrder[s]
}

// ReportPelapor is the owner summary attached to reports on reads.
type ReportPelapor struct {
	ID        string
	Nama      string
	PetugasID string
}

// Report is the aggregate for a completed field-work submission. Location is
// a free-form string: geo coordinates with a scheme marker, a map URL, or a
// plain address. FotoSesudah holds hosted photo URLs, never raw bytes.
type Report struct {
	ID            string
	PelaporUserID string
	Judul         string
	Deskripsi     string
	Bidang        Bidang
	StatusReview  ReviewStatus
	Location      string
	FotoSesudah   []string
	PerformedAt   time.Time
	ReviewedAt    *time.Time
	ReviewNote    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Pelapor *ReportPelapor
}
