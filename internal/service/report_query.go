package service

import (
	"sort"
	"strings"
	"time"

	"github.com/spec-kit/field-report-service/internal/domain"
)

// ReportSortKey selects the list ordering column.
type ReportSortKey string

const (
	SortByTanggal ReportSortKey = "tanggal"
	SortByBidang  ReportSortKey = "bidang"
	SortByStatus  ReportSortKey = "status"
	SortByID      ReportSortKey = "id"
)

// SortDirection orders ascending or descending.
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

// ReportQuery captures listing filters and sorting. All filters are optional
// and conjunctive. Date bounds are inclusive and independent.
type ReportQuery struct {
	Status      *domain.ReviewStatus
	Bidang      *domain.Bidang
	Search      string
	CreatedFrom *time.Time
	CreatedTo   *time.Time
	SortBy      ReportSortKey
	SortDir     SortDirection
}

// ApplyReportQuery filters and sorts reports. It is a pure function: the
// input slice is never mutated and repeated calls over the same input yield
// identical output. Sorting is stable, so ties keep their input order.
// Status sorting uses the fixed priority PENDING < DITERIMA < DITOLAK.
func ApplyReportQuery(reports []domain.Report, q ReportQuery) []domain.Report {
	search := strings.ToLower(strings.TrimSpace(q.Search))

	out := make([]domain.Report, 0, len(reports))
	for _, report := range reports {
		if q.Status != nil && report.StatusReview != *q.Status {
			continue
		}
		if q.Bidang != nil && report.Bidang != *q.Bidang {
			continue
		}
		if search != "" && !matchesSearch(&report, search) {
			continue
		}
		if q.CreatedFrom != nil && report.CreatedAt.Before(*q.CreatedFrom) {
			continue
		}
		if q.CreatedTo != nil && report.CreatedAt.After(*q.CreatedTo) {
			continue
		}
		out = append(out, report)
	}

	sortBy := q.SortBy
	if sortBy == "" {
		sortBy = SortByTanggal
	}
	dir := q.SortDir
	if dir == "" {
		dir = SortDesc
	}

	sort.SliceStable(out, func(i, j int) bool {
		cmp := compareReports(&out[i], &out[j], sortBy)
		if dir == SortDesc {
			cmp = -cmp
		}
		return cmp < 0
	})
	return out
}

func matchesSearch(report *domain.Report, search string) bool {
	return strings.Contains(strings.ToLower(report.Judul), search) ||
		strings.Contains(strings.ToLower(report.Deskripsi), search) ||
		strings.Contains(strings.ToLower(report.ID), search)
}

func compareReports(a, b *domain.Report, key ReportSortKey) int {
	switch key {
	case SortByBidang:
		return strings.Compare(string(a.Bidang), string(b.Bidang))
	case SortByStatus:
		return a.StatusReview.SortOrder() - b.StatusReview.SortOrder()
	case SortByID:
		return strings.Compare(a.ID, b.ID)
	default:
		switch {
		case a.CreatedAt.Before(b.CreatedAt):
			return -1
		case a.CreatedAt.After(b.CreatedAt):
			return 1
		default:
			return 0
		}
	}
}
