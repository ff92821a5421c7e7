package service

import (
	"testing"
	"time"

	"github.com/spec-kit/field-report-service/internal/domain"
)

func queryFixture() []domain.Report {
	base := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)
	return []domain.Report{
		{
			ID:           "a1",
			Judul:        "Lampu jalan mati",
			Deskripsi:    "Penggantian lampu di blok C",
			Bidang:       domain.BidangKerusakan,
			StatusReview: domain.ReviewStatusPending,
			CreatedAt:    base,
		},
		{
			ID:           "b2",
			Judul:        "Pembersihan selokan",
			Deskripsi:    "Selokan tersumbat daun",
			Bidang:       domain.BidangKebersihan,
			StatusReview: domain.ReviewStatusDiterima,
			CreatedAt:    base.AddDate(0, 0, 1),
		},
		{
			ID:           "c3",
			Judul:        "Pengecatan pagar",
			Deskripsi:    "Cat pagar taman kota",
			Bidang:       domain.BidangLainnya,
			StatusReview: domain.ReviewStatusDitolak,
			CreatedAt:    base.AddDate(0, 0, 2),
		},
		{
			ID:           "d4",
			Judul:        "Perbaikan lampu taman",
			Deskripsi:    "Lampu taman berkedip",
			Bidang:       domain.BidangKerusakan,
			StatusReview: domain.ReviewStatusPending,
			CreatedAt:    base.AddDate(0, 0, 3),
		},
	}
}

func ids(reports []domain.Report) []string {
	out := make([]string, 0, len(reports))
	for _, r := range reports {
		out = append(out, r.ID)
	}
	return out
}

func equalIDs(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestApplyReportQueryDefaultsToNewestFirst(t *testing.T) {
	got := ApplyReportQuery(queryFixture(), ReportQuery{})
	if !equalIDs(ids(got), []string{"d4", "c3", "b2", "a1"}) {
		t.Fatalf("unexpected default order: %v", ids(got))
	}
}

func TestApplyReportQueryFiltersAreConjunctive(t *testing.T) {
	status := domain.ReviewStatusPending
	bidang := domain.BidangKerusakan
	got := ApplyReportQuery(queryFixture(), ReportQuery{
		Status: &status,
		Bidang: &bidang,
		Search: "taman",
	})
	if !equalIDs(ids(got), []string{"d4"}) {
		t.Fatalf("expected only d4, got %v", ids(got))
	}
}

func TestApplyReportQuerySearchIsCaseInsensitiveOverFields(t *testing.T) {
	reports := queryFixture()

	if got := ApplyReportQuery(reports, ReportQuery{Search: "LAMPU"}); !equalIDs(ids(got), []string{"d4", "a1"}) {
		t.Fatalf("judul search failed: %v", ids(got))
	}
	if got := ApplyReportQuery(reports, ReportQuery{Search: "tersumbat"}); !equalIDs(ids(got), []string{"b2"}) {
		t.Fatalf("deskripsi search failed: %v", ids(got))
	}
	if got := ApplyReportQuery(reports, ReportQuery{Search: "C3"}); !equalIDs(ids(got), []string{"c3"}) {
		t.Fatalf("id search failed: %v", ids(got))
	}
}

func TestApplyReportQueryDateBoundsAreInclusive(t *testing.T) {
	reports := queryFixture()
	from := reports[1].CreatedAt
	to := reports[2].CreatedAt

	got := ApplyReportQuery(reports, ReportQuery{CreatedFrom: &from, CreatedTo: &to, SortBy: SortByID, SortDir: SortAsc})
	if !equalIDs(ids(got), []string{"b2", "c3"}) {
		t.Fatalf("expected boundary rows included, got %v", ids(got))
	}
}

func TestApplyReportQueryStatusSortUsesFixedPriority(t *testing.T) {
	got := ApplyReportQuery(queryFixture(), ReportQuery{SortBy: SortByStatus, SortDir: SortAsc})
	// PENDING < DITERIMA < DITOLAK; ties keep input order.
	if !equalIDs(ids(got), []string{"a1", "d4", "b2", "c3"}) {
		t.Fatalf("unexpected status order: %v", ids(got))
	}
}

func TestApplyReportQueryIsPure(t *testing.T) {
	reports := queryFixture()
	originalFirst := reports[0].ID

	query := ReportQuery{SortBy: SortByID, SortDir: SortDesc}
	first := ApplyReportQuery(reports, query)
	second := ApplyReportQuery(reports, query)

	if reports[0].ID != originalFirst {
		t.Fatal("input slice was mutated")
	}
	if !equalIDs(ids(first), ids(second)) {
		t.Fatalf("repeated calls differ: %v vs %v", ids(first), ids(second))
	}
}
