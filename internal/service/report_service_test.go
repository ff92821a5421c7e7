package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/domain"
	"github.com/spec-kit/field-report-service/internal/events"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

func newReportFixture() (*ReportService, *fakeReportRepo, *fakeUserRepo, *fakePhotoStore, *fakeDispatcher) {
	reports := newFakeReportRepo()
	users := newFakeUserRepo()
	photos := &fakePhotoStore{}
	dispatcher := &fakeDispatcher{}
	svc := NewReportService(ReportDependencies{
		ReportRepo: reports,
		UserRepo:   users,
		PhotoStore: photos,
		Dispatcher: dispatcher,
	})
	return svc, reports, users, photos, dispatcher
}

func petugasSession() *auth.Session {
	return &auth.Session{UserID: "user-1", Role: domain.RolePetugas, PetugasID: "PTG-001"}
}

func adminSession() *auth.Session {
	return &auth.Session{UserID: "admin-1", Role: domain.RoleAdmin, PetugasID: "ADM-001"}
}

func validCreateInput(photos int) ReportCreateInput {
	uploads := make([]PhotoUpload, 0, photos)
	for i := 0; i < photos; i++ {
		uploads = append(uploads, PhotoUpload{FileName: "foto.jpg", Content: strings.NewReader("jpeg-bytes")})
	}
	return ReportCreateInput{
		Judul:       "Perbaikan lampu jalan",
		Deskripsi:   "Mengganti lampu jalan yang mati di blok C",
		Bidang:      domain.BidangKerusakan,
		Location:    "geo:-6.2,106.8",
		PerformedAt: time.Now().Add(-time.Hour),
		Photos:      uploads,
	}
}

func domainCode(t *testing.T, err error) string {
	t.Helper()
	var de *apperrors.DomainError
	if !errors.As(err, &de) {
		t.Fatalf("expected DomainError, got %v", err)
	}
	return de.Code
}

func TestCreateReportStoresHostedURLsAndStartsPending(t *testing.T) {
	svc, _, _, _, dispatcher := newReportFixture()

	report, err := svc.CreateReport(context.Background(), petugasSession(), validCreateInput(2))
	if err != nil {
		t.Fatalf("CreateReport failed: %v", err)
	}
	if report.StatusReview != domain.ReviewStatusPending {
		t.Fatalf("expected PENDING, got %s", report.StatusReview)
	}
	if len(report.FotoSesudah) != 2 {
		t.Fatalf("expected 2 photo URLs, got %d", len(report.FotoSesudah))
	}
	for _, url := range report.FotoSesudah {
		if !strings.HasPrefix(url, "https://") {
			t.Fatalf("expected hosted URL, got %q", url)
		}
	}
	if report.PelaporUserID != "user-1" {
		t.Fatalf("expected owner user-1, got %s", report.PelaporUserID)
	}
	if len(dispatcher.published) != 1 || dispatcher.published[0].event.Type != events.EventReportCreated {
		t.Fatalf("expected one report_created event, got %+v", dispatcher.published)
	}
}

func TestCreateReportRequiresAtLeastOnePhoto(t *testing.T) {
	svc, reports, _, _, _ := newReportFixture()

	_, err := svc.CreateReport(context.Background(), petugasSession(), validCreateInput(0))
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
	if len(reports.reports) != 0 {
		t.Fatalf("no report should be stored, got %d", len(reports.reports))
	}
}

func TestCreateReportValidatesFields(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()
	ctx := context.Background()

	short := validCreateInput(1)
	short.Deskripsi = "pendek"
	if _, err := svc.CreateReport(ctx, petugasSession(), short); err == nil {
		t.Fatal("expected error for short description")
	}

	badBidang := validCreateInput(1)
	badBidang.Bidang = "GARDENING"
	if _, err := svc.CreateReport(ctx, petugasSession(), badBidang); err == nil {
		t.Fatal("expected error for unknown bidang")
	}

	missing := validCreateInput(1)
	missing.Judul = "   "
	if _, err := svc.CreateReport(ctx, petugasSession(), missing); err == nil {
		t.Fatal("expected error for blank judul")
	}
}

func TestCreateReportUploadFailureIsUpstream(t *testing.T) {
	svc, reports, _, photos, _ := newReportFixture()
	photos.fail = true

	_, err := svc.CreateReport(context.Background(), petugasSession(), validCreateInput(1))
	if code := domainCode(t, err); code != "UPSTREAM_FAILURE" {
		t.Fatalf("expected UPSTREAM_FAILURE, got %s", code)
	}
	if len(reports.reports) != 0 {
		t.Fatal("failed upload must not persist a report")
	}
}

func TestReviewReportAcceptAndReject(t *testing.T) {
	svc, _, _, _, dispatcher := newReportFixture()
	ctx := context.Background()

	accepted, _ := svc.CreateReport(ctx, petugasSession(), validCreateInput(1))
	rejected, _ := svc.CreateReport(ctx, petugasSession(), validCreateInput(1))
	dispatcher.published = nil

	got, err := svc.ReviewReport(ctx, adminSession(), accepted.ID, domain.ReviewStatusDiterima, "")
	if err != nil {
		t.Fatalf("accept review failed: %v", err)
	}
	if got.StatusReview != domain.ReviewStatusDiterima || got.ReviewedAt == nil {
		t.Fatalf("accept not applied: %+v", got)
	}
	if got.ReviewNote != nil {
		t.Fatalf("accept without note should keep note nil, got %v", *got.ReviewNote)
	}

	got, err = svc.ReviewReport(ctx, adminSession(), rejected.ID, domain.ReviewStatusDitolak, "foto tidak sesuai lokasi")
	if err != nil {
		t.Fatalf("reject review failed: %v", err)
	}
	if got.ReviewNote == nil || *got.ReviewNote != "foto tidak sesuai lokasi" {
		t.Fatalf("reject note not stored: %+v", got.ReviewNote)
	}

	if len(dispatcher.published) != 2 {
		t.Fatalf("expected 2 review events, got %d", len(dispatcher.published))
	}
	if dispatcher.published[0].event.Type != events.EventReportReviewed {
		t.Fatalf("unexpected event type %s", dispatcher.published[0].event.Type)
	}
}

func TestReviewReportRejectRequiresNote(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()
	ctx := context.Background()
	report, _ := svc.CreateReport(ctx, petugasSession(), validCreateInput(1))

	_, err := svc.ReviewReport(ctx, adminSession(), report.ID, domain.ReviewStatusDitolak, "   ")
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}

	fresh, _ := svc.GetReport(ctx, adminSession(), report.ID)
	if fresh.StatusReview != domain.ReviewStatusPending {
		t.Fatalf("rejected-without-note must stay PENDING, got %s", fresh.StatusReview)
	}
}

func TestReviewReportOnlyAdmin(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()
	ctx := context.Background()
	report, _ := svc.CreateReport(ctx, petugasSession(), validCreateInput(1))

	_, err := svc.ReviewReport(ctx, petugasSession(), report.ID, domain.ReviewStatusDiterima, "")
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN, got %s", code)
	}
	_, err = svc.ReviewReport(ctx, nil, report.ID, domain.ReviewStatusDiterima, "")
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN for anonymous, got %s", code)
	}
}

func TestReviewReportTerminalStatesAreFinal(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()
	ctx := context.Background()
	report, _ := svc.CreateReport(ctx, petugasSession(), validCreateInput(1))

	if _, err := svc.ReviewReport(ctx, adminSession(), report.ID, domain.ReviewStatusDiterima, ""); err != nil {
		t.Fatalf("first review failed: %v", err)
	}
	_, err := svc.ReviewReport(ctx, adminSession(), report.ID, domain.ReviewStatusDitolak, "berubah pikiran")
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED on re-review, got %s", code)
	}
}

func TestReviewReportUnknownIDIsNotFound(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()

	_, err := svc.ReviewReport(context.Background(), adminSession(), "laporan-missing", domain.ReviewStatusDiterima, "")
	if code := domainCode(t, err); code != "NOT_FOUND" {
		t.Fatalf("expected NOT_FOUND, got %s", code)
	}
}

func TestReviewReportInvalidTargetStatus(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()
	ctx := context.Background()
	report, _ := svc.CreateReport(ctx, petugasSession(), validCreateInput(1))

	_, err := svc.ReviewReport(ctx, adminSession(), report.ID, domain.ReviewStatusPending, "")
	if code := domainCode(t, err); code != "VALIDATION_FAILED" {
		t.Fatalf("expected VALIDATION_FAILED, got %s", code)
	}
}

func TestGetReportRestrictedToAdminAndOwner(t *testing.T) {
	svc, _, _, _, _ := newReportFixture()
	ctx := context.Background()
	owner := petugasSession()
	report, _ := svc.CreateReport(ctx, owner, validCreateInput(1))

	if _, err := svc.GetReport(ctx, owner, report.ID); err != nil {
		t.Fatalf("owner read failed: %v", err)
	}
	if _, err := svc.GetReport(ctx, adminSession(), report.ID); err != nil {
		t.Fatalf("admin read failed: %v", err)
	}

	other := &auth.Session{UserID: "user-99", Role: domain.RolePetugas, PetugasID: "PTG-099"}
	_, err := svc.GetReport(ctx, other, report.ID)
	if code := domainCode(t, err); code != "FORBIDDEN" {
		t.Fatalf("expected FORBIDDEN for non-owner, got %s", code)
	}
}

func TestDashboardReturnsOnlyOwnReports(t *testing.T) {
	svc, _, users, _, _ := newReportFixture()
	ctx := context.Background()

	owner := &domain.User{Role: domain.RolePetugas, PetugasID: "PTG-001", Nama: "Budi", Aktif: true}
	if err := users.Create(ctx, owner); err != nil {
		t.Fatalf("seed user failed: %v", err)
	}

	session := &auth.Session{UserID: owner.ID, Role: domain.RolePetugas, PetugasID: owner.PetugasID}
	if _, err := svc.CreateReport(ctx, session, validCreateInput(1)); err != nil {
		t.Fatalf("seed report failed: %v", err)
	}
	stranger := &auth.Session{UserID: "user-42", Role: domain.RolePetugas}
	if _, err := svc.CreateReport(ctx, stranger, validCreateInput(1)); err != nil {
		t.Fatalf("seed stranger report failed: %v", err)
	}

	user, reports, err := svc.Dashboard(ctx, owner.ID)
	if err != nil {
		t.Fatalf("Dashboard failed: %v", err)
	}
	if user.PetugasID != "PTG-001" {
		t.Fatalf("wrong user returned: %+v", user)
	}
	if len(reports) != 1 || reports[0].PelaporUserID != owner.ID {
		t.Fatalf("expected only the owner's report, got %+v", reports)
	}
}
