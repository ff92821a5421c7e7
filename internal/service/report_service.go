package service

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/domain"
	"github.com/spec-kit/field-report-service/internal/events"
	"github.com/spec-kit/field-report-service/internal/repository"
	"github.com/spec-kit/field-report-service/internal/storage"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// ReportService coordinates report submission and review workflows.
type ReportService struct {
	reports     repository.ReportRepository
	users       repository.UserRepository
	photos      storage.PhotoStore
	photoFolder string
	dispatcher  events.Dispatcher
}

// ReportDependencies bundles requirements for the report service.
type ReportDependencies struct {
	ReportRepo  repository.ReportRepository
	UserRepo    repository.UserRepository
	PhotoStore  storage.PhotoStore
	PhotoFolder string
	Dispatcher  events.Dispatcher
}

// PhotoUpload is one submitted photo file.
type PhotoUpload struct {
	FileName string
	Content  io.Reader
}

// ReportCreateInput describes a report submission.
type ReportCreateInput struct {
	Judul       string
	Deskripsi   string
	Bidang      domain.Bidang
	Location    string
	PerformedAt time.Time
	Photos      []PhotoUpload
}

// NewReportService constructs the service.
func NewReportService(deps ReportDependencies) *ReportService {
	folder := deps.PhotoFolder
	if folder == "" {
		folder = "laporan"
	}
	return &ReportService{
		reports:     deps.ReportRepo,
		users:       deps.UserRepo,
		photos:      deps.PhotoStore,
		photoFolder: folder,
		dispatcher:  deps.Dispatcher,
	}
}

// CreateReport uploads the photos and persists a new PENDING report owned by
// the acting petugas. Only hosted photo URLs are stored.
func (s *ReportService) CreateReport(ctx context.Context, actor *auth.Session, input ReportCreateInput) (*domain.Report, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("otentikasi diperlukan")
	}

	judul := strings.TrimSpace(input.Judul)
	deskripsi := strings.TrimSpace(input.Deskripsi)
	location := strings.TrimSpace(input.Location)

	if judul == "" || deskripsi == "" || input.Bidang == "" || location == "" || input.PerformedAt.IsZero() {
		return nil, apperrors.NewValidationError("data wajib tidak lengkap", nil)
	}
	if !domain.ValidBidang(input.Bidang) {
		return nil, apperrors.NewValidationError("bidang tidak valid", nil)
	}
	if len(deskripsi) < 10 {
		return nil, apperrors.NewValidationError("deskripsi minimal 10 karakter", nil)
	}
	if len(input.Photos) == 0 {
		return nil, apperrors.NewValidationError("minimal 1 foto diperlukan", nil)
	}

	folder := s.photoFolder + "/" + actor.UserID
	fotoURLs := make([]string, 0, len(input.Photos))
	for _, photo := range input.Photos {
		url, err := s.photos.Upload(ctx, folder, photo.Content)
		if err != nil {
			return nil, apperrors.NewUpstreamFailure("gagal mengupload foto", err)
		}
		fotoURLs = append(fotoURLs, url)
	}

	report := &domain.Report{
		PelaporUserID: actor.UserID,
		Judul:         judul,
		Deskripsi:     deskripsi,
		Bidang:        input.Bidang,
		StatusReview:  domain.ReviewStatusPending,
		Location:      location,
		FotoSesudah:   fotoURLs,
		PerformedAt:   input.PerformedAt,
	}
	if err := s.reports.Create(ctx, report); err != nil {
		return nil, err
	}

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportCreated,
		ReportID: report.ID,
		Actor:    events.Actor{UserID: actor.UserID, Role: actor.Role},
		Payload: events.ReportCreatedPayload{
			PelaporUserID: report.PelaporUserID,
			Bidang:        report.Bidang,
			Judul:         report.Judul,
		},
	})
	return report, nil
}

// allowedTransitions fixes the review state machine: PENDING is the only
// non-terminal state.
var allowedTransitions = map[domain.ReviewStatus][]domain.ReviewStatus{
	domain.ReviewStatusPending:  {domain.ReviewStatusDiterima, domain.ReviewStatusDitolak},
	domain.ReviewStatusDiterima: {},
	domain.ReviewStatusDitolak:  {},
}

func isValidTransition(current, next domain.ReviewStatus) bool {
	for _, candidate := range allowedTransitions[current] {
		if candidate == next {
			return true
		}
	}
	return false
}

// ReviewReport applies an admin review transition. A DITOLAK review requires
// a non-empty note; DITERIMA may omit it. Terminal reports cannot be
// reviewed again.
func (s *ReportService) ReviewReport(ctx context.Context, actor *auth.Session, reportID string, status domain.ReviewStatus, note string) (*domain.Report, error) {
	if actor == nil || actor.Role != domain.RoleAdmin {
		return nil, apperrors.NewForbidden("hanya admin yang dapat mereview laporan")
	}
	if status != domain.ReviewStatusDiterima && status != domain.ReviewStatusDitolak {
		return nil, apperrors.NewValidationError("status tidak valid", nil)
	}
	trimmedNote := strings.TrimSpace(note)
	if status == domain.ReviewStatusDitolak && trimmedNote == "" {
		return nil, apperrors.NewValidationError("alasan penolakan wajib diisi", nil)
	}

	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("laporan", nil)
		}
		return nil, err
	}
	if !isValidTransition(report.StatusReview, status) {
		return nil, apperrors.NewValidationError("laporan sudah direview", nil)
	}

	var notePtr *string
	if trimmedNote != "" {
		notePtr = &trimmedNote
	}
	reviewedAt := time.Now()

	if err := s.reports.UpdateReview(ctx, report.ID, status, notePtr, reviewedAt); err != nil {
		// Zero rows means another reviewer won the race after our read.
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewValidationError("laporan sudah direview", nil)
		}
		return nil, err
	}

	oldStatus := report.StatusReview
	report.StatusReview = status
	report.ReviewNote = notePtr
	report.ReviewedAt = &reviewedAt

	s.publishEvent(ctx, events.Event{
		Type:     events.EventReportReviewed,
		ReportID: report.ID,
		Actor:    events.Actor{UserID: actor.UserID, Role: actor.Role},
		Payload: events.ReportReviewedPayload{
			OldStatus:  oldStatus,
			NewStatus:  status,
			ReviewNote: trimmedNote,
		},
	})
	return report, nil
}

// ListReports returns reports matching the query, newest first unless the
// query orders otherwise. Status and bidang narrow the database read; the
// remaining filters and the sort run in the query service.
func (s *ReportService) ListReports(ctx context.Context, query ReportQuery) ([]domain.Report, error) {
	repoFilter := repository.ReportFilter{
		Status: query.Status,
		Bidang: query.Bidang,
	}
	reports, err := s.reports.ListWithFilter(ctx, repoFilter)
	if err != nil {
		return nil, err
	}
	return ApplyReportQuery(reports, query), nil
}

// GetReport fetches one report, restricted to admins and the owner.
func (s *ReportService) GetReport(ctx context.Context, actor *auth.Session, reportID string) (*domain.Report, error) {
	if actor == nil {
		return nil, apperrors.NewUnauthorized("otentikasi diperlukan")
	}
	report, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFound("laporan", nil)
		}
		return nil, err
	}
	if actor.Role != domain.RoleAdmin && report.PelaporUserID != actor.UserID {
		return nil, apperrors.NewForbidden("akses dilarang")
	}
	return report, nil
}

// Dashboard returns the acting user's profile together with their own
// reports, newest first.
func (s *ReportService) Dashboard(ctx context.Context, userID string) (*domain.User, []domain.Report, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, apperrors.NewNotFound("user", nil)
		}
		return nil, nil, err
	}
	reports, err := s.reports.ListWithFilter(ctx, repository.ReportFilter{PelaporUserID: &userID})
	if err != nil {
		return nil, nil, err
	}
	return user, reports, nil
}

func (s *ReportService) publishEvent(ctx context.Context, event events.Event) {
	if s.dispatcher == nil {
		return
	}
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now()
	}
	_ = s.dispatcher.Publish(ctx, event)
}
