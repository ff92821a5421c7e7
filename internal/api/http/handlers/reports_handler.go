package handlers

import (
	"mime/multipart"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/api/dto"
	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/domain"
	"github.com/spec-kit/field-report-service/internal/service"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// ReportsHandler serves report submission, lookup, listing and review.
type ReportsHandler struct {
	reportService *service.ReportService
}

// NewReportsHandler constructs the handler.
func NewReportsHandler(reportService *service.ReportService) *ReportsHandler {
	return &ReportsHandler{reportService: reportService}
}

// Create accepts a multipart submission with at least one photo under the
// fotoSesudah field.
func (h *ReportsHandler) Create(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("otentikasi diperlukan")
	}

	form, err := c.MultipartForm()
	if err != nil {
		return apperrors.NewValidationError("form multipart tidak valid", nil)
	}

	performedAt, err := parseTimestamp(c.FormValue("performedAt"))
	if err != nil {
		return apperrors.NewValidationError("performedAt tidak valid", nil)
	}

	files := form.File["fotoSesudah"]
	photos := make([]service.PhotoUpload, 0, len(files))
	opened := make([]multipart.File, 0, len(files))
	defer func() {
		for _, f := range opened {
			_ = f.Close()
		}
	}()
	for _, fh := range files {
		f, err := fh.Open()
		if err != nil {
			return apperrors.NewValidationError("foto tidak dapat dibaca", map[string]any{"file": fh.Filename})
		}
		opened = append(opened, f)
		photos = append(photos, service.PhotoUpload{FileName: fh.Filename, Content: f})
	}

	report, err := h.reportService.CreateReport(c.UserContext(), session, service.ReportCreateInput{
		Judul:       c.FormValue("judul"),
		Deskripsi:   c.FormValue("deskripsi"),
		Bidang:      domain.Bidang(c.FormValue("bidang")),
		Location:    c.FormValue("location"),
		PerformedAt: performedAt,
		Photos:      photos,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewReportResponse(report))
}

// Get returns one report for admins or its owner.
func (h *ReportsHandler) Get(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)
	report, err := h.reportService.GetReport(c.UserContext(), session, c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportResponse(report))
}

// Review applies an admin decision to a pending report.
func (h *ReportsHandler) Review(c *fiber.Ctx) error {
	session, _ := auth.SessionFromContext(c)

	var req dto.ReviewRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("body tidak valid", nil)
	}

	report, err := h.reportService.ReviewReport(c.UserContext(), session, c.Params("id"), req.Status, req.ReviewNote)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{
		"message": "Laporan berhasil direview",
		"laporan": dto.NewReportResponse(report),
	})
}

// ListAll returns reports matching the query parameters. Unknown status or
// bidang values are ignored rather than rejected.
func (h *ReportsHandler) ListAll(c *fiber.Ctx) error {
	query := service.ReportQuery{
		Search:  c.Query("q"),
		SortBy:  service.ReportSortKey(c.Query("sort_by")),
		SortDir: service.SortDirection(c.Query("sort_dir")),
	}

	if status := domain.ReviewStatus(c.Query("status")); domain.ValidReviewStatus(status) {
		query.Status = &status
	}
	if bidang := domain.Bidang(c.Query("bidang")); domain.ValidBidang(bidang) {
		query.Bidang = &bidang
	}
	if from, err := parseDateBound(c.Query("created_from"), false); err != nil {
		return apperrors.NewValidationError("created_from tidak valid", nil)
	} else if from != nil {
		query.CreatedFrom = from
	}
	if to, err := parseDateBound(c.Query("created_to"), true); err != nil {
		return apperrors.NewValidationError("created_to tidak valid", nil)
	} else if to != nil {
		query.CreatedTo = to
	}

	reports, err := h.reportService.ListReports(c.UserContext(), query)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewReportResponses(reports))
}

func parseTimestamp(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	return time.Parse("2006-01-02", value)
}

// parseDateBound accepts RFC3339 timestamps or plain dates. A plain date used
// as an upper bound covers the whole day, keeping the range inclusive.
func parseDateBound(value string, endOfDay bool) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return &ts, nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil, err
	}
	if endOfDay {
		day = day.Add(24*time.Hour - time.Nanosecond)
	}
	return &day, nil
}
