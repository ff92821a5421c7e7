package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/api/dto"
	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/service"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// DashboardHandler serves the petugas home data.
type DashboardHandler struct {
	reportService *service.ReportService
}

// NewDashboardHandler constructs the handler.
func NewDashboardHandler(reportService *service.ReportService) *DashboardHandler {
	return &DashboardHandler{reportService: reportService}
}

// Get returns the acting user together with their own reports.
func (h *DashboardHandler) Get(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("otentikasi diperlukan")
	}
	user, reports, err := h.reportService.Dashboard(c.UserContext(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.DashboardResponse{
		User:    dto.NewUserResponse(user),
		Reports: dto.NewReportResponses(reports),
	})
}
