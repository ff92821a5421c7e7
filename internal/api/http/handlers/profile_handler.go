package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/api/dto"
	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/service"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// ProfileHandler serves self-service profile and password updates.
type ProfileHandler struct {
	userService *service.UserService
	authService *service.AuthService
}

// NewProfileHandler constructs the handler.
func NewProfileHandler(userService *service.UserService, authService *service.AuthService) *ProfileHandler {
	return &ProfileHandler{userService: userService, authService: authService}
}

// Get returns the acting user's profile.
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("otentikasi diperlukan")
	}
	user, err := h.userService.GetUser(c.UserContext(), session.UserID)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdateData changes nama and no_telp of the acting user.
func (h *ProfileHandler) UpdateData(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("otentikasi diperlukan")
	}

	var req dto.ProfileUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("body tidak valid", nil)
	}
	user, err := h.userService.UpdateProfile(c.UserContext(), session.UserID, req.Nama, req.NoTelp)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// UpdatePassword changes the acting user's password after verifying the
// current one.
func (h *ProfileHandler) UpdatePassword(c *fiber.Ctx) error {
	session, ok := auth.SessionFromContext(c)
	if !ok {
		return apperrors.NewUnauthorized("otentikasi diperlukan")
	}

	var req dto.ChangePasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("body tidak valid", nil)
	}
	if err := h.authService.ChangePassword(c.UserContext(), session.UserID, req.CurPwd, req.NewPwd); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password berhasil diubah"})
}
