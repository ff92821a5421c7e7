package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/api/dto"
	"github.com/spec-kit/field-report-service/internal/domain"
	"github.com/spec-kit/field-report-service/internal/service"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// UsersHandler serves admin-side account management.
type UsersHandler struct {
	userService *service.UserService
}

// NewUsersHandler constructs the handler.
func NewUsersHandler(userService *service.UserService) *UsersHandler {
	return &UsersHandler{userService: userService}
}

// Create registers a new account.
func (h *UsersHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("body tidak valid", nil)
	}
	if len(req.Password) < 6 {
		return apperrors.NewValidationError("password minimal 6 karakter", nil)
	}

	user, err := h.userService.CreateUser(c.UserContext(), service.UserCreateInput{
		PetugasID: req.PetugasID,
		Nama:      req.Nama,
		Password:  req.Password,
		Role:      req.Role,
		NoTelp:    req.NoTelp,
		Aktif:     req.Aktif,
	})
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewUserResponse(user))
}

// List returns accounts, optionally filtered by role.
func (h *UsersHandler) List(c *fiber.Ctx) error {
	var role *domain.UserRole
	if raw := c.Query("role"); raw != "" {
		r := domain.UserRole(raw)
		role = &r
	}
	users, err := h.userService.ListUsers(c.UserContext(), role)
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponses(users))
}

// Get returns one account.
func (h *UsersHandler) Get(c *fiber.Ctx) error {
	user, err := h.userService.GetUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Update mutates an account.
func (h *UsersHandler) Update(c *fiber.Ctx) error {
	var req dto.UpdateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("body tidak valid", nil)
	}
	user, err := h.userService.UpdateUser(c.UserContext(), c.Params("id"), service.UserUpdateInput{
		Nama:   req.Nama,
		Role:   req.Role,
		NoTelp: req.NoTelp,
		Aktif:  req.Aktif,
	})
	if err != nil {
		return err
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Delete removes an account and its reports.
func (h *UsersHandler) Delete(c *fiber.Ctx) error {
	if err := h.userService.DeleteUser(c.UserContext(), c.Params("id")); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "User berhasil dihapus"})
}

// ResetPassword sets a new password without the old one.
func (h *UsersHandler) ResetPassword(c *fiber.Ctx) error {
	var req dto.ResetPasswordRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("body tidak valid", nil)
	}
	if err := h.userService.ResetPassword(c.UserContext(), c.Params("id"), req.NewPassword); err != nil {
		return err
	}
	return c.JSON(fiber.Map{"message": "Password berhasil direset"})
}
