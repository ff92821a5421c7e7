package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/api/dto"
	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/service"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// AuthHandler serves login, logout and password change.
type AuthHandler struct {
	authService  *service.AuthService
	cookieSecure bool
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(authService *service.AuthService, cookieSecure bool) *AuthHandler {
	return &AuthHandler{authService: authService, cookieSecure: cookieSecure}
}

// Login authenticates the credentials and sets the session cookie. The cookie
// lifetime matches the token expiry.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewValidationError("body tidak valid", nil)
	}

	user, token, exp, err := h.authService.Login(c.UserContext(), req.PetugasID, req.Password)
	if err != nil {
		return err
	}

	c.Cookie(&fiber.Cookie{
		Name:     auth.TokenCookieName,
		Value:    token,
		Expires:  exp,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})

	return c.JSON(fiber.Map{
		"message": "Login berhasil",
		"user":    dto.NewUserResponse(user),
	})
}

// Logout clears the session cookie. The token itself simply expires; there is
// no server-side session state to revoke.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     auth.TokenCookieName,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.cookieSecure,
		SameSite: fiber.CookieSameSiteLaxMode,
		Path:     "/",
	})
	return c.JSON(fiber.Map{"message": "Logout berhasil"})
}
