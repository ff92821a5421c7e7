package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/domain"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// RequireSession ensures the caller is authenticated.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if _, ok := SessionFromContext(c); !ok {
			return apperrors.NewUnauthorized("otentikasi diperlukan")
		}
		return c.Next()
	}
}

// RequireRole ensures the caller holds one of the allowed roles.
func RequireRole(allowed ...domain.UserRole) fiber.Handler {
	allowedSet := make(map[domain.UserRole]struct{}, len(allowed))
	for _, role := range allowed {
		allowedSet[role] = struct{}{}
	}

	return func(c *fiber.Ctx) error {
		session, ok := SessionFromContext(c)
		if !ok {
			return apperrors.NewUnauthorized("otentikasi diperlukan")
		}
		if len(allowedSet) == 0 {
			return c.Next()
		}
		if _, exists := allowedSet[session.Role]; !exists {
			return apperrors.NewForbidden("tidak diizinkan")
		}
		return c.Next()
	}
}
