package auth

import (
	"net/url"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/domain"
	apperrors "github.com/spec-kit/field-report-service/pkg/util"
)

// Decision is the route guard outcome for one request.
type Decision int

const (
	DecisionAllow Decision = iota
	DecisionUnauthorized
	DecisionRedirectLogin
	DecisionRedirectAdminHome
	DecisionRedirectPetugasHome
)

const (
	// LoginPath is where anonymous page requests are sent.
	LoginPath = "/login"
	// AdminHome is the landing page for admins.
	AdminHome = "/admin"
	// PetugasHome is the landing page for workers.
	PetugasHome = "/"
)

// Pages and API routes reachable without a session.
var (
	publicPages       = []string{LoginPath}
	publicAPIPrefixes = []string{"/api/auth/login", "/health/"}
)

// Path sets gating authenticated navigation. The two sets are disjoint;
// authenticated requests to paths in neither set are allowed as-is.
var (
	adminOnlyPrefixes   = []string{"/admin", "/laporan-admin", "/petugas"}
	petugasOnlyPrefixes = []string{"/riwayat", "/profil", "/buat-laporan"}
)

// Evaluate applies the access rules in order: public allow-list, anonymous
// handling (401 for API paths, login redirect for pages), then role-based
// home redirects for the admin-only and petugas-only path sets.
func Evaluate(path string, session *Session) Decision {
	for _, page := range publicPages {
		if path == page {
			return DecisionAllow
		}
	}
	for _, prefix := range publicAPIPrefixes {
		if strings.HasPrefix(path, prefix) {
			return DecisionAllow
		}
	}

	if session == nil {
		if strings.HasPrefix(path, "/api/") {
			return DecisionUnauthorized
		}
		return DecisionRedirectLogin
	}

	if session.Role == domain.RolePetugas && matchesAdminOnly(path) {
		return DecisionRedirectPetugasHome
	}
	if session.Role == domain.RoleAdmin && matchesPetugasOnly(path) {
		return DecisionRedirectAdminHome
	}
	return DecisionAllow
}

func matchesAdminOnly(path string) bool {
	for _, prefix := range adminOnlyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

func matchesPetugasOnly(path string) bool {
	// The worker dashboard lives at the root path itself.
	if path == PetugasHome {
		return true
	}
	for _, prefix := range petugasOnlyPrefixes {
		if strings.HasPrefix(path, prefix) {
			return true
		}
	}
	return false
}

// RouteGuard enforces Evaluate decisions on every request. Login redirects
// preserve the originally requested path as a return hint.
func RouteGuard() fiber.Handler {
	return func(c *fiber.Ctx) error {
		session, _ := SessionFromContext(c)
		switch Evaluate(c.Path(), session) {
		case DecisionUnauthorized:
			return apperrors.NewUnauthorized("otentikasi diperlukan")
		case DecisionRedirectLogin:
			return c.Redirect(LoginPath+"?from="+url.QueryEscape(c.Path()), fiber.StatusFound)
		case DecisionRedirectAdminHome:
			return c.Redirect(AdminHome, fiber.StatusFound)
		case DecisionRedirectPetugasHome:
			return c.Redirect(PetugasHome, fiber.StatusFound)
		default:
			return c.Next()
		}
	}
}
