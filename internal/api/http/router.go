package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/field-report-service/internal/api/http/handlers"
	"github.com/spec-kit/field-report-service/internal/auth"
	"github.com/spec-kit/field-report-service/internal/domain"
)

// RouteConfig bundles everything the router needs.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Reports   *handlers.ReportsHandler
	Users     *handlers.UsersHandler
	Profile   *handlers.ProfileHandler
	Dashboard *handlers.DashboardHandler

	Sessions     *auth.SessionResolver
	LoginLimiter fiber.Handler
}

// RegisterRoutes wires the HTTP surface. Health probes sit before the session
// chain; everything else passes through the resolver and the route guard.
func RegisterRoutes(app *fiber.App, rc RouteConfig) {
	app.Get("/health/live", rc.Health.Live)
	app.Get("/health/ready", rc.Health.Ready)

	app.Use(rc.Sessions.Handle)
	app.Use(auth.RouteGuard())

	api := app.Group("/api")

	authGroup := api.Group("/auth")
	if rc.LoginLimiter != nil {
		authGroup.Post("/login", rc.LoginLimiter, rc.Auth.Login)
	} else {
		authGroup.Post("/login", rc.Auth.Login)
	}
	authGroup.Post("/logout", rc.Auth.Logout)

	laporan := api.Group("/laporan", auth.RequireSession())
	laporan.Post("/", rc.Reports.Create)
	laporan.Get("/:id", rc.Reports.Get)
	laporan.Patch("/:id/review", rc.Reports.Review)

	api.Get("/getalllaporan", auth.RequireSession(), rc.Reports.ListAll)

	api.Get("/petugas/dashboard", auth.RequireRole(domain.RolePetugas), rc.Dashboard.Get)

	users := api.Group("/users", auth.RequireRole(domain.RoleAdmin))
	users.Post("/", rc.Users.Create)
	users.Get("/", rc.Users.List)
	users.Get("/:id", rc.Users.Get)
	users.Patch("/:id", rc.Users.Update)
	users.Delete("/:id", rc.Users.Delete)
	users.Patch("/:id/reset-password", rc.Users.ResetPassword)

	profil := api.Group("/profil", auth.RequireSession())
	profil.Get("/", rc.Profile.Get)
	profil.Patch("/data", rc.Profile.UpdateData)
	profil.Patch("/password", rc.Profile.UpdatePassword)
}
