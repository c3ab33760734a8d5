package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/api/http/handlers"
	"github.com/spec-kit/nmt-console/internal/auth"
	"github.com/spec-kit/nmt-console/internal/console"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health    *handlers.HealthHandler
	Auth      *handlers.AuthHandler
	Dashboard *handlers.DashboardHandler
	Releases  *handlers.ReleasesHandler
	Users     *handlers.UsersHandler
	Scope     *console.Builder
}

// RegisterRoutes wires HTTP routes. Order matters: public pages are
// registered before the session guard so it never runs for them.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)
	app.Get("/metrics", cfg.Health.Metrics)

	web := app.Group("", cfg.Scope.Middleware())
	web.Get("/login", cfg.Auth.LoginPage)
	web.Post("/login", cfg.Auth.Login)
	web.Get("/register", cfg.Auth.RegisterPage)
	web.Post("/register", cfg.Auth.Register)
	web.Post("/logout", cfg.Auth.Logout)

	protected := web.Group("", console.RequireSession())
	protected.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect(handlers.DashboardPath, fiber.StatusFound)
	})
	protected.Get(handlers.DashboardPath, cfg.Dashboard.Dashboard)

	api := protected.Group(console.APIPrefix)
	api.Get("/session", cfg.Dashboard.Session)

	api.Get("/language-pairs", cfg.Releases.ListLanguagePairs)
	api.Post("/language-pairs", auth.RequireReleaseManager(), cfg.Releases.CreateLanguagePair)
	api.Get("/models", cfg.Releases.ListModels)
	api.Post("/models", auth.RequireReleaseManager(), cfg.Releases.CreateModel)
	api.Patch("/models/:id/status", auth.RequireReleaseManager(), cfg.Releases.UpdateModelStatus)
	api.Post("/models/:id/artifacts", auth.RequireReleaseManager(), cfg.Releases.UploadModelArtifact)
	api.Get("/models/:id/artifacts/:name", cfg.Releases.DownloadModelArtifact)
	api.Get("/testsets", cfg.Releases.ListTestsets)
	api.Post("/testsets", auth.RequireReleaseManager(), cfg.Releases.UploadTestset)
	api.Get("/results", cfg.Releases.ListResults)

	admin := api.Group("", auth.RequireAdmin())
	admin.Get("/users", cfg.Users.ListUsers)
	admin.Post("/users/:id/approve", cfg.Users.ApproveUser)
	admin.Post("/users/:id/reject", cfg.Users.RejectUser)
	admin.Patch("/users/:id/role", cfg.Users.UpdateUserRole)
	admin.Get("/audit", cfg.Users.Audit)
}
