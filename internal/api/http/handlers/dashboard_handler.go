package handlers

import (
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/api/dto"
	"github.com/spec-kit/nmt-console/internal/console"
	"github.com/spec-kit/nmt-console/internal/web"
)

// DashboardHandler serves the signed-in landing page and the session view.
type DashboardHandler struct{}

// NewDashboardHandler constructs handler.
func NewDashboardHandler() *DashboardHandler {
	return &DashboardHandler{}
}

// Dashboard handles GET /dashboard.
func (h *DashboardHandler) Dashboard(c *fiber.Ctx) error {
	mgr := console.FromContext(c).Session
	identity, _ := mgr.Identity()
	return web.Render(c, http.StatusOK, web.PageDashboard, web.DashboardView{
		Username:         identity.Username,
		Role:             identity.Role.String(),
		ExpiresAt:        identity.ExpiresAt.Format(time.RFC1123),
		IsReleaseManager: mgr.IsReleaseManager(),
		IsAdmin:          mgr.IsAdmin(),
	})
}

// Session handles GET /console/api/session.
func (h *DashboardHandler) Session(c *fiber.Ctx) error {
	scope := console.FromContext(c)
	resp := dto.SessionResponse{
		Authenticated:    scope.Session.IsAuthenticated(),
		IsReleaseManager: scope.Session.IsReleaseManager(),
		IsAdmin:          scope.Session.IsAdmin(),
		Remembered:       scope.Store.IsRemembered(),
	}
	if identity, ok := scope.Session.Identity(); ok {
		expires := identity.ExpiresAt
		resp.UserID = identity.UserID
		resp.Username = identity.Username
		resp.Role = identity.Role
		resp.ExpiresAt = &expires
	}
	return c.JSON(fiber.Map{"data": resp})
}
