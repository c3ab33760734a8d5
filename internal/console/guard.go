package console

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/auth"
	"github.com/spec-kit/nmt-console/internal/web"
)

// RequireSession gates protected routes on the session state.
func RequireSession() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := FromContext(c)
		state := auth.StateUnauthenticated
		if scope != nil {
			state = scope.Session.State()
		}

		requested := c.OriginalURL()
		if IsAPIRequest(c) {
			requested = requestedPath(c)
		}

		decision := auth.Guard(state, requested)
		switch decision.Kind {
		case auth.DecisionWait:
			c.Set(fiber.HeaderRetryAfter, "1")
			if IsAPIRequest(c) {
				return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
					"error": fiber.Map{"code": "SESSION_LOADING", "message": "session is loading"},
				})
			}
			return web.Render(c, fiber.StatusServiceUnavailable, web.PageWaiting, nil)
		case auth.DecisionRedirect:
			if IsAPIRequest(c) {
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": fiber.Map{
						"code":    "UNAUTHENTICATED",
						"message": "sign in required",
						"details": fiber.Map{"redirect": decision.Location},
					},
				})
			}
			return c.Redirect(decision.Location, fiber.StatusFound)
		}
		return c.Next()
	}
}
