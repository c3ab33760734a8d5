package auth

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/domain"
)

// RequireRole ensures the principal holds at least the given role.
func RequireRole(min domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFromContext(c)
		if !ok {
			return fiber.NewError(http.StatusUnauthorized, http.StatusText(http.StatusUnauthorized))
		}
		if !principal.Role().AtLeast(min) {
			return fiber.NewError(http.StatusForbidden, "insufficient role")
		}
		return c.Next()
	}
}

// RequireReleaseManager gates release management actions.
func RequireReleaseManager() fiber.Handler {
	return RequireRole(domain.RoleReleaseManager)
}

// RequireAdmin gates user administration.
func RequireAdmin() fiber.Handler {
	return RequireRole(domain.RoleAdmin)
}
