package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/domain"
)

const principalKey = "auth_principal"

// Principal represents the signed-in console user for the current request.
type Principal struct {
	Identity domain.Identity
	Token    string
}

// Role returns the principal's role.
func (p *Principal) Role() domain.Role {
	return p.Identity.Role
}

// SetPrincipal stores the principal on the request.
func SetPrincipal(c *fiber.Ctx, principal *Principal) {
	c.Locals(principalKey, principal)
}

// PrincipalFromContext retrieves the authenticated user.
func PrincipalFromContext(c *fiber.Ctx) (*Principal, bool) {
	val := c.Locals(principalKey)
	if val == nil {
		return nil, false
	}
	principal, ok := val.(*Principal)
	return principal, ok && principal != nil
}
