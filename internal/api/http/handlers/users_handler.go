package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/api/dto"
	"github.com/spec-kit/nmt-console/internal/domain"
	"github.com/spec-kit/nmt-console/internal/service"
	apperrors "github.com/spec-kit/nmt-console/pkg/util"
)

// UsersHandler exposes account administration and the session audit trail.
type UsersHandler struct {
	audit *service.AuditService
}

// NewUsersHandler constructs handler.
func NewUsersHandler(audit *service.AuditService) *UsersHandler {
	return &UsersHandler{audit: audit}
}

// ListUsers handles GET /console/api/users.
func (h *UsersHandler) ListUsers(c *fiber.Ctx) error {
	status := domain.UserStatus(c.Query("status"))
	switch status {
	case "", domain.UserStatusPending, domain.UserStatusActive, domain.UserStatusRejected:
	default:
		return apperrors.NewBadRequest("unknown user status")
	}
	users, err := backend(c).ListUsers(c.UserContext(), status)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": users})
}

// ApproveUser handles POST /console/api/users/:id/approve.
func (h *UsersHandler) ApproveUser(c *fiber.Ctx) error {
	user, err := backend(c).ApproveUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// RejectUser handles POST /console/api/users/:id/reject.
func (h *UsersHandler) RejectUser(c *fiber.Ctx) error {
	user, err := backend(c).RejectUser(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// UpdateUserRole handles PATCH /console/api/users/:id/role.
func (h *UsersHandler) UpdateUserRole(c *fiber.Ctx) error {
	var req dto.UpdateUserRoleRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if err := validateRequest(req); err != nil {
		return err
	}
	user, err := backend(c).UpdateUserRole(c.UserContext(), c.Params("id"), domain.Role(req.Role))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": user})
}

// Audit handles GET /console/api/audit.
func (h *UsersHandler) Audit(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return apperrors.NewBadRequest("limit must be a non-negative integer")
		}
		limit = n
	}
	if h.audit == nil || !h.audit.Enabled() {
		return apperrors.NewServiceUnavailable("audit trail is not configured")
	}

	entries, err := h.audit.Recent(c.UserContext(), c.Query("user_id"), limit)
	if err != nil {
		return err
	}
	out := make([]fiber.Map, 0, len(entries))
	for _, e := range entries {
		out = append(out, fiber.Map{
			"id":          e.ID,
			"action":      e.Action,
			"user_id":     e.UserID,
			"username":    e.Username,
			"role":        e.Role,
			"remote_addr": e.RemoteAddr,
			"detail":      e.Detail,
			"occurred_at": e.OccurredAt.Format(time.RFC3339),
		})
	}
	return c.JSON(fiber.Map{"data": out})
}
