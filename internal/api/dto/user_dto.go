package dto

import (
	"strings"
	"time"

	"github.com/spec-kit/nmt-console/internal/domain"
)

// LoginForm is posted by the login page.
type LoginForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Password string `form:"password" json:"password" validate:"required"`
	Remember string `form:"remember" json:"remember"`
	Next     string `form:"next" json:"next"`
}

// Remembered reports whether the "remember me" box was ticked.
func (f LoginForm) Remembered() bool {
	switch strings.ToLower(f.Remember) {
	case "on", "true", "1", "yes":
		return true
	}
	return false
}

// RegisterForm is posted by the registration page.
type RegisterForm struct {
	Username string `form:"username" json:"username" validate:"required"`
	Email    string `form:"email" json:"email" validate:"required,email"`
	Password string `form:"password" json:"password" validate:"required"`
	Role     string `form:"role" json:"role" validate:"omitempty,oneof=member release_manager admin"`
}

// UpdateUserRoleRequest changes a user's role.
type UpdateUserRoleRequest struct {
	Role string `json:"role" validate:"required,oneof=member release_manager admin"`
}

// SessionResponse describes the caller's session to the browser.
type SessionResponse struct {
	Authenticated    bool        `json:"authenticated"`
	UserID           string      `json:"user_id,omitempty"`
	Username         string      `json:"username,omitempty"`
	Role             domain.Role `json:"role,omitempty"`
	ExpiresAt        *time.Time  `json:"expires_at,omitempty"`
	IsReleaseManager bool        `json:"is_release_manager"`
	IsAdmin          bool        `json:"is_admin"`
	Remembered       bool        `json:"remembered"`
}
