package handlers

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/nmt-console/internal/api/dto"
	"github.com/spec-kit/nmt-console/internal/apiclient"
	"github.com/spec-kit/nmt-console/internal/auth"
	"github.com/spec-kit/nmt-console/internal/console"
	"github.com/spec-kit/nmt-console/internal/domain"
	"github.com/spec-kit/nmt-console/internal/session"
	"github.com/spec-kit/nmt-console/internal/web"
	apperrors "github.com/spec-kit/nmt-console/pkg/util"
)

// DashboardPath is where a fresh session lands.
const DashboardPath = "/dashboard"

var registrableRoles = []string{
	domain.RoleMember.String(),
	domain.RoleReleaseManager.String(),
	domain.RoleAdmin.String(),
}

// AuthHandler serves the login, registration and logout pages.
type AuthHandler struct{}

// NewAuthHandler constructs handler.
func NewAuthHandler() *AuthHandler {
	return &AuthHandler{}
}

// LoginPage handles GET /login.
func (h *AuthHandler) LoginPage(c *fiber.Ctx) error {
	scope := console.FromContext(c)
	next := auth.SafeNext(c.Query("next"), "")
	if scope.Session.IsAuthenticated() {
		scope.Nav.Navigate(session.Location{Path: auth.SafeNext(next, DashboardPath)})
		return nil
	}
	return web.Render(c, http.StatusOK, web.PageLogin, web.LoginView{
		Next:       next,
		Expired:    c.Query("expired") == "1",
		Registered: c.Query("registered") == "1",
	})
}

// Login handles POST /login.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	scope := console.FromContext(c)

	var form dto.LoginForm
	if err := c.BodyParser(&form); err != nil {
		return web.Render(c, http.StatusBadRequest, web.PageLogin, web.LoginView{Error: "invalid form submission"})
	}
	view := web.LoginView{Username: form.Username, Next: auth.SafeNext(form.Next, "")}
	if fields := fieldErrors(form); fields != nil {
		view.Error = "enter your username and password"
		view.Fields = fields
		return web.Render(c, http.StatusUnprocessableEntity, web.PageLogin, view)
	}

	creds := session.Credentials{Username: form.Username, Password: form.Password}
	if err := scope.Session.Login(c.UserContext(), creds, form.Remembered()); err != nil {
		status, message, fields := loginFailure(err)
		view.Error = message
		view.Fields = fields
		return web.Render(c, status, web.PageLogin, view)
	}

	scope.Nav.Navigate(session.Location{Path: auth.SafeNext(form.Next, DashboardPath)})
	return nil
}

func loginFailure(err error) (int, string, map[string]string) {
	switch {
	case errors.Is(err, session.ErrLoginTokenRejected), errors.Is(err, apiclient.ErrEmptyToken):
		return http.StatusBadGateway, "the release backend issued an unusable token", nil
	case apiclient.IsKind(err, apiclient.KindUnauthorized):
		return http.StatusUnauthorized, "invalid username or password", nil
	}
	de := apperrors.ToDomainError(err)
	var fields map[string]string
	var apiErr *apiclient.Error
	if errors.As(err, &apiErr) {
		fields = apiErr.Fields
	}
	return de.HTTPStatus, de.Message, fields
}

// RegisterPage handles GET /register.
func (h *AuthHandler) RegisterPage(c *fiber.Ctx) error {
	return web.Render(c, http.StatusOK, web.PageRegister, web.RegisterView{
		Role:  domain.RoleMember.String(),
		Roles: registrableRoles,
	})
}

// Register handles POST /register.
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	scope := console.FromContext(c)

	var form dto.RegisterForm
	if err := c.BodyParser(&form); err != nil {
		return web.Render(c, http.StatusBadRequest, web.PageRegister, web.RegisterView{
			Roles: registrableRoles,
			Error: "invalid form submission",
		})
	}
	view := web.RegisterView{Username: form.Username, Email: form.Email, Role: form.Role, Roles: registrableRoles}
	if fields := fieldErrors(form); fields != nil {
		view.Error = "check the highlighted fields"
		view.Fields = fields
		return web.Render(c, http.StatusUnprocessableEntity, web.PageRegister, view)
	}

	_, err := scope.API.Register(c.UserContext(), apiclient.RegisterRequest{
		Username: form.Username,
		Email:    form.Email,
		Password: form.Password,
		Role:     domain.Role(form.Role),
	})
	if err != nil {
		de := apperrors.ToDomainError(err)
		view.Error = de.Message
		var apiErr *apiclient.Error
		if errors.As(err, &apiErr) {
			view.Fields = apiErr.Fields
		}
		return web.Render(c, de.HTTPStatus, web.PageRegister, view)
	}

	scope.Nav.Navigate(session.Location{Path: auth.LoginPath + "?registered=1"})
	return nil
}

// Logout handles POST /logout.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	console.FromContext(c).Session.Logout(c.UserContext())
	return nil
}
