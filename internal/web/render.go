// Package web renders the console's HTML pages.
package web

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"

	"github.com/gofiber/fiber/v2"
)

//go:embed templates/*.html
var templateFS embed.FS

var pages = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Page names.
const (
	PageLogin     = "login.html"
	PageRegister  = "register.html"
	PageDashboard = "dashboard.html"
	PageWaiting   = "waiting.html"
)

// Render writes the named page with status.
func Render(c *fiber.Ctx, status int, page string, data any) error {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, page, data); err != nil {
		return fmt.Errorf("render %s: %w", page, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(status).Send(buf.Bytes())
}

// LoginView feeds the login page.
type LoginView struct {
	Username   string
	Next       string
	Expired    bool
	Registered bool
	Error      string
	Fields     map[string]string
}

// RegisterView feeds the registration page.
type RegisterView struct {
	Username string
	Email    string
	Role     string
	Roles    []string
	Error    string
	Fields   map[string]string
}

// DashboardView feeds the dashboard.
type DashboardView struct {
	Username         string
	Role             string
	ExpiresAt        string
	IsReleaseManager bool
	IsAdmin          bool
}
