// Package console builds the per-request session scope: the token store over
// the browser's cookies, the session manager, the backend client and the
// navigator the other three report to.
package console

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/spec-kit/nmt-console/internal/apiclient"
	"github.com/spec-kit/nmt-console/internal/auth"
	"github.com/spec-kit/nmt-console/internal/config"
	"github.com/spec-kit/nmt-console/internal/events"
	"github.com/spec-kit/nmt-console/internal/session"
	"github.com/spec-kit/nmt-console/internal/tokenstore"
)

// APIPrefix is where the console's JSON surface lives.
const APIPrefix = "/console/api"

const scopeKey = "console_scope"

// Scope is everything one request needs to act on behalf of the browser.
type Scope struct {
	Store   *tokenstore.Store
	Session *session.Manager
	API     *apiclient.Client
	Nav     *session.Navigator
}

// Builder assembles scopes from shared dependencies.
type Builder struct {
	Factory     *apiclient.Factory
	Revocations *auth.Revocations
	Dispatcher  events.Dispatcher
	Session     config.SessionConfig
	Logger      *zap.Logger
	Now         func() time.Time
}

// Build wires a fresh scope for c. The session is still Loading.
func (b *Builder) Build(c *fiber.Ctx) *Scope {
	opts := tokenstore.CookieOptions{
		Domain: b.Session.CookieDomain,
		Secure: b.Session.CookieSecure,
		MaxAge: b.Session.RememberFor(),
	}
	store := tokenstore.New(tokenstore.NewDurableCookies(c, opts), tokenstore.NewSessionCookies(c, opts))
	nav := &session.Navigator{}

	scope := &Scope{Store: store, Nav: nav}
	scope.API = b.Factory.New(apiclient.Options{
		Tokens: store,
		OnUnauthorized: func(ctx context.Context) {
			scope.Session.ExpireLogout(ctx)
		},
	})
	scope.Session = session.NewManager(session.Dependencies{
		Store:       store,
		API:         scope.API,
		Navigator:   nav,
		Revocations: b.Revocations,
		Dispatcher:  b.Dispatcher,
		Logger:      b.Logger,
		Now:         b.Now,
		RemoteAddr:  c.IP(),
		Requested:   requestedPath(c),
	})
	return scope
}

// Middleware hydrates the session for every request and applies whatever
// navigation the handlers requested once they return.
func (b *Builder) Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scope := b.Build(c)
		scope.Session.Init(c.UserContext())
		if identity, ok := scope.Session.Identity(); ok {
			auth.SetPrincipal(c, &auth.Principal{Identity: identity, Token: scope.Session.Token()})
		}
		c.Locals(scopeKey, scope)

		err := c.Next()

		loc, ok := scope.Nav.Pending()
		if !ok {
			return err
		}
		if err != nil {
			b.logger().Debug("navigation supersedes handler error", zap.Error(err))
		}
		return Navigate(c, loc)
	}
}

func (b *Builder) logger() *zap.Logger {
	if b.Logger == nil {
		return zap.NewNop()
	}
	return b.Logger
}

// FromContext returns the scope built by Middleware.
func FromContext(c *fiber.Ctx) *Scope {
	scope, _ := c.Locals(scopeKey).(*Scope)
	return scope
}

// IsAPIRequest reports whether c targets the JSON surface.
func IsAPIRequest(c *fiber.Ctx) bool {
	return strings.HasPrefix(c.Path(), APIPrefix)
}

// ErrSessionExpired is reported to JSON callers whose session was forcibly ended.
var ErrSessionExpired = errors.New("session expired")

// Navigate applies loc to the response. Browsers are redirected; JSON callers
// receive the target in the body.
func Navigate(c *fiber.Ctx, loc session.Location) error {
	target := loc.URL()
	if IsAPIRequest(c) {
		if loc.Expired {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": fiber.Map{
					"code":    "SESSION_EXPIRED",
					"message": ErrSessionExpired.Error(),
					"details": fiber.Map{"redirect": target},
				},
			})
		}
		return c.JSON(fiber.Map{"redirect": target})
	}
	status := fiber.StatusFound
	if c.Method() != fiber.MethodGet && c.Method() != fiber.MethodHead {
		status = fiber.StatusSeeOther
	}
	return c.Redirect(target, status)
}

// requestedPath is where the browser was headed. For JSON calls that is the
// page that issued them.
func requestedPath(c *fiber.Ctx) string {
	if IsAPIRequest(c) {
		return refererPath(c.Get(fiber.HeaderReferer))
	}
	if c.Method() != fiber.MethodGet {
		return ""
	}
	return c.OriginalURL()
}

func refererPath(referer string) string {
	if referer == "" {
		return ""
	}
	u, err := url.Parse(referer)
	if err != nil {
		return ""
	}
	return auth.SafeNext(u.RequestURI(), "")
}
