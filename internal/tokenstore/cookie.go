package tokenstore

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// CookieOptions controls the attributes of written cookies.
type CookieOptions struct {
	Domain string
	Secure bool
	// MaxAge is the lifetime of persistent cookies. Zero writes session cookies.
	MaxAge time.Duration
}

// CookieBackend stores values as cookies on the current request/response.
// Writes are mirrored in an overlay so later reads in the same request see them.
type CookieBackend struct {
	c       *fiber.Ctx
	prefix  string
	opts    CookieOptions
	overlay map[string]*string
}

// NewDurableCookies returns the backend used for remembered tokens.
func NewDurableCookies(c *fiber.Ctx, opts CookieOptions) *CookieBackend {
	return &CookieBackend{c: c, prefix: "local_", opts: opts, overlay: map[string]*string{}}
}

// NewSessionCookies returns the backend that lives until the browser closes.
func NewSessionCookies(c *fiber.Ctx, opts CookieOptions) *CookieBackend {
	opts.MaxAge = 0
	return &CookieBackend{c: c, prefix: "session_", opts: opts, overlay: map[string]*string{}}
}

// CookieName returns the cookie that holds key in this backend.
func (b *CookieBackend) CookieName(key string) string {
	return b.prefix + key
}

func (b *CookieBackend) Get(key string) (string, bool) {
	if val, ok := b.overlay[key]; ok {
		if val == nil {
			return "", false
		}
		return *val, true
	}
	val := b.c.Cookies(b.CookieName(key))
	if val == "" {
		return "", false
	}
	return val, true
}

func (b *CookieBackend) Set(key, value string) {
	b.overlay[key] = &value
	cookie := b.cookie(key, value)
	if b.opts.MaxAge > 0 {
		cookie.MaxAge = int(b.opts.MaxAge / time.Second)
		cookie.Expires = time.Now().Add(b.opts.MaxAge)
	} else {
		cookie.SessionOnly = true
	}
	b.c.Cookie(cookie)
}

func (b *CookieBackend) Remove(key string) {
	b.overlay[key] = nil
	cookie := b.cookie(key, "")
	cookie.Expires = time.Unix(0, 0)
	b.c.Cookie(cookie)
}

func (b *CookieBackend) cookie(key, value string) *fiber.Cookie {
	return &fiber.Cookie{
		Name:     b.CookieName(key),
		Value:    value,
		Path:     "/",
		Domain:   b.opts.Domain,
		Secure:   b.opts.Secure,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	}
}
