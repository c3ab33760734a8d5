// Package session derives the console session from the stored bearer token
// and owns the login and logout transitions.
package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/spec-kit/nmt-console/internal/auth"
	"github.com/spec-kit/nmt-console/internal/domain"
	"github.com/spec-kit/nmt-console/internal/events"
	"github.com/spec-kit/nmt-console/internal/tokenstore"
)

// Authenticator exchanges credentials for a bearer token.
type Authenticator interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// Credentials are what the login form submits.
type Credentials struct {
	Username string
	Password string
}

// Session is the in-memory view of the signed-in user.
type Session struct {
	Identity      *domain.Identity
	Role          domain.Role
	Authenticated bool
	Loading       bool
}

// Dependencies wires a Manager.
type Dependencies struct {
	Store       *tokenstore.Store
	API         Authenticator
	Navigator   *Navigator
	Revocations *auth.Revocations
	Dispatcher  events.Dispatcher
	Logger      *zap.Logger
	Now         func() time.Time
	// RemoteAddr and Requested describe the request the manager serves.
	RemoteAddr string
	Requested  string
}

// Manager is the session state machine for one request.
type Manager struct {
	deps     Dependencies
	state    auth.SessionState
	identity *domain.Identity
	claims   *auth.Claims
	token    string
}

// NewManager returns a manager in the Loading state.
func NewManager(deps Dependencies) *Manager {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Navigator == nil {
		deps.Navigator = &Navigator{}
	}
	return &Manager{deps: deps, state: auth.StateLoading}
}

// Init hydrates the session from the stored token without calling the backend.
// Any problem with the stored token is an implicit logout, never an error.
func (m *Manager) Init(ctx context.Context) {
	token, ok := m.deps.Store.Token()
	if !ok {
		m.state = auth.StateUnauthenticated
		return
	}

	identity, claims, err := auth.ParseIdentity(token, m.deps.Now())
	if err == nil {
		err = m.checkRevoked(ctx, token)
	}
	if err != nil {
		m.deps.Logger.Debug("discarding stored token", zap.Error(err))
		m.deps.Store.ClearToken()
		m.clear()
		if errors.Is(err, auth.ErrTokenExpired) && claims != nil {
			m.publish(ctx, events.EventSessionExpired, actorFromClaims(claims), events.SessionExpiredPayload{Trigger: "startup"})
		}
		return
	}

	m.set(identity, claims, token)
}

var errTokenRevoked = errors.New("token revoked")

// ErrLoginTokenRejected wraps the reason a token issued at login was unusable.
var ErrLoginTokenRejected = errors.New("login token rejected")

func (m *Manager) checkRevoked(ctx context.Context, token string) error {
	revoked, err := m.deps.Revocations.IsRevoked(ctx, token)
	if err != nil {
		m.deps.Logger.Warn("revocation lookup failed", zap.Error(err))
		return nil
	}
	if revoked {
		return errTokenRevoked
	}
	return nil
}

// Login submits credentials and, when the returned token is usable, persists it.
// Errors are returned unchanged so the caller can render them.
func (m *Manager) Login(ctx context.Context, creds Credentials, remember bool) error {
	prev := m.state
	m.state = auth.StateLoading

	token, err := m.deps.API.Login(ctx, creds.Username, creds.Password)
	if err != nil {
		m.state = prev
		m.loginFailed(ctx, creds.Username, err)
		return err
	}

	identity, claims, err := auth.ParseIdentity(token, m.deps.Now())
	if err != nil {
		m.state = prev
		m.loginFailed(ctx, creds.Username, err)
		return fmt.Errorf("%w: %w", ErrLoginTokenRejected, err)
	}

	m.deps.Store.SetToken(token, remember)
	m.set(identity, claims, token)

	m.deps.Logger.Info("session started",
		zap.String("user_id", identity.UserID),
		zap.String("role", identity.Role.String()),
		zap.Bool("remember", remember))
	m.publish(ctx, events.EventSessionLogin, actorFromIdentity(identity), events.LoginPayload{Remember: remember})
	return nil
}

// Logout ends the session at the user's request.
func (m *Manager) Logout(ctx context.Context) {
	m.end(ctx, false)
}

// ExpireLogout ends the session because the backend rejected its token.
func (m *Manager) ExpireLogout(ctx context.Context) {
	m.end(ctx, true)
}

func (m *Manager) end(ctx context.Context, expired bool) {
	var actor events.Actor
	if m.identity != nil {
		actor = actorFromIdentity(*m.identity)
	}
	if m.claims != nil && m.claims.ExpiresAt != nil {
		if err := m.deps.Revocations.Revoke(ctx, m.token, m.claims.ExpiresAt.Time); err != nil {
			m.deps.Logger.Warn("token revocation failed", zap.Error(err))
		}
	}

	m.deps.Store.ClearToken()
	m.clear()

	if expired {
		m.deps.Logger.Info("session expired", zap.String("user_id", actor.UserID))
		m.publish(ctx, events.EventSessionExpired, actor, events.SessionExpiredPayload{Trigger: "unauthorized_response"})
		m.deps.Navigator.Navigate(LoginLocation(m.deps.Requested, true))
		return
	}

	m.deps.Logger.Info("session ended", zap.String("user_id", actor.UserID))
	m.publish(ctx, events.EventSessionLogout, actor, nil)
	m.deps.Navigator.Navigate(LoginLocation("", false))
}

// State returns the current lifecycle state.
func (m *Manager) State() auth.SessionState {
	return m.state
}

// Session returns a copy of the current session view.
func (m *Manager) Session() Session {
	s := Session{
		Authenticated: m.state == auth.StateAuthenticated,
		Loading:       m.state == auth.StateLoading,
	}
	if m.identity != nil {
		identity := *m.identity
		s.Identity = &identity
		s.Role = identity.Role
	}
	return s
}

// Identity returns the signed-in user.
func (m *Manager) Identity() (domain.Identity, bool) {
	if m.identity == nil {
		return domain.Identity{}, false
	}
	return *m.identity, true
}

// Token returns the bearer token of the current session.
func (m *Manager) Token() string {
	return m.token
}

func (m *Manager) IsAuthenticated() bool {
	return m.state == auth.StateAuthenticated
}

func (m *Manager) IsReleaseManager() bool {
	return m.IsAuthenticated() && m.identity.Role.IsReleaseManager()
}

func (m *Manager) IsAdmin() bool {
	return m.IsAuthenticated() && m.identity.Role.IsAdmin()
}

// Navigator returns the navigator the manager reports to.
func (m *Manager) Navigator() *Navigator {
	return m.deps.Navigator
}

func (m *Manager) set(identity domain.Identity, claims *auth.Claims, token string) {
	m.identity = &identity
	m.claims = claims
	m.token = token
	m.state = auth.StateAuthenticated
}

func (m *Manager) clear() {
	m.identity = nil
	m.claims = nil
	m.token = ""
	m.state = auth.StateUnauthenticated
}

func (m *Manager) loginFailed(ctx context.Context, username string, err error) {
	m.deps.Logger.Info("login failed", zap.String("username", username), zap.Error(err))
	m.publish(ctx, events.EventSessionLoginFailed, events.Actor{Username: username}, events.LoginFailedPayload{Reason: err.Error()})
}

func (m *Manager) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload any) {
	if m.deps.Dispatcher == nil {
		return
	}
	event := events.NewEvent(eventType, actor, payload)
	event.RemoteAddr = m.deps.RemoteAddr
	if err := m.deps.Dispatcher.Publish(ctx, event); err != nil {
		m.deps.Logger.Warn("session event handler failed", zap.String("event", string(eventType)), zap.Error(err))
	}
}

func actorFromIdentity(identity domain.Identity) events.Actor {
	return events.Actor{UserID: identity.UserID, Username: identity.Username, Role: identity.Role}
}

func actorFromClaims(claims *auth.Claims) events.Actor {
	return actorFromIdentity(claims.Identity())
}
