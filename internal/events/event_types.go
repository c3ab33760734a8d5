package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/spec-kit/nmt-console/internal/domain"
)

// EventType enumerates supported event identifiers.
type EventType string

const (
	EventSessionLogin       EventType = "session_login"
	EventSessionLoginFailed EventType = "session_login_failed"
	EventSessionLogout      EventType = "session_logout"
	EventSessionExpired     EventType = "session_expired"
)

// Actor identifies who the session belongs to.
type Actor struct {
	UserID   string      `json:"user_id,omitempty"`
	Username string      `json:"username,omitempty"`
	Role     domain.Role `json:"role,omitempty"`
}

// Event represents a session transition emitted by the console.
type Event struct {
	ID         string    `json:"id"`
	Type       EventType `json:"type"`
	Actor      Actor     `json:"actor"`
	RemoteAddr string    `json:"remote_addr,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
	Payload    any       `json:"payload,omitempty"`
}

// NewEvent stamps an event with a fresh id and the current time.
func NewEvent(eventType EventType, actor Actor, payload any) Event {
	return Event{
		ID:        uuid.NewString(),
		Type:      eventType,
		Actor:     actor,
		Timestamp: time.Now().UTC(),
		Payload:   payload,
	}
}

// LoginPayload payload.
type LoginPayload struct {
	Remember bool `json:"remember"`
}

// LoginFailedPayload payload.
type LoginFailedPayload struct {
	Reason string `json:"reason"`
}

// SessionExpiredPayload payload.
type SessionExpiredPayload struct {
	Trigger string `json:"trigger"`
}
