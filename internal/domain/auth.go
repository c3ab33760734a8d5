package domain

import "time"

// Identity is the user derived from a decoded bearer token.
type Identity struct {
	UserID    string
	Username  string
	Role      Role
	ExpiresAt time.Time
}

// AuditEntry records one session transition observed by the console.
type AuditEntry struct {
	ID         string
	Action     string
	UserID     string
	Username   string
	Role       Role
	RemoteAddr string
	Detail     string
	OccurredAt time.Time
}
