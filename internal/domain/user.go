package domain

import "time"

// UserStatus represents the approval lifecycle of a console account.
type UserStatus string

const (
	UserStatusPending  UserStatus = "pending"
	UserStatusActive   UserStatus = "active"
	UserStatusRejected UserStatus = "rejected"
)

// User is an account as reported by the release backend.
type User struct {
	ID            string     `json:"id"`
	Username      string     `json:"username"`
	Email         string     `json:"email"`
	Role          Role       `json:"role"`
	RequestedRole Role       `json:"requested_role,omitempty"`
	Status        UserStatus `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
}
