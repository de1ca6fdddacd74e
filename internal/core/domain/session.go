package domain

import (
	"errors"
	"time"
)

const (
	RoleGuest = "guest"
	RoleUser  = "USER"
	RoleAdmin = "ADMIN"
)

var (
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrForbidden          = errors.New("access forbidden")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrIdentityRequired   = errors.New("identity verification required")
)

// Session is the server-side state behind one bearer token.
type Session struct {
	ID           string    `json:"id"`
	Role         string    `json:"role"`
	UserID       int64     `json:"user_id,omitempty"`
	Username     string    `json:"username,omitempty"`
	BackendToken string    `json:"backend_token,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Verified reports whether the session carries a backend identity.
func (s *Session) Verified() bool {
	return s != nil && s.UserID != 0 && s.BackendToken != ""
}

// LandingPath is where a freshly authenticated user is sent.
func (s *Session) LandingPath() string {
	if s.Role == RoleAdmin {
		return "/admin"
	}
	return "/dashboard"
}
