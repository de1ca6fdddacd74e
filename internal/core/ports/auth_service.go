package ports

import (
	"context"

	"github.com/logisco/courierfront/internal/core/domain"
)

// RegisterInput carries the sign-up form.
type RegisterInput struct {
	FullName        string
	Username        string
	Email           string
	PhoneNumber     string
	Password        string
	ConfirmPassword string
}

// AuthService manages sessions and proxies authentication to the backend.
type AuthService interface {
	StartGuest(ctx context.Context) (string, *domain.Session, error)
	Login(ctx context.Context, username, password string) (string, *domain.Session, error)
	Register(ctx context.Context, input RegisterInput) error
	Logout(ctx context.Context, sessionID string) error
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}
