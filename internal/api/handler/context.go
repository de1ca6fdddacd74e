package handler

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logisco/courierfront/internal/api/middleware"
	"github.com/logisco/courierfront/internal/core/domain"
)

// SessionResolver loads the session behind a token's sid claim.
type SessionResolver interface {
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}

// ctxSessionID extracts the session id injected by the Auth middleware.
// Its presence proves the middleware ran.
func ctxSessionID(c echo.Context) (string, error) {
	sid, _ := c.Get(middleware.SessionIDKey).(string)
	if sid == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
	}
	return sid, nil
}

// ctxSession returns the session loaded by the Session middleware, or
// resolves it when the route runs without one. A token whose session
// expired from the store is treated as logged out.
func ctxSession(c echo.Context, sessions SessionResolver) (*domain.Session, error) {
	if sess, ok := c.Get(middleware.SessionKey).(*domain.Session); ok && sess != nil {
		return sess, nil
	}
	sid, err := ctxSessionID(c)
	if err != nil {
		return nil, err
	}
	return sessions.Resolve(c.Request().Context(), sid)
}
