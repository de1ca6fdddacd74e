package middleware

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logisco/courierfront/internal/core/domain"
)

// SessionKey holds the *domain.Session loaded by Session.
const SessionKey = "session"

// SessionLoader loads the session behind a token's sid claim.
type SessionLoader interface {
	Resolve(ctx context.Context, sessionID string) (*domain.Session, error)
}

// Session loads the session named by the sid claim set by Auth. Tokens
// whose session was logged out or expired from the store are rejected
// before any per-session state is touched.
func Session(sessions SessionLoader) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid, _ := c.Get(SessionIDKey).(string)
			if sid == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing authentication claims")
			}
			sess, err := sessions.Resolve(c.Request().Context(), sid)
			if err != nil {
				return err
			}
			c.Set(SessionKey, sess)
			return next(c)
		}
	}
}
