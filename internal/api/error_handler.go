package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/handler"
	"github.com/logisco/courierfront/internal/core/domain"
)

const loginPath = "/login"

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their appropriate HTTP status codes.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"error": "<message>", ...}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		code, body := resolveError(err, log, c)
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(code)
			return
		}
		_ = c.JSON(code, body)
	}
}

func resolveError(err error, log zerolog.Logger, c echo.Context) (int, handler.ErrorEnvelope) {
	// Echo's own errors (bind failures, 404 from router, auth middleware, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		body := handler.ErrorEnvelope{Error: fmt.Sprintf("%v", he.Message)}
		if he.Code == http.StatusUnauthorized {
			body.Redirect = loginPath
		}
		return he.Code, body
	}

	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		return http.StatusUnprocessableEntity, handler.ErrorEnvelope{Error: "validation failed", Fields: ve.Fields}
	}

	// Known domain errors → deterministic HTTP codes.
	switch {
	case errors.Is(err, domain.ErrIdentityRequired):
		return http.StatusPreconditionRequired, handler.ErrorEnvelope{Error: err.Error(), OTPRequired: true}
	case errors.Is(err, domain.ErrShipmentNotFound):
		return http.StatusNotFound, handler.ErrorEnvelope{Error: "Shipment not found"}
	case errors.Is(err, domain.ErrSessionNotFound), errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, handler.ErrorEnvelope{Error: "session expired", Redirect: loginPath}
	case errors.Is(err, domain.ErrInvalidCredentials):
		return http.StatusUnauthorized, handler.ErrorEnvelope{Error: "invalid credentials"}
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, handler.ErrorEnvelope{Error: "access forbidden"}
	case errors.Is(err, domain.ErrWrongStep):
		return http.StatusConflict, handler.ErrorEnvelope{Error: err.Error()}
	}

	// User-facing alerts: client mistakes the backend rejected are 422,
	// everything else is an upstream failure.
	var ae *domain.AlertError
	if errors.As(err, &ae) {
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status < http.StatusInternalServerError {
			return http.StatusUnprocessableEntity, handler.ErrorEnvelope{Error: ae.Message}
		}
		logUpstream(log, c, err)
		return http.StatusBadGateway, handler.ErrorEnvelope{Error: ae.Message}
	}

	var be *domain.BackendError
	if errors.As(err, &be) {
		logUpstream(log, c, err)
		return http.StatusBadGateway, handler.ErrorEnvelope{Error: "courier backend unavailable"}
	}

	// Unexpected error: log the real cause, return a generic message.
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("unhandled error")

	return http.StatusInternalServerError, handler.ErrorEnvelope{Error: "internal server error"}
}

func logUpstream(log zerolog.Logger, c echo.Context, err error) {
	log.Warn().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Msg("upstream failure")
}
