package api

import (
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	"github.com/logisco/courierfront/internal/api/handler"
	"github.com/logisco/courierfront/internal/api/middleware"
	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
	"github.com/logisco/courierfront/internal/core/service"
)

// Deps are the collaborators the HTTP API is built from.
type Deps struct {
	Auth      ports.AuthService
	Pages     handler.Pages
	Booking   *service.BookingService
	Tracking  *service.TrackingService
	Dashboard *service.DashboardService
	Checks    map[string]handler.Check
	JWTSecret string
	Log       zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(d Deps) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(d.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(d.Log))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(d.Auth)
	bookingHandler := handler.NewBookingHandler(d.Auth, d.Pages, d.Booking)
	trackingHandler := handler.NewTrackingHandler(d.Pages, d.Tracking)
	liveHandler := handler.NewLiveHandler(d.Pages, d.Log)
	dashboardHandler := handler.NewDashboardHandler(d.Auth, d.Dashboard)
	authMiddleware := middleware.Auth(d.JWTSecret)

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(d.Checks)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	v1 := e.Group("/v1")

	// --- Session and auth ---
	v1.POST("/session", authHandler.StartSession)
	v1.POST("/auth/login", authHandler.Login)
	v1.POST("/auth/register", authHandler.Register)

	authed := v1.Group("", authMiddleware)
	authed.POST("/auth/logout", authHandler.Logout)

	// Everything below needs a session that is still in the store.
	live := authed.Group("", middleware.Session(d.Auth))
	live.POST("/auth/otp/request", bookingHandler.RequestOTP)
	live.POST("/auth/otp/verify", bookingHandler.VerifyOTP)

	// --- Booking wizard ---
	booking := live.Group("/booking")
	booking.GET("", bookingHandler.View)
	booking.POST("/advance", bookingHandler.Advance)
	booking.POST("/retreat", bookingHandler.Retreat)
	booking.POST("/reset", bookingHandler.Reset)
	booking.POST("/select", bookingHandler.Select)
	booking.POST("/pincode", bookingHandler.Pincode)
	booking.POST("/submit", bookingHandler.Submit)

	// --- Tracking ---
	tracking := live.Group("/tracking")
	tracking.POST("", trackingHandler.Lookup)
	tracking.GET("", trackingHandler.Snapshot)
	tracking.DELETE("", trackingHandler.Stop)
	tracking.GET("/live", liveHandler.Stream)

	// --- Dashboard ---
	live.GET("/dashboard", dashboardHandler.Overview, middleware.RBAC(domain.RoleUser, domain.RoleAdmin))

	return e
}

// requestLogger logs one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			ev := log.Info()
			if v.Error != nil {
				ev = log.Warn().Err(v.Error)
			}
			ev.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
