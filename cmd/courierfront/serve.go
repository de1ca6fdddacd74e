package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	_ "github.com/logisco/courierfront/docs"
	"github.com/logisco/courierfront/internal/api"
	"github.com/logisco/courierfront/internal/api/handler"
	"github.com/logisco/courierfront/internal/core/service"
	"github.com/logisco/courierfront/internal/infrastructure/backend"
	"github.com/logisco/courierfront/internal/infrastructure/db/redis"
	"github.com/logisco/courierfront/internal/infrastructure/geo"
	"github.com/logisco/courierfront/internal/pkg/config"
	"github.com/logisco/courierfront/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

var addrOverride string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&addrOverride, "addr", "", "Listen address (default :$PORT)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	// context cancelled on SIGINT/SIGTERM for graceful shutdown
	ctx, cancel := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  !cfg.IsProduction(),
		Service: "courierfront",
	})

	rdb, err := redis.Connect(ctx, redis.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer rdb.Close()

	// --- Adapters ---
	client := backend.NewClient(cfg.Backend.URL, cfg.Backend.Timeout, logger.Component("backend"))
	cache := redis.NewLookupCache(rdb, cfg.Lookup.CacheTTL)
	geocoder := geo.NewCachedGeocoder(
		geo.NewNominatim(cfg.Lookup.GeocoderURL, cfg.Lookup.UserAgent, cfg.Backend.Timeout),
		cache, logger.Component("geocoder"),
	)
	pincodes := geo.NewCachedPincodes(
		geo.NewPostalPincode(cfg.Lookup.PincodeURL, cfg.Backend.Timeout),
		cache, logger.Component("pincode"),
	)
	sessions := redis.NewSessionStore(rdb, cfg.SessionTTL)

	// --- Services ---
	pricing := service.NewPricingService(client, logger.Component("pricing"))
	wizardDeps := service.WizardDeps{
		Pricing:  pricing,
		Pincodes: pincodes,
		Backend:  client,
		Log:      logger.Component("wizard"),
	}
	trackingCfg := service.TrackingConfig{
		PollInterval: cfg.Tracking.PollInterval,
		MaxWaypoints: cfg.Tracking.MaxWaypoints,
	}
	trackingLog := logger.Component("tracking")
	pages := service.NewWorkspaces(func() *service.Workspace {
		return &service.Workspace{
			Booking:  service.NewWizard(wizardDeps),
			Tracking: service.NewTrackingPage(client, geocoder, trackingCfg, trackingLog),
		}
	}, logger.Component("workspaces"))
	defer pages.CloseAll()

	auth := service.NewAuthService(client, sessions, pages, cfg.JWTSecret, cfg.SessionTTL, logger.Component("auth"))

	e := api.NewRouter(api.Deps{
		Auth:      auth,
		Pages:     pages,
		Booking:   service.NewBookingService(client, auth, logger.Component("booking")),
		Tracking:  service.NewTrackingService(client, trackingLog),
		Dashboard: service.NewDashboardService(client, logger.Component("dashboard")),
		Checks: map[string]handler.Check{
			"redis":   func(ctx context.Context) error { return rdb.Ping(ctx).Err() },
			"backend": client.Ping,
		},
		JWTSecret: cfg.JWTSecret,
		Log:       log,
	})

	go sweepIdle(ctx, pages, cfg.PageIdleTTL)

	addr := addrOverride
	if addr == "" {
		addr = ":" + cfg.Port
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Str("backend", cfg.Backend.URL).Msg("courierfront listening")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancelShutdown()
	if err := e.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http shutdown: %w", err)
	}
	return nil
}

// sweepIdle evicts idle page state until ctx ends.
func sweepIdle(ctx context.Context, pages *service.Workspaces, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(idle / 2)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			pages.Sweep(idle)
		}
	}
}
