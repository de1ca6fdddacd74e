package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const recentShipmentLimit = 5

// DashboardStats aggregates a user's shipments.
type DashboardStats struct {
	Total      int    `json:"total"`
	Active     int    `json:"active"`
	Delivered  int    `json:"delivered"`
	TotalSpent string `json:"total_spent"`
}

// Dashboard is the signed-in user's overview.
type Dashboard struct {
	Username string                  `json:"username"`
	Stats    DashboardStats          `json:"stats"`
	Recent   []domain.ShipmentRecord `json:"recent"`
}

type DashboardService struct {
	backend ports.TrackingBackend
	log     zerolog.Logger
}

func NewDashboardService(backend ports.TrackingBackend, log zerolog.Logger) *DashboardService {
	return &DashboardService{backend: backend, log: log}
}

// Overview lists the session user's shipments. Guests are rejected.
func (s *DashboardService) Overview(ctx context.Context, sess *domain.Session) (*Dashboard, error) {
	if !sess.Verified() {
		return nil, domain.ErrUnauthorized
	}

	records, err := s.backend.UserShipments(ctx, sess.BackendToken, sess.UserID)
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && (be.Status == http.StatusUnauthorized || be.Status == http.StatusForbidden) {
			return nil, fmt.Errorf("dashboard: %w", domain.ErrUnauthorized)
		}
		return nil, fmt.Errorf("dashboard: %w", err)
	}

	var (
		stats DashboardStats
		spent float64
	)
	stats.Total = len(records)
	for _, r := range records {
		if r.Status.Active() {
			stats.Active++
		}
		if r.Status == domain.StatusDelivered {
			stats.Delivered++
		}
		spent += r.TotalPrice
	}
	stats.TotalSpent = domain.FormatINR(spent)

	recent := records
	if len(recent) > recentShipmentLimit {
		recent = recent[:recentShipmentLimit]
	}
	return &Dashboard{
		Username: sess.Username,
		Stats:    stats,
		Recent:   append([]domain.ShipmentRecord{}, recent...),
	}, nil
}
