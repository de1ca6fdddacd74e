package ports

import (
	"context"

	"github.com/logisco/courierfront/internal/core/domain"
)

// Geocoder resolves free-text addresses to coordinates.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (domain.Coordinates, error)
}

// PincodeLookup resolves a six-digit postal code to its locality.
type PincodeLookup interface {
	Lookup(ctx context.Context, pincode string) (domain.PincodeInfo, error)
}

// LookupCache stores idempotent lookup results. Get reports whether dst
// was filled from the cache.
type LookupCache interface {
	Get(ctx context.Context, namespace, key string, dst any) (bool, error)
	Set(ctx context.Context, namespace, key string, value any) error
}

// SessionStore persists sessions between requests.
type SessionStore interface {
	Get(ctx context.Context, id string) (*domain.Session, error)
	Save(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, id string) error
}
