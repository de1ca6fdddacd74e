package geo

import (
	"context"
	"strings"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/metrics"
	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const (
	geocodeNamespace = "geocode"
	pincodeNamespace = "pincode"
)

// CachedGeocoder serves repeated addresses from the lookup cache. Only
// successful answers are cached; cache failures fall through to the
// wrapped geocoder.
type CachedGeocoder struct {
	next  ports.Geocoder
	cache ports.LookupCache
	log   zerolog.Logger
}

var (
	_ ports.Geocoder      = (*CachedGeocoder)(nil)
	_ ports.PincodeLookup = (*CachedPincodes)(nil)
)

func NewCachedGeocoder(next ports.Geocoder, cache ports.LookupCache, log zerolog.Logger) *CachedGeocoder {
	return &CachedGeocoder{next: next, cache: cache, log: log}
}

func (g *CachedGeocoder) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	key := strings.ToLower(strings.TrimSpace(address))

	var hit domain.Coordinates
	if ok := cacheGet(ctx, g.cache, g.log, geocodeNamespace, key, &hit); ok {
		return hit, nil
	}

	c, err := g.next.Geocode(ctx, address)
	if err != nil {
		return domain.Coordinates{}, err
	}
	cacheSet(ctx, g.cache, g.log, geocodeNamespace, key, c)
	return c, nil
}

// CachedPincodes serves repeated pincodes from the lookup cache.
type CachedPincodes struct {
	next  ports.PincodeLookup
	cache ports.LookupCache
	log   zerolog.Logger
}

func NewCachedPincodes(next ports.PincodeLookup, cache ports.LookupCache, log zerolog.Logger) *CachedPincodes {
	return &CachedPincodes{next: next, cache: cache, log: log}
}

func (p *CachedPincodes) Lookup(ctx context.Context, pincode string) (domain.PincodeInfo, error) {
	var hit domain.PincodeInfo
	if ok := cacheGet(ctx, p.cache, p.log, pincodeNamespace, pincode, &hit); ok {
		return hit, nil
	}

	info, err := p.next.Lookup(ctx, pincode)
	if err != nil {
		return domain.PincodeInfo{}, err
	}
	cacheSet(ctx, p.cache, p.log, pincodeNamespace, pincode, info)
	return info, nil
}

func cacheGet(ctx context.Context, cache ports.LookupCache, log zerolog.Logger, ns, key string, dst any) bool {
	ok, err := cache.Get(ctx, ns, key, dst)
	if err != nil {
		log.Warn().Err(err).Str("namespace", ns).Msg("lookup cache read failed")
		return false
	}
	result := "miss"
	if ok {
		result = "hit"
	}
	metrics.LookupCacheTotal.WithLabelValues(ns, result).Inc()
	return ok
}

func cacheSet(ctx context.Context, cache ports.LookupCache, log zerolog.Logger, ns, key string, value any) {
	if err := cache.Set(ctx, ns, key, value); err != nil {
		log.Warn().Err(err).Str("namespace", ns).Msg("lookup cache write failed")
	}
}
