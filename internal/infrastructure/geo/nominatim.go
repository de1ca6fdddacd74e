package geo

import (
	"context"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

// Nominatim geocodes free-text addresses through a Nominatim-compatible
// search endpoint.
type Nominatim struct {
	baseURL   string
	userAgent string
	http      *http.Client
}

var _ ports.Geocoder = (*Nominatim)(nil)

func NewNominatim(baseURL, userAgent string, timeout time.Duration) *Nominatim {
	return &Nominatim{
		baseURL:   strings.TrimRight(baseURL, "/"),
		userAgent: userAgent,
		http:      &http.Client{Timeout: timeout},
	}
}

type nominatimPlace struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Geocode returns the best match for address or domain.ErrAddressNotFound.
func (n *Nominatim) Geocode(ctx context.Context, address string) (domain.Coordinates, error) {
	q := url.Values{}
	q.Set("format", "json")
	q.Set("limit", "1")
	q.Set("q", address)

	headers := map[string]string{"Accept-Language": "en"}
	if n.userAgent != "" {
		headers["User-Agent"] = n.userAgent
	}

	var places []nominatimPlace
	if err := getJSON(ctx, n.http, "geocoder", n.baseURL+"/search?"+q.Encode(), headers, &places); err != nil {
		return domain.Coordinates{}, err
	}
	if len(places) == 0 {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: %w", address, domain.ErrAddressNotFound)
	}

	lat, err := strconv.ParseFloat(places[0].Lat, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: bad latitude: %w", address, err)
	}
	lon, err := strconv.ParseFloat(places[0].Lon, 64)
	if err != nil {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: bad longitude: %w", address, err)
	}
	if !finite(lat) || !finite(lon) {
		return domain.Coordinates{}, fmt.Errorf("geocode %q: non-finite coordinates: %w", address, domain.ErrAddressNotFound)
	}
	return domain.Coordinates{Lat: lat, Lon: lon}, nil
}

func finite(f float64) bool {
	return !math.IsInf(f, 0) && !math.IsNaN(f)
}
