package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port        string        `env:"PORT,          default=8090"`
	Env         string        `env:"ENV,           default=development"`
	JWTSecret   string        `env:"JWT_SECRET,    required"`
	LogLevel    string        `env:"LOG_LEVEL,     default=info"`
	SessionTTL  time.Duration `env:"SESSION_TTL,   default=24h"`
	PageIdleTTL time.Duration `env:"PAGE_IDLE_TTL, default=30m"`

	Backend  BackendConfig
	Lookup   LookupConfig
	Tracking TrackingConfig
	Redis    RedisConfig
}

// BackendConfig points at the courier backend API.
type BackendConfig struct {
	URL     string        `env:"BACKEND_URL,  default=http://localhost:8080/api"`
	Timeout time.Duration `env:"HTTP_TIMEOUT, default=0s"`
}

// LookupConfig covers the third-party geocoding and pincode services.
type LookupConfig struct {
	PincodeURL  string        `env:"PINCODE_API_URL,     default=https://api.postalpincode.in"`
	GeocoderURL string        `env:"GEOCODER_URL,        default=https://nominatim.openstreetmap.org"`
	UserAgent   string        `env:"GEOCODER_USER_AGENT, default=courierfront/1.0"`
	CacheTTL    time.Duration `env:"LOOKUP_CACHE_TTL,    default=24h"`
}

// TrackingConfig tunes the live tracking monitor and map.
type TrackingConfig struct {
	PollInterval time.Duration `env:"TRACKING_POLL_INTERVAL, default=15s"`
	MaxWaypoints int           `env:"TRACKING_MAX_WAYPOINTS, default=10"`
}

type RedisConfig struct {
	Addr string `env:"REDIS_ADDR, default=localhost:6379"`
	DB   int    `env:"REDIS_DB,   default=0"`
}

// IsProduction reports whether the service runs with production defaults.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// Load reads configuration from environment variables using go-envconfig.
func Load() *Config {
	cfg, err := LoadFrom(context.Background(), envconfig.OsLookuper())
	if err != nil {
		panic(fmt.Sprintf("config: failed to load configuration: %v", err))
	}
	return cfg
}

// LoadFrom reads configuration through an arbitrary lookuper.
func LoadFrom(ctx context.Context, l envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: l}); err != nil {
		return nil, err
	}
	return &cfg, nil
}
