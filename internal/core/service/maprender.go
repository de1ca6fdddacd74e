package service

import (
	"context"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const (
	DefaultMaxWaypoints = 10
	routeColor          = "#6366f1"
)

// MapRenderer owns the map state of one tracking page. Geocoding
// failures never surface: unresolved places are simply not drawn.
type MapRenderer struct {
	geocoder     ports.Geocoder
	maxWaypoints int
	log          zerolog.Logger

	mu       sync.Mutex
	markers  []domain.Marker
	path     *domain.Path
	viewport *domain.Bounds
}

func NewMapRenderer(geocoder ports.Geocoder, maxWaypoints int, log zerolog.Logger) *MapRenderer {
	if maxWaypoints <= 0 {
		maxWaypoints = DefaultMaxWaypoints
	}
	return &MapRenderer{geocoder: geocoder, maxWaypoints: maxWaypoints, log: log}
}

// RenderRoute replaces the map with pickup and destination. Both
// addresses are geocoded concurrently before the map is touched; the old
// markers, path and viewport are dropped in the same critical section that
// draws the new ones. A path is drawn only when both resolve.
func (r *MapRenderer) RenderRoute(ctx context.Context, origin, destination string) domain.MapState {
	var from, to *domain.Coordinates
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		from = r.resolve(gctx, origin)
		return nil
	})
	g.Go(func() error {
		to = r.resolve(gctx, destination)
		return nil
	})
	_ = g.Wait()

	r.mu.Lock()
	defer r.mu.Unlock()

	r.clearLocked()
	var points []domain.Coordinates
	if from != nil {
		r.markers = append(r.markers, newMarker(domain.MarkerPickup, *from, "Pickup: "+origin, domain.StylePickup))
		points = append(points, *from)
	}
	if to != nil {
		r.markers = append(r.markers, newMarker(domain.MarkerDestination, *to, "Destination: "+destination, domain.StyleDestination))
		points = append(points, *to)
	}
	if b, ok := domain.FitBounds(points); ok {
		r.viewport = &b
	}
	if from != nil && to != nil {
		r.path = &domain.Path{Points: []domain.Coordinates{*from, *to}, Color: routeColor}
	}
	return r.snapshotLocked()
}

// AddWaypoint resolves text and appends one marker without clearing the
// map. When the waypoint bound is reached the oldest waypoint is evicted;
// route markers are kept. It reports whether a marker was added.
func (r *MapRenderer) AddWaypoint(ctx context.Context, text string, kind domain.MarkerKind, style domain.MarkerStyle) bool {
	pos := r.resolve(ctx, text)
	if pos == nil || ctx.Err() != nil {
		return false
	}
	r.place(kind, *pos, text, style)
	return true
}

// AddWaypoints resolves texts concurrently, at most limit at a time, and
// appends the resolved ones in input order. It returns how many were
// added.
func (r *MapRenderer) AddWaypoints(ctx context.Context, texts []string, limit int, kind domain.MarkerKind, style domain.MarkerStyle) int {
	resolved := make([]*domain.Coordinates, len(texts))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(limit)
	for i, text := range texts {
		g.Go(func() error {
			resolved[i] = r.resolve(gctx, text)
			return nil
		})
	}
	_ = g.Wait()
	if ctx.Err() != nil {
		return 0
	}

	added := 0
	for i, pos := range resolved {
		if pos == nil {
			continue
		}
		r.place(kind, *pos, texts[i], style)
		added++
	}
	return added
}

func (r *MapRenderer) place(kind domain.MarkerKind, pos domain.Coordinates, label string, style domain.MarkerStyle) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for r.waypointCountLocked() >= r.maxWaypoints {
		idx := slices.IndexFunc(r.markers, func(m domain.Marker) bool { return m.Kind.Evictable() })
		r.markers = slices.Delete(r.markers, idx, idx+1)
	}
	r.markers = append(r.markers, newMarker(kind, pos, label, style))
}

// Snapshot returns a copy of the current map state.
func (r *MapRenderer) Snapshot() domain.MapState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked()
}

// Clear removes every marker, the path and the viewport.
func (r *MapRenderer) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.clearLocked()
}

func (r *MapRenderer) clearLocked() {
	r.markers = nil
	r.path = nil
	r.viewport = nil
}

func (r *MapRenderer) resolve(ctx context.Context, text string) *domain.Coordinates {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	pos, err := r.geocoder.Geocode(ctx, text)
	if err != nil {
		r.log.Debug().Err(err).Str("address", text).Msg("geocode failed")
		return nil
	}
	return &pos
}

func (r *MapRenderer) waypointCountLocked() int {
	n := 0
	for _, m := range r.markers {
		if m.Kind.Evictable() {
			n++
		}
	}
	return n
}

func (r *MapRenderer) snapshotLocked() domain.MapState {
	st := domain.MapState{Markers: slices.Clone(r.markers)}
	if st.Markers == nil {
		st.Markers = []domain.Marker{}
	}
	if r.path != nil {
		p := domain.Path{Points: slices.Clone(r.path.Points), Color: r.path.Color}
		st.Path = &p
	}
	if r.viewport != nil {
		b := *r.viewport
		st.Viewport = &b
	}
	return st
}

func newMarker(kind domain.MarkerKind, pos domain.Coordinates, label string, style domain.MarkerStyle) domain.Marker {
	return domain.Marker{
		ID:       uuid.NewString(),
		Kind:     kind,
		Position: pos,
		Label:    label,
		Style:    style,
	}
}
