package domain

import (
	"errors"
	"math"
)

var (
	ErrAddressNotFound = errors.New("address not found")
	ErrPincodeNotFound = errors.New("pincode not found")
)

// Coordinates is a WGS84 point.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// PincodeInfo is the locality registered for a six-digit postal code.
type PincodeInfo struct {
	Pincode  string `json:"pincode"`
	Name     string `json:"name"`
	District string `json:"district"`
	State    string `json:"state"`
}

// City prefers the district and falls back to the post office name.
func (p PincodeInfo) City() string {
	if p.District != "" {
		return p.District
	}
	return p.Name
}

// MarkerKind distinguishes route endpoints from tracking waypoints.
type MarkerKind string

const (
	MarkerPickup      MarkerKind = "pickup"
	MarkerDestination MarkerKind = "destination"
	MarkerWaypoint    MarkerKind = "waypoint"
	MarkerLive        MarkerKind = "live"
)

// Evictable reports whether the marker counts against the waypoint bound.
func (k MarkerKind) Evictable() bool {
	return k == MarkerWaypoint || k == MarkerLive
}

// MarkerStyle carries presentation hints for a marker.
type MarkerStyle struct {
	Color  string `json:"color"`
	Radius int    `json:"radius"`
}

var (
	StylePickup      = MarkerStyle{Color: "#10b981", Radius: 10}
	StyleDestination = MarkerStyle{Color: "#ef4444", Radius: 10}
	StyleWaypoint    = MarkerStyle{Color: "#6366f1", Radius: 6}
	StyleLive        = MarkerStyle{Color: "#f59e0b", Radius: 8}
)

// Marker is a labelled point on the map.
type Marker struct {
	ID       string      `json:"id"`
	Kind     MarkerKind  `json:"kind"`
	Position Coordinates `json:"position"`
	Label    string      `json:"label"`
	Style    MarkerStyle `json:"style"`
}

// Path is a polyline between route endpoints.
type Path struct {
	Points []Coordinates `json:"points"`
	Color  string        `json:"color"`
}

// Bounds is a rectangular viewport.
type Bounds struct {
	SouthWest Coordinates `json:"south_west"`
	NorthEast Coordinates `json:"north_east"`
}

// FitBounds returns the smallest viewport containing all points.
func FitBounds(points []Coordinates) (Bounds, bool) {
	if len(points) == 0 {
		return Bounds{}, false
	}
	b := Bounds{
		SouthWest: Coordinates{Lat: math.Inf(1), Lon: math.Inf(1)},
		NorthEast: Coordinates{Lat: math.Inf(-1), Lon: math.Inf(-1)},
	}
	for _, p := range points {
		b.SouthWest.Lat = math.Min(b.SouthWest.Lat, p.Lat)
		b.SouthWest.Lon = math.Min(b.SouthWest.Lon, p.Lon)
		b.NorthEast.Lat = math.Max(b.NorthEast.Lat, p.Lat)
		b.NorthEast.Lon = math.Max(b.NorthEast.Lon, p.Lon)
	}
	return b, true
}

// MapState is everything a map widget needs to draw the current view.
type MapState struct {
	Markers  []Marker `json:"markers"`
	Path     *Path    `json:"path,omitempty"`
	Viewport *Bounds  `json:"viewport,omitempty"`
}
