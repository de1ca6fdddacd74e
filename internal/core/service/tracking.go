package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const (
	MessageTrackingRequired = "Please enter a tracking number"

	historyWaypointLimit = 10
	geocodeFanout        = 4
	subscriberBuffer     = 4
)

// TimelineEntry is one rendered row of the status timeline.
type TimelineEntry struct {
	Status      domain.ShipmentStatus `json:"status"`
	Title       string                `json:"title"`
	Location    string                `json:"location"`
	Description string                `json:"description"`
	Timestamp   *domain.Timestamp     `json:"timestamp,omitempty"`
}

// TrackingView is the rendered tracking page.
type TrackingView struct {
	Shipment          *domain.ShipmentRecord `json:"shipment,omitempty"`
	StatusLabel       string                 `json:"status_label,omitempty"`
	EstimatedDelivery string                 `json:"estimated_delivery,omitempty"`
	Timeline          []TimelineEntry        `json:"timeline"`
	Map               domain.MapState        `json:"map"`
	Live              bool                   `json:"live"`
	UpdatedAt         time.Time              `json:"updated_at"`
}

// TrackingPage is the tracking view state of one session: the shipment
// being watched, its last rendered timeline, the map and the monitor.
type TrackingPage struct {
	renderer *MapRenderer
	monitor  *Monitor

	// serializes lookups on the page
	lookupMu sync.Mutex

	mu        sync.RWMutex
	record    *domain.ShipmentRecord
	timeline  []TimelineEntry
	updatedAt time.Time
	subs      map[chan TrackingView]struct{}
}

// NewTrackingPage wires a renderer and a monitor that renders into the
// page.
func NewTrackingPage(history ports.HistoryFetcher, geocoder ports.Geocoder, cfg TrackingConfig, log zerolog.Logger) *TrackingPage {
	p := &TrackingPage{
		renderer: NewMapRenderer(geocoder, cfg.MaxWaypoints, log),
		subs:     make(map[chan TrackingView]struct{}),
	}
	p.monitor = NewMonitor(history, p.renderer, p.RenderTimeline, cfg.PollInterval, log)
	return p
}

// TrackingConfig tunes tracking pages.
type TrackingConfig struct {
	PollInterval time.Duration
	MaxWaypoints int
}

// View renders the page.
func (p *TrackingPage) View() TrackingView {
	_, live := p.monitor.Active()
	mapState := p.renderer.Snapshot()

	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.viewLocked(mapState, live)
}

// RenderTimeline replaces the timeline with events and notifies
// subscribers.
func (p *TrackingPage) RenderTimeline(events []domain.TrackingEvent) {
	entries := make([]TimelineEntry, len(events))
	for i, ev := range events {
		entries[i] = newTimelineEntry(ev)
	}

	p.mu.Lock()
	p.timeline = entries
	p.updatedAt = time.Now().UTC()
	p.mu.Unlock()

	p.publish()
}

// Subscribe returns a channel receiving every rendered view until the
// returned cancel function is called. Slow subscribers miss updates.
func (p *TrackingPage) Subscribe() (<-chan TrackingView, func()) {
	ch := make(chan TrackingView, subscriberBuffer)

	p.mu.Lock()
	p.subs[ch] = struct{}{}
	p.mu.Unlock()

	var once sync.Once
	return ch, func() {
		once.Do(func() {
			p.mu.Lock()
			delete(p.subs, ch)
			p.mu.Unlock()
		})
	}
}

// Close stops live tracking.
func (p *TrackingPage) Close() {
	p.monitor.Stop()
}

func (p *TrackingPage) setRecord(rec *domain.ShipmentRecord) {
	p.mu.Lock()
	p.record = rec
	p.timeline = nil
	p.mu.Unlock()
}

func (p *TrackingPage) publish() {
	view := p.View()

	p.mu.RLock()
	defer p.mu.RUnlock()
	for ch := range p.subs {
		select {
		case ch <- view:
		default:
		}
	}
}

func (p *TrackingPage) viewLocked(mapState domain.MapState, live bool) TrackingView {
	v := TrackingView{
		Shipment:  p.record,
		Timeline:  append([]TimelineEntry{}, p.timeline...),
		Map:       mapState,
		Live:      live,
		UpdatedAt: p.updatedAt,
	}
	if p.record != nil {
		v.StatusLabel = p.record.Status.Label()
		v.EstimatedDelivery = "TBD"
		if p.record.EstimatedDelivery != nil && !p.record.EstimatedDelivery.IsZero() {
			v.EstimatedDelivery = p.record.EstimatedDelivery.Format("02 Jan 2006")
		}
	}
	return v
}

func newTimelineEntry(ev domain.TrackingEvent) TimelineEntry {
	e := TimelineEntry{
		Status:      ev.Status,
		Title:       ev.Status.Label(),
		Location:    strings.TrimSpace(ev.Location),
		Description: ev.Description,
	}
	if e.Location == "" {
		e.Location = "N/A"
	}
	if !ev.Timestamp.IsZero() {
		ts := ev.Timestamp
		e.Timestamp = &ts
	}
	return e
}

// TrackingService looks shipments up and drives a page's live view.
type TrackingService struct {
	backend ports.TrackingBackend
	log     zerolog.Logger
}

func NewTrackingService(backend ports.TrackingBackend, log zerolog.Logger) *TrackingService {
	return &TrackingService{backend: backend, log: log}
}

// Lookup loads a shipment by tracking number, renders it into page and
// starts live tracking. Any previous live tracking on the page is
// cancelled first.
func (s *TrackingService) Lookup(ctx context.Context, page *TrackingPage, trackingNumber string) (TrackingView, error) {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if trackingNumber == "" {
		return TrackingView{}, domain.NewValidationError("trackingNumber", MessageTrackingRequired)
	}

	page.lookupMu.Lock()
	defer page.lookupMu.Unlock()

	// 1. The old monitor must not render into the new lookup.
	page.monitor.Stop()

	// 2. Shipment detail.
	rec, err := s.backend.Track(ctx, trackingNumber)
	if err != nil {
		var be *domain.BackendError
		if errors.As(err, &be) && be.Status < http.StatusInternalServerError {
			return TrackingView{}, fmt.Errorf("track %s: %w", trackingNumber, domain.ErrShipmentNotFound)
		}
		return TrackingView{}, fmt.Errorf("track %s: %w", trackingNumber, err)
	}

	// 3. History.
	events, err := s.backend.History(ctx, rec.ID)
	if err != nil {
		return TrackingView{}, fmt.Errorf("history of %s: %w", trackingNumber, err)
	}

	page.setRecord(rec)
	page.RenderTimeline(events)

	// 4. Map: route first, then historical waypoints.
	page.renderer.RenderRoute(ctx, rec.SenderAddress, rec.ReceiverAddress)
	s.plotHistory(ctx, page.renderer, events)

	// 5. Live tracking.
	page.monitor.Start(ctx, rec.ID)

	s.log.Info().
		Str("tracking", trackingNumber).
		Int64("shipment_id", rec.ID).
		Int("events", len(events)).
		Msg("tracking started")

	view := page.View()
	page.publish()
	return view, nil
}

// Stop ends live tracking on page and tells subscribers it went quiet.
func (s *TrackingService) Stop(page *TrackingPage) {
	page.Close()
	page.publish()
}

func (s *TrackingService) plotHistory(ctx context.Context, r *MapRenderer, events []domain.TrackingEvent) {
	var locations []string
	for _, ev := range events {
		if len(locations) == historyWaypointLimit {
			break
		}
		if ev.Located() {
			locations = append(locations, ev.Location)
		}
	}
	r.AddWaypoints(ctx, locations, geocodeFanout, domain.MarkerWaypoint, domain.StyleWaypoint)
}
