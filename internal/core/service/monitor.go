package service

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/metrics"
	"github.com/logisco/courierfront/internal/core/domain"
	"github.com/logisco/courierfront/internal/core/ports"
)

const DefaultPollInterval = 15 * time.Second

// TimelineSink receives each freshly fetched history.
type TimelineSink func(events []domain.TrackingEvent)

// Monitor periodically refreshes one shipment's history while a tracking
// view is open. At most one polling loop runs per Monitor; ticks never
// overlap and a cancelled tick never renders.
type Monitor struct {
	history  ports.HistoryFetcher
	renderer *MapRenderer
	sink     TimelineSink
	interval time.Duration
	log      zerolog.Logger

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}

	// held while a tick renders; cancellation takes it too
	renderMu sync.Mutex

	// read without mu so that sinks may query it from inside a tick
	watching atomic.Int64
}

func NewMonitor(history ports.HistoryFetcher, renderer *MapRenderer, sink TimelineSink, interval time.Duration, log zerolog.Logger) *Monitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &Monitor{
		history:  history,
		renderer: renderer,
		sink:     sink,
		interval: interval,
		log:      log,
	}
}

// Start begins polling shipmentID, cancelling any previous loop and
// waiting for it to exit first. The loop outlives the caller's request:
// only Stop or a later Start end it.
func (m *Monitor) Start(ctx context.Context, shipmentID int64) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.stopLocked()

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	done := make(chan struct{})
	m.cancel, m.done = cancel, done
	m.watching.Store(shipmentID)

	go m.run(runCtx, shipmentID, done)
}

// Stop cancels the running loop, if any, and waits for it to exit.
func (m *Monitor) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopLocked()
}

// Active reports whether a loop is running and for which shipment.
func (m *Monitor) Active() (int64, bool) {
	id := m.watching.Load()
	return id, id != 0
}

func (m *Monitor) stopLocked() {
	if m.cancel == nil {
		return
	}
	m.watching.Store(0)
	m.renderMu.Lock()
	m.cancel()
	m.renderMu.Unlock()
	<-m.done
	m.cancel, m.done = nil, nil
}

func (m *Monitor) run(ctx context.Context, shipmentID int64, done chan struct{}) {
	defer close(done)

	metrics.ActiveMonitors.Inc()
	defer metrics.ActiveMonitors.Dec()

	log := m.log.With().Int64("shipment_id", shipmentID).Logger()
	log.Debug().Dur("interval", m.interval).Msg("tracking monitor started")
	defer log.Debug().Msg("tracking monitor stopped")

	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.tick(ctx, shipmentID, log)
		}
	}
}

func (m *Monitor) tick(ctx context.Context, shipmentID int64, log zerolog.Logger) {
	events, err := m.history.History(ctx, shipmentID)
	if ctx.Err() != nil {
		metrics.MonitorTicksTotal.WithLabelValues("stale").Inc()
		return
	}
	if err != nil {
		metrics.MonitorTicksTotal.WithLabelValues("error").Inc()
		log.Warn().Err(err).Msg("tracking refresh failed")
		return
	}

	var pos *domain.Coordinates
	latest, located := domain.LatestLocated(events)
	if located {
		pos = m.renderer.resolve(ctx, latest.Location)
	}

	m.renderMu.Lock()
	defer m.renderMu.Unlock()
	if ctx.Err() != nil {
		metrics.MonitorTicksTotal.WithLabelValues("stale").Inc()
		return
	}
	if pos != nil {
		m.renderer.place(domain.MarkerLive, *pos, liveLabel(latest), domain.StyleLive)
	}
	m.sink(events)
	metrics.MonitorTicksTotal.WithLabelValues("rendered").Inc()
}

// liveLabel reads like "IN TRANSIT: Pune".
func liveLabel(ev domain.TrackingEvent) string {
	return strings.Replace(string(ev.Status), "_", " ", 1) + ": " + strings.TrimSpace(ev.Location)
}
