package service

import (
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/logisco/courierfront/internal/api/metrics"
)

// Workspace is the in-memory page state of one session.
type Workspace struct {
	Booking  *Wizard
	Tracking *TrackingPage

	lastSeen time.Time
}

// WorkspaceFactory builds the page state for a new session.
type WorkspaceFactory func() *Workspace

// Workspaces maps session ids to their page state and evicts idle ones.
type Workspaces struct {
	factory WorkspaceFactory
	now     func() time.Time
	log     zerolog.Logger

	mu    sync.Mutex
	items map[string]*Workspace
}

func NewWorkspaces(factory WorkspaceFactory, log zerolog.Logger) *Workspaces {
	return &Workspaces{
		factory: factory,
		now:     time.Now,
		log:     log,
		items:   make(map[string]*Workspace),
	}
}

// Get returns the workspace of sessionID, creating it on first use.
func (ws *Workspaces) Get(sessionID string) *Workspace {
	ws.mu.Lock()
	defer ws.mu.Unlock()

	w, ok := ws.items[sessionID]
	if !ok {
		w = ws.factory()
		ws.items[sessionID] = w
		metrics.ActiveWorkspaces.Inc()
	}
	w.lastSeen = ws.now()
	return w
}

// Close discards the workspace of sessionID and stops its live tracking.
func (ws *Workspaces) Close(sessionID string) {
	ws.mu.Lock()
	w, ok := ws.items[sessionID]
	delete(ws.items, sessionID)
	ws.mu.Unlock()

	if ok {
		metrics.ActiveWorkspaces.Dec()
		w.Tracking.Close()
	}
}

// Sweep closes workspaces unused for longer than idle and returns how
// many were evicted.
func (ws *Workspaces) Sweep(idle time.Duration) int {
	cutoff := ws.now().Add(-idle)

	ws.mu.Lock()
	var stale []*Workspace
	for id, w := range ws.items {
		if w.lastSeen.Before(cutoff) {
			stale = append(stale, w)
			delete(ws.items, id)
		}
	}
	ws.mu.Unlock()

	for _, w := range stale {
		metrics.ActiveWorkspaces.Dec()
		w.Tracking.Close()
	}
	if len(stale) > 0 {
		ws.log.Debug().Int("evicted", len(stale)).Msg("idle workspaces evicted")
	}
	return len(stale)
}

// CloseAll stops every workspace. Used at shutdown.
func (ws *Workspaces) CloseAll() {
	ws.mu.Lock()
	items := ws.items
	ws.items = make(map[string]*Workspace)
	ws.mu.Unlock()

	for _, w := range items {
		metrics.ActiveWorkspaces.Dec()
		w.Tracking.Close()
	}
}

// Len returns the number of live workspaces.
func (ws *Workspaces) Len() int {
	ws.mu.Lock()
	defer ws.mu.Unlock()
	return len(ws.items)
}
