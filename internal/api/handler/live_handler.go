package handler

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

const (
	wsWriteTimeout = 5 * time.Second
	wsPongWait     = 60 * time.Second
	wsPingPeriod   = 30 * time.Second
)

// LiveHandler streams tracking views over WebSocket.
type LiveHandler struct {
	pages    Pages
	upgrader websocket.Upgrader
	log      zerolog.Logger
}

func NewLiveHandler(pages Pages, log zerolog.Logger) *LiveHandler {
	return &LiveHandler{
		pages: pages,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		log: log,
	}
}

// Stream pushes the current tracking view, then every re-render, until
// the client goes away. Inbound frames are ignored.
//
// @Summary      Live tracking stream
// @Tags         tracking
// @Security     BearerAuth
// @Param        token  query  string  false  "Session token for browsers"
// @Success      101
// @Router       /v1/tracking/live [get]
func (h *LiveHandler) Stream(c echo.Context) error {
	sid, err := ctxSessionID(c)
	if err != nil {
		return err
	}
	page := h.pages.Get(sid).Tracking

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		h.log.Warn().Err(err).Str("session", sid).Msg("websocket upgrade failed")
		return nil
	}
	defer conn.Close()

	updates, unsubscribe := page.Subscribe()
	defer unsubscribe()

	log := h.log.With().Str("session", sid).Logger()
	log.Debug().Msg("live tracking connected")

	// Reader: keeps pong deadlines moving and notices disconnects.
	gone := make(chan struct{})
	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})
	go func() {
		defer close(gone)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					log.Debug().Err(err).Msg("live tracking closed unexpectedly")
				}
				return
			}
		}
	}()

	ping := time.NewTicker(wsPingPeriod)
	defer ping.Stop()

	if err := writeView(conn, page.View()); err != nil {
		return nil
	}
	for {
		select {
		case <-gone:
			log.Debug().Msg("live tracking disconnected")
			return nil
		case <-c.Request().Context().Done():
			return nil
		case view := <-updates:
			if err := writeView(conn, view); err != nil {
				log.Debug().Err(err).Msg("live tracking write failed")
				return nil
			}
		case <-ping.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(wsWriteTimeout)); err != nil {
				return nil
			}
		}
	}
}

func writeView(conn *websocket.Conn, view any) error {
	_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	return conn.WriteJSON(view)
}
