package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logisco/courierfront/internal/core/service"
)

type TrackingHandler struct {
	pages    Pages
	tracking *service.TrackingService
}

func NewTrackingHandler(pages Pages, tracking *service.TrackingService) *TrackingHandler {
	return &TrackingHandler{pages: pages, tracking: tracking}
}

func (h *TrackingHandler) page(c echo.Context) (*service.TrackingPage, error) {
	sid, err := ctxSessionID(c)
	if err != nil {
		return nil, err
	}
	return h.pages.Get(sid).Tracking, nil
}

// Lookup loads a shipment and starts live tracking.
//
// @Summary      Track a shipment
// @Tags         tracking
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        body  body      trackingRequest  true  "Tracking number"
// @Success      200   {object}  service.TrackingView
// @Failure      404   {object}  ErrorEnvelope
// @Failure      422   {object}  ErrorEnvelope
// @Router       /v1/tracking [post]
func (h *TrackingHandler) Lookup(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	var req trackingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	view, err := h.tracking.Lookup(c.Request().Context(), p, req.TrackingNumber)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, view)
}

// Snapshot returns the last rendered tracking view.
//
// @Summary      Current tracking view
// @Tags         tracking
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.TrackingView
// @Router       /v1/tracking [get]
func (h *TrackingHandler) Snapshot(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p.View())
}

// Stop leaves the tracking view.
//
// @Summary      Stop live tracking
// @Tags         tracking
// @Security     BearerAuth
// @Success      204
// @Router       /v1/tracking [delete]
func (h *TrackingHandler) Stop(c echo.Context) error {
	p, err := h.page(c)
	if err != nil {
		return err
	}
	h.tracking.Stop(p)
	return c.NoContent(http.StatusNoContent)
}
