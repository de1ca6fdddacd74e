package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/logisco/courierfront/internal/core/service"
)

type DashboardHandler struct {
	sessions  SessionResolver
	dashboard *service.DashboardService
}

func NewDashboardHandler(sessions SessionResolver, dashboard *service.DashboardService) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, dashboard: dashboard}
}

// Overview lists the signed-in user's shipments.
//
// @Summary      Dashboard
// @Tags         dashboard
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  service.Dashboard
// @Failure      401  {object}  ErrorEnvelope
// @Failure      403  {object}  ErrorEnvelope
// @Router       /v1/dashboard [get]
func (h *DashboardHandler) Overview(c echo.Context) error {
	sess, err := ctxSession(c, h.sessions)
	if err != nil {
		return err
	}
	d, err := h.dashboard.Overview(c.Request().Context(), sess)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, d)
}
