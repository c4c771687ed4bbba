package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/realtime"
	"pirlanta/internal/services"
)

type ThreatHandler struct {
	Feed  *services.ThreatFeed
	Store *services.ThreatStore
	Hub   *realtime.Hub
}

func NewThreatHandler(feed *services.ThreatFeed, store *services.ThreatStore, hub *realtime.Hub) *ThreatHandler {
	return &ThreatHandler{Feed: feed, Store: store, Hub: hub}
}

// @Summary      Последняя атака
// @Tags         Threats
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  models.Threat
// @Failure      401  {object}  map[string]string
// @Failure      429  {object}  map[string]string
// @Router       /api/threats/live [get]
func (h *ThreatHandler) Live(c *gin.Context) {
	c.JSON(http.StatusOK, h.Feed.Live())
}

// @Summary      Сводка по типам атак
// @Tags         Threats
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]interface{}
// @Router       /api/threats/stats [get]
func (h *ThreatHandler) Stats(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.Stats())
}

// @Summary      Счётчики по странам
// @Tags         Threats
// @Produce      json
// @Security     ApiKeyAuth
// @Success      200  {object}  map[string]int
// @Router       /api/threats/by-country [get]
func (h *ThreatHandler) ByCountry(c *gin.Context) {
	c.JSON(http.StatusOK, h.Store.ByCountry())
}

// WebSocket: после апгрейда gin в ответ уже не пишет
func (h *ThreatHandler) Stream(c *gin.Context) {
	if err := h.Hub.Serve(c.Writer, c.Request); err != nil {
		log.Printf("[ws][threats] upgrade failed: %v", err)
		return
	}
}
