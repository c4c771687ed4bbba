package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/models"
	"pirlanta/internal/realtime"
	"pirlanta/internal/services"
)

func TestThreatHandler(t *testing.T) {
	store := services.NewThreatStore(200)
	hub := realtime.NewHub(nil)
	feed := services.NewThreatFeed(store, hub)
	h := NewThreatHandler(feed, store, hub)

	r := gin.New()
	r.GET("/api/threats/live", h.Live)
	r.GET("/api/threats/stats", h.Stats)
	r.GET("/api/threats/by-country", h.ByCountry)

	// пустой буфер: live создаёт атаку и сохраняет её
	w := doJSON(t, r, http.MethodGet, "/api/threats/live", nil)
	var live models.Threat
	decode(t, w, &live)
	if w.Code != http.StatusOK || live.Origin == "" || live.Origin == live.Target {
		t.Fatalf("live = %d %+v", w.Code, live)
	}
	if store.Len() != 1 {
		t.Errorf("store len = %d, want 1", store.Len())
	}

	w = doJSON(t, r, http.MethodGet, "/api/threats/live", nil)
	var again models.Threat
	decode(t, w, &again)
	if again != live {
		t.Errorf("second live = %+v, want the stored %+v", again, live)
	}

	w = doJSON(t, r, http.MethodGet, "/api/threats/stats", nil)
	var stats map[string]any
	decode(t, w, &stats)
	if stats["systems"] != float64(156) || stats["monitors"] != "24/7" {
		t.Errorf("stats = %v", stats)
	}

	w = doJSON(t, r, http.MethodGet, "/api/threats/by-country", nil)
	var byCountry map[string]int
	decode(t, w, &byCountry)
	if byCountry[live.Origin] < 1 || byCountry[live.Target] < 1 {
		t.Errorf("by-country = %v", byCountry)
	}
}
