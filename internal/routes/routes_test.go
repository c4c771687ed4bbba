package routes

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/mattn/go-sqlite3"

	"pirlanta/internal/cache"
	"pirlanta/internal/handlers"
	"pirlanta/internal/realtime"
	"pirlanta/internal/repositories"
	"pirlanta/internal/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newRouter(t *testing.T, withThreats bool) *gin.Engine {
	t.Helper()
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		t.Fatal(err)
	}
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	if err := repositories.Migrate(context.Background(), db, "sqlite3"); err != nil {
		t.Fatal(err)
	}

	assessments := services.NewAssessmentService(repositories.NewAssessmentSessionRepository(db), nil, nil, 0)
	auth := services.NewAuthService(nil, []byte("routes-secret"), time.Minute)
	h := Handlers{
		Assessment: handlers.NewAssessmentHandler(assessments),
		Site:       handlers.NewSiteHandler(services.NewSiteService(), services.NewContactService(nil, nil)),
		Admin:      handlers.NewAdminHandler(auth, assessments),
	}
	if withThreats {
		store := services.NewThreatStore(10)
		hub := realtime.NewHub(nil)
		t.Cleanup(hub.Close)
		h.Threats = handlers.NewThreatHandler(services.NewThreatFeed(store, hub), store, hub)
	}
	return SetupRoutes(gin.New(), h, Options{
		AdminSecret:  auth.Secret(),
		ThreatAPIKey: "k",
		Limiter:      cache.NewMemoryLimiter(1, time.Minute),
	})
}

func get(r http.Handler, path string, hdr map[string]string) int {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestSetupRoutes(t *testing.T) {
	r := newRouter(t, true)

	cases := []struct {
		path string
		hdr  map[string]string
		want int
	}{
		{"/healthz", nil, http.StatusOK},
		{"/api/home/", nil, http.StatusOK},
		{"/api/threatmap/", nil, http.StatusOK},
		{"/api/assessment/session/?session_id=nope", nil, http.StatusNotFound},
		{"/api/threats/live", nil, http.StatusUnauthorized},
		{"/api/threats/live", map[string]string{"X-API-Key": "k"}, http.StatusOK},
		{"/api/threats/stats", map[string]string{"X-API-Key": "k"}, http.StatusTooManyRequests},
		{"/admin/sessions", nil, http.StatusUnauthorized},
	}
	for _, c := range cases {
		if got := get(r, c.path, c.hdr); got != c.want {
			t.Errorf("GET %s = %d, want %d", c.path, got, c.want)
		}
	}
}

func TestSetupRoutes_ThreatsDisabled(t *testing.T) {
	r := newRouter(t, false)
	if got := get(r, "/api/threats/live", map[string]string{"X-API-Key": "k"}); got != http.StatusNotFound {
		t.Errorf("threats disabled: GET /api/threats/live = %d, want 404", got)
	}
}
