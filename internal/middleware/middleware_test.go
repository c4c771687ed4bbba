package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"pirlanta/internal/authz"
	"pirlanta/internal/cache"
)

func init() {
	gin.SetMode(gin.TestMode)
}

var testSecret = []byte("middleware-secret")

func signToken(t *testing.T, secret []byte, role int, exp time.Time) string {
	t.Helper()
	claims := &Claims{
		Username: "admin",
		RoleID:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func do(r *gin.Engine, method, path string, hdr map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func adminRouter() *gin.Engine {
	r := gin.New()
	g := r.Group("/admin", AdminAuth(testSecret), ReadOnlyGuard(), RequireRoles(authz.RoleAdmin, authz.RoleViewer))
	g.GET("/sessions", func(c *gin.Context) {
		name, _ := c.Get(CtxAdminUsername)
		c.String(http.StatusOK, "%v", name)
	})
	g.POST("/sessions/x/report", func(c *gin.Context) { c.Status(http.StatusAccepted) })
	return r
}

func TestAdminAuth(t *testing.T) {
	r := adminRouter()
	valid := signToken(t, testSecret, authz.RoleAdmin, time.Now().Add(time.Minute))

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"empty bearer", "Bearer ", http.StatusUnauthorized},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + signToken(t, []byte("other"), authz.RoleAdmin, time.Now().Add(time.Minute)), http.StatusUnauthorized},
		{"expired", "Bearer " + signToken(t, testSecret, authz.RoleAdmin, time.Now().Add(-time.Minute)), http.StatusUnauthorized},
		{"valid", "Bearer " + valid, http.StatusOK},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			hdr := map[string]string{}
			if c.header != "" {
				hdr["Authorization"] = c.header
			}
			if w := do(r, http.MethodGet, "/admin/sessions", hdr); w.Code != c.want {
				t.Fatalf("status = %d, want %d (%s)", w.Code, c.want, w.Body.String())
			}
		})
	}
}

func TestRolesAndReadOnly(t *testing.T) {
	r := adminRouter()
	viewer := "Bearer " + signToken(t, testSecret, authz.RoleViewer, time.Now().Add(time.Minute))
	admin := "Bearer " + signToken(t, testSecret, authz.RoleAdmin, time.Now().Add(time.Minute))
	stranger := "Bearer " + signToken(t, testSecret, 7, time.Now().Add(time.Minute))

	if w := do(r, http.MethodGet, "/admin/sessions", map[string]string{"Authorization": viewer}); w.Code != http.StatusOK {
		t.Errorf("viewer GET = %d", w.Code)
	}
	if w := do(r, http.MethodPost, "/admin/sessions/x/report", map[string]string{"Authorization": viewer}); w.Code != http.StatusForbidden {
		t.Errorf("viewer POST = %d, want 403", w.Code)
	}
	if w := do(r, http.MethodPost, "/admin/sessions/x/report", map[string]string{"Authorization": admin}); w.Code != http.StatusAccepted {
		t.Errorf("admin POST = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/admin/sessions", map[string]string{"Authorization": stranger}); w.Code != http.StatusForbidden {
		t.Errorf("unknown role GET = %d, want 403", w.Code)
	}
}

func TestAPIKey(t *testing.T) {
	r := gin.New()
	r.GET("/t", APIKey("pirlanta-dev-key"), func(c *gin.Context) { c.Status(http.StatusOK) })

	if w := do(r, http.MethodGet, "/t", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("missing key = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/t", map[string]string{"X-API-Key": "nope"}); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong key = %d", w.Code)
	}
	if w := do(r, http.MethodGet, "/t", map[string]string{"X-API-Key": "pirlanta-dev-key"}); w.Code != http.StatusOK {
		t.Errorf("valid key = %d", w.Code)
	}

	open := gin.New()
	open.GET("/t", APIKey(""), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := do(open, http.MethodGet, "/t", map[string]string{"X-API-Key": ""}); w.Code != http.StatusUnauthorized {
		t.Errorf("unconfigured key = %d, want 401", w.Code)
	}
}

type failingLimiter struct{}

func (failingLimiter) Allow(context.Context, string) (bool, error) {
	return false, errors.New("redis down")
}

func TestRateLimit(t *testing.T) {
	r := gin.New()
	r.GET("/t", RateLimit(cache.NewMemoryLimiter(2, time.Minute)), func(c *gin.Context) { c.Status(http.StatusOK) })

	for i := 0; i < 2; i++ {
		if w := do(r, http.MethodGet, "/t", nil); w.Code != http.StatusOK {
			t.Fatalf("request %d = %d", i+1, w.Code)
		}
	}
	if w := do(r, http.MethodGet, "/t", nil); w.Code != http.StatusTooManyRequests {
		t.Fatalf("3rd request = %d, want 429", w.Code)
	}

	failOpen := gin.New()
	failOpen.GET("/t", RateLimit(failingLimiter{}), func(c *gin.Context) { c.Status(http.StatusOK) })
	if w := do(failOpen, http.MethodGet, "/t", nil); w.Code != http.StatusOK {
		t.Errorf("limiter error = %d, want pass-through", w.Code)
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://pirlanta.in"}))
	r.GET("/t", func(c *gin.Context) { c.Status(http.StatusOK) })

	w := do(r, http.MethodOptions, "/t", map[string]string{"Origin": "https://pirlanta.in"})
	if w.Code != http.StatusNoContent {
		t.Errorf("preflight = %d", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "https://pirlanta.in" {
		t.Errorf("allow-origin = %q", got)
	}

	w = do(r, http.MethodGet, "/t", map[string]string{"Origin": "https://evil.example"})
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("foreign origin allowed: %q", got)
	}
}
