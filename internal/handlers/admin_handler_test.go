package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/authz"
	"pirlanta/internal/middleware"
	"pirlanta/internal/models"
	"pirlanta/internal/services"
)

func adminRouter(t *testing.T) (*gin.Engine, *services.AssessmentService, *queueStub) {
	t.Helper()
	hash, err := services.HashPassword("s3cret")
	if err != nil {
		t.Fatal(err)
	}
	auth := services.NewAuthService([]services.AdminAccount{
		{Username: "admin", PasswordHash: hash, RoleID: authz.RoleAdmin},
		{Username: "viewer", PasswordHash: hash, RoleID: authz.RoleViewer},
	}, []byte("handler-secret"), time.Minute)
	svc, queue := newAssessmentService(t)
	h := NewAdminHandler(auth, svc)

	r := gin.New()
	r.POST("/admin/login", h.Login)
	g := r.Group("/admin", middleware.AdminAuth(auth.Secret()), middleware.ReadOnlyGuard(),
		middleware.RequireRoles(authz.RoleAdmin, authz.RoleViewer))
	g.GET("/sessions", h.ListSessions)
	g.GET("/sessions/:id", h.SessionDetail)
	g.POST("/sessions/:id/report", h.ResendReport)
	return r, svc, queue
}

func login(t *testing.T, r *gin.Engine, user string) string {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/admin/login", gin.H{"username": user, "password": "s3cret"})
	if w.Code != http.StatusOK {
		t.Fatalf("login %s = %d (%s)", user, w.Code, w.Body.String())
	}
	var tok services.AdminToken
	decode(t, w, &tok)
	return tok.AccessToken
}

func withBearer(t *testing.T, r *gin.Engine, method, path, token string) (int, []byte) {
	t.Helper()
	req := newRequest(method, path)
	req.Header.Set("Authorization", "Bearer "+token)
	w := serve(r, req)
	return w.Code, w.Body.Bytes()
}

func completeSession(t *testing.T, svc *services.AssessmentService) string {
	t.Helper()
	ctx := context.Background()
	sess, err := svc.Create(ctx, "Ravi Kumar", "+919811111111", "ravi@example.com", true)
	if err != nil {
		t.Fatal(err)
	}
	if ok, err := svc.Verify(ctx, sess.ID, testOTP); err != nil || !ok {
		t.Fatalf("Verify() = %v, %v", ok, err)
	}
	for step := 1; step <= 4; step++ {
		if _, err := svc.SubmitStep(ctx, sess.ID, step, map[string]any{}); err != nil {
			t.Fatal(err)
		}
	}
	return sess.ID
}

func TestAdminHandler_Login(t *testing.T) {
	r, _, _ := adminRouter(t)

	if w := doJSON(t, r, http.MethodPost, "/admin/login", gin.H{"username": "admin", "password": "wrong"}); w.Code != http.StatusUnauthorized {
		t.Errorf("wrong password = %d", w.Code)
	}
	if w := doJSON(t, r, http.MethodPost, "/admin/login", gin.H{"username": "admin"}); w.Code != http.StatusBadRequest {
		t.Errorf("missing password = %d", w.Code)
	}
	if tok := login(t, r, "admin"); tok == "" {
		t.Error("empty access token")
	}
}

func TestAdminHandler_Sessions(t *testing.T) {
	r, svc, queue := adminRouter(t)
	done := completeSession(t, svc)
	if _, err := svc.Create(context.Background(), "Meera Iyer", "+919822222222", "meera@example.com", true); err != nil {
		t.Fatal(err)
	}
	tok := login(t, r, "admin")

	code, body := withBearer(t, r, http.MethodGet, "/admin/sessions", tok)
	var list struct {
		Items []models.SessionView `json:"items"`
	}
	decodeBytes(t, body, &list)
	if code != http.StatusOK || len(list.Items) != 2 {
		t.Fatalf("list = %d, %d items", code, len(list.Items))
	}

	code, body = withBearer(t, r, http.MethodGet, "/admin/sessions?otp_verified=true", tok)
	decodeBytes(t, body, &list)
	if code != http.StatusOK || len(list.Items) != 1 || list.Items[0].ID != done {
		t.Fatalf("verified filter = %d %+v", code, list.Items)
	}

	code, body = withBearer(t, r, http.MethodGet, "/admin/sessions?search=meera", tok)
	decodeBytes(t, body, &list)
	if code != http.StatusOK || len(list.Items) != 1 || list.Items[0].Name != "Meera Iyer" {
		t.Fatalf("search = %d %+v", code, list.Items)
	}

	for _, bad := range []string{"?otp_verified=maybe", "?limit=0", "?offset=-1"} {
		if code, _ := withBearer(t, r, http.MethodGet, "/admin/sessions"+bad, tok); code != http.StatusBadRequest {
			t.Errorf("%s = %d, want 400", bad, code)
		}
	}

	code, body = withBearer(t, r, http.MethodGet, "/admin/sessions/"+done, tok)
	var detail models.SessionDetail
	decodeBytes(t, body, &detail)
	if code != http.StatusOK || detail.SurveyCode != services.SurveyCode(done) || detail.Scores.IndustryAverage != 55 {
		t.Fatalf("detail = %d %+v", code, detail)
	}
	if code, _ := withBearer(t, r, http.MethodGet, "/admin/sessions/missing", tok); code != http.StatusNotFound {
		t.Errorf("missing detail = %d", code)
	}

	before := queue.count()
	if code, _ := withBearer(t, r, http.MethodPost, "/admin/sessions/"+done+"/report", tok); code != http.StatusAccepted {
		t.Fatalf("requeue = %d", code)
	}
	if queue.count() != before+1 {
		t.Errorf("tasks = %d, want %d", queue.count(), before+1)
	}
}

func TestAdminHandler_ReportRules(t *testing.T) {
	r, svc, _ := adminRouter(t)
	sess, err := svc.Create(context.Background(), "Meera Iyer", "+919822222222", "meera@example.com", true)
	if err != nil {
		t.Fatal(err)
	}
	done := completeSession(t, svc)

	admin := login(t, r, "admin")
	if code, _ := withBearer(t, r, http.MethodPost, "/admin/sessions/"+sess.ID+"/report", admin); code != http.StatusBadRequest {
		t.Errorf("incomplete session requeue = %d, want 400", code)
	}

	viewer := login(t, r, "viewer")
	if code, _ := withBearer(t, r, http.MethodGet, "/admin/sessions", viewer); code != http.StatusOK {
		t.Errorf("viewer list = %d", code)
	}
	if code, _ := withBearer(t, r, http.MethodPost, "/admin/sessions/"+done+"/report", viewer); code != http.StatusForbidden {
		t.Errorf("viewer requeue = %d, want 403", code)
	}
	if w := doJSON(t, r, http.MethodGet, "/admin/sessions", nil); w.Code != http.StatusUnauthorized {
		t.Errorf("anonymous list = %d", w.Code)
	}
}
