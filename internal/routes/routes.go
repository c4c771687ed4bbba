package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pirlanta/internal/authz"
	"pirlanta/internal/cache"
	"pirlanta/internal/handlers"
	"pirlanta/internal/middleware"
)

// Handlers: всё, что нужно таблице маршрутов. Threats может быть nil (фид выключен).
type Handlers struct {
	Assessment *handlers.AssessmentHandler
	Site       *handlers.SiteHandler
	Admin      *handlers.AdminHandler
	Threats    *handlers.ThreatHandler
}

type Options struct {
	AdminSecret  []byte
	ThreatAPIKey string
	Limiter      cache.RateLimiter
}

func SetupRoutes(r *gin.Engine, h Handlers, opts Options) *gin.Engine {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// ---- public site
	api := r.Group("/api")
	{
		api.GET("/home/", h.Site.Home)
		api.GET("/threatmap/", h.Site.ThreatMap)
		api.POST("/contact/", h.Site.SubmitContact)
	}

	// ---- assessment
	as := api.Group("/assessment")
	{
		as.POST("/start/", h.Assessment.Start)
		as.POST("/resend-otp/", h.Assessment.ResendOTP)
		as.POST("/verify-otp/", h.Assessment.VerifyOTP)
		as.GET("/questions/:step/", h.Assessment.Questions)
		as.POST("/submit/", h.Assessment.Submit)
		as.GET("/session/", h.Assessment.Session)
	}

	// ---- threat feed (API key + rate limit)
	if h.Threats != nil {
		th := api.Group("/threats", middleware.APIKey(opts.ThreatAPIKey), middleware.RateLimit(opts.Limiter))
		{
			th.GET("/live", h.Threats.Live)
			th.GET("/stats", h.Threats.Stats)
			th.GET("/by-country", h.Threats.ByCountry)
		}
		r.GET("/ws/threats", h.Threats.Stream)
	}

	// ---- admin (JWT)
	r.POST("/admin/login", h.Admin.Login)
	admin := r.Group("/admin",
		middleware.AdminAuth(opts.AdminSecret),
		middleware.ReadOnlyGuard(),
		middleware.RequireRoles(authz.RoleAdmin, authz.RoleViewer),
	)
	{
		admin.GET("/sessions", h.Admin.ListSessions)
		admin.GET("/sessions/:id", h.Admin.SessionDetail)
		admin.POST("/sessions/:id/report", h.Admin.ResendReport)
	}

	return r
}
