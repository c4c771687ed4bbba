package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/lib/pq"
	_ "github.com/mattn/go-sqlite3"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "pirlanta/docs"
	"pirlanta/internal/authz"
	"pirlanta/internal/cache"
	"pirlanta/internal/config"
	"pirlanta/internal/handlers"
	"pirlanta/internal/middleware"
	"pirlanta/internal/pdf"
	"pirlanta/internal/realtime"
	"pirlanta/internal/repositories"
	"pirlanta/internal/routes"
	"pirlanta/internal/services"
	"pirlanta/internal/utils"
)

const shutdownTimeout = 15 * time.Second

func Run() {
	cfg, err := config.Load(os.Getenv("PIRLANTA_CONFIG"))
	if err != nil {
		log.Fatal("Ошибка загрузки конфига: ", err)
	}
	gin.SetMode(cfg.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// === DB ===
	db, err := openDB(ctx, cfg.Database)
	if err != nil {
		log.Fatal("Ошибка подключения к БД: ", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Ошибка закрытия БД: %v", err)
		}
	}()

	// === Repos ===
	sessionRepo := repositories.NewAssessmentSessionRepository(db)

	// === Services ===
	emailService := services.NewEmailService(
		cfg.Email.SMTPHost,
		cfg.Email.SMTPPort,
		cfg.Email.SMTPUser,
		cfg.Email.SMTPPassword,
		cfg.Email.FromEmail,
		cfg.Email.SalesEmail,
	)

	// SMS провайдер (Mobizon) из конфига
	mobizonClient := utils.NewClientWithOptions(
		cfg.Mobizon.APIKey,
		cfg.Mobizon.SenderID,
		cfg.Mobizon.DryRun,
	)
	otpDelivery := services.NewOTPDelivery(cfg.Assessment.OTPChannel, mobizonClient, emailService, cfg.Assessment.OTPTTL)

	telegram, err := services.NewTelegramService(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
	if err != nil {
		// Telegram не критичен: работаем без уведомлений
		log.Printf("[app] telegram disabled: %v", err)
		telegram, _ = services.NewTelegramService("", 0)
	}

	// PDF генератор: DejaVuSans.ttf в assets/fonts, иначе встроенный Helvetica
	pdfGen := pdf.NewReportGenerator(cfg.Files.RootDir, cfg.Files.FontPath, cfg.Files.LogoPath)

	dispatcher := services.NewReportDispatcher(sessionRepo, pdfGen, emailService, telegram, pdfGen, services.DispatcherOptions{
		Workers:    cfg.Assessment.ReportWorkers,
		QueueSize:  cfg.Assessment.ReportQueueSize,
		Attempts:   cfg.Assessment.ReportAttempts,
		RetryDelay: cfg.Assessment.ReportRetryDelay,
	})
	dispatcher.Start(ctx)

	assessmentService := services.NewAssessmentService(sessionRepo, otpDelivery, dispatcher, cfg.Assessment.OTPTTL)
	contactService := services.NewContactService(emailService, telegram)
	siteService := services.NewSiteService()

	secret, err := adminSecret(cfg.Admin)
	if err != nil {
		log.Fatal("Ошибка генерации JWT секрета: ", err)
	}
	authService := services.NewAuthService([]services.AdminAccount{
		{Username: cfg.Admin.Username, PasswordHash: cfg.Admin.PasswordHash, RoleID: authz.RoleAdmin},
		{Username: cfg.Admin.ViewerUsername, PasswordHash: cfg.Admin.ViewerPasswordHash, RoleID: authz.RoleViewer},
	}, secret, cfg.Admin.TokenTTL)

	// === Threat feed ===
	hub := realtime.NewHub(cfg.Server.AllowedOrigins)
	defer hub.Close()

	var threatHandler *handlers.ThreatHandler
	if cfg.Threats.Enabled {
		threatStore := services.NewThreatStore(cfg.Threats.BufferSize)
		feed := services.NewThreatFeed(threatStore, hub)
		go feed.Run(ctx)
		threatHandler = handlers.NewThreatHandler(feed, threatStore, hub)
	}
	limiter, closeLimiter := newLimiter(ctx, cfg)
	defer closeLimiter()

	// === Handlers ===
	h := routes.Handlers{
		Assessment: handlers.NewAssessmentHandler(assessmentService),
		Site:       handlers.NewSiteHandler(siteService, contactService),
		Admin:      handlers.NewAdminHandler(authService, assessmentService),
		Threats:    threatHandler,
	}

	// === Gin ===
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(middleware.CORS(cfg.Server.AllowedOrigins))

	// Swagger
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	routes.SetupRoutes(router, h, routes.Options{
		AdminSecret:  secret,
		ThreatAPIKey: cfg.Threats.APIKey,
		Limiter:      limiter,
	})

	// === Run ===
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		log.Printf("Сервер запущен на %s", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Ошибка запуска сервера: ", err)
		}
	}()

	<-ctx.Done()
	log.Printf("[app] shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("[app] http shutdown: %v", err)
	}
	if err := dispatcher.Stop(shutdownCtx); err != nil {
		log.Printf("[app] report dispatcher stop: %v", err)
	}
}

func openDB(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open(cfg.Driver, cfg.DSN)
	if err != nil {
		return nil, err
	}
	if cfg.Driver == "sqlite3" {
		// sqlite: один писатель
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping %s: %w", cfg.Driver, err)
	}
	if err := repositories.Migrate(ctx, db, cfg.Driver); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// без секрета в конфиге токены живут до рестарта процесса
func adminSecret(cfg config.AdminConfig) ([]byte, error) {
	if cfg.JWTSecret != "" {
		return []byte(cfg.JWTSecret), nil
	}
	log.Printf("[app] admin.jwt_secret is empty, generating an ephemeral one")
	s, err := utils.NewRefreshToken(32)
	if err != nil {
		return nil, err
	}
	return []byte(s), nil
}

// Redis, если задан и отвечает; иначе счётчики в памяти процесса
func newLimiter(ctx context.Context, cfg *config.Config) (cache.RateLimiter, func()) {
	limit := cfg.Threats.RateLimitPerMinute
	if cfg.Redis.Addr == "" {
		return cache.NewMemoryLimiter(limit, time.Minute), func() {}
	}
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.Printf("[app] redis %s unavailable, using in-memory rate limit: %v", cfg.Redis.Addr, err)
		client.Close()
		return cache.NewMemoryLimiter(limit, time.Minute), func() {}
	}
	log.Printf("[app] rate limit counters in redis %s", cfg.Redis.Addr)
	return cache.NewRedisLimiter(client, "pirlanta:ratelimit", limit, time.Minute), func() { client.Close() }
}
