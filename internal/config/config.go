package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// EnvPrefix: префикс переменных окружения, перекрывающих config.yaml
const EnvPrefix = "PIRLANTA"

const DefaultPath = "config/config.yaml"

type ServerConfig struct {
	Port           int      `yaml:"port" envconfig:"port"`
	Mode           string   `yaml:"mode" envconfig:"mode"`
	AllowedOrigins []string `yaml:"allowed_origins" envconfig:"allowed_origins"`
}

type DatabaseConfig struct {
	Driver string `yaml:"driver" envconfig:"driver"` // postgres | sqlite3
	DSN    string `yaml:"url" envconfig:"url"`
}

type EmailConfig struct {
	SMTPHost     string `yaml:"smtp_host" envconfig:"smtp_host"`
	SMTPPort     int    `yaml:"smtp_port" envconfig:"smtp_port"`
	SMTPUser     string `yaml:"smtp_user" envconfig:"smtp_user"`
	SMTPPassword string `yaml:"smtp_password" envconfig:"smtp_password"`
	FromEmail    string `yaml:"from_email" envconfig:"from_email"`
	SalesEmail   string `yaml:"sales_email" envconfig:"sales_email"`
}

type MobizonConfig struct {
	APIKey   string `yaml:"api_key" envconfig:"api_key"`
	SenderID string `yaml:"sender_id" envconfig:"sender_id"`
	DryRun   bool   `yaml:"dry_run" envconfig:"dry_run"`
}

type TelegramConfig struct {
	BotToken string `yaml:"bot_token" envconfig:"bot_token"`
	ChatID   int64  `yaml:"chat_id" envconfig:"chat_id"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr" envconfig:"addr"`
	Password string `yaml:"password" envconfig:"password"`
	DB       int    `yaml:"db" envconfig:"db"`
}

type AdminConfig struct {
	Username     string `yaml:"username" envconfig:"username"`
	PasswordHash string `yaml:"password_hash" envconfig:"password_hash"`
	// read-only учётка для просмотра сессий (опционально)
	ViewerUsername     string        `yaml:"viewer_username" envconfig:"viewer_username"`
	ViewerPasswordHash string        `yaml:"viewer_password_hash" envconfig:"viewer_password_hash"`
	JWTSecret          string        `yaml:"jwt_secret" envconfig:"jwt_secret"`
	TokenTTL           time.Duration `yaml:"token_ttl" envconfig:"token_ttl"`
}

type ThreatsConfig struct {
	Enabled            bool   `yaml:"enabled" envconfig:"enabled"`
	APIKey             string `yaml:"api_key" envconfig:"api_key"`
	RateLimitPerMinute int    `yaml:"rate_limit_per_minute" envconfig:"rate_limit_per_minute"`
	BufferSize         int    `yaml:"buffer_size" envconfig:"buffer_size"`
}

type AssessmentConfig struct {
	OTPTTL           time.Duration `yaml:"otp_ttl" envconfig:"otp_ttl"`
	OTPChannel       string        `yaml:"otp_channel" envconfig:"otp_channel"` // sms | email | both
	ReportWorkers    int           `yaml:"report_workers" envconfig:"report_workers"`
	ReportQueueSize  int           `yaml:"report_queue_size" envconfig:"report_queue_size"`
	ReportAttempts   int           `yaml:"report_attempts" envconfig:"report_attempts"`
	ReportRetryDelay time.Duration `yaml:"report_retry_delay" envconfig:"report_retry_delay"`
}

type FilesConfig struct {
	RootDir  string `yaml:"root_dir" envconfig:"root_dir"`
	FontPath string `yaml:"font_path" envconfig:"font_path"`
	LogoPath string `yaml:"logo_path" envconfig:"logo_path"`
}

type Config struct {
	Server     ServerConfig     `yaml:"server" envconfig:"server"`
	Database   DatabaseConfig   `yaml:"database" envconfig:"database"`
	Email      EmailConfig      `yaml:"email" envconfig:"email"`
	Mobizon    MobizonConfig    `yaml:"mobizon" envconfig:"mobizon"`
	Telegram   TelegramConfig   `yaml:"telegram" envconfig:"telegram"`
	Redis      RedisConfig      `yaml:"redis" envconfig:"redis"`
	Admin      AdminConfig      `yaml:"admin" envconfig:"admin"`
	Threats    ThreatsConfig    `yaml:"threats" envconfig:"threats"`
	Assessment AssessmentConfig `yaml:"assessment" envconfig:"assessment"`
	Files      FilesConfig      `yaml:"files" envconfig:"files"`
}

// Load читает YAML (если файл есть), затем .env и переменные PIRLANTA_*,
// которые перекрывают значения из файла.
func Load(path string) (*Config, error) {
	if path == "" {
		path = DefaultPath
	}

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("[config] .env not loaded: %v", err)
	}

	var cfg Config
	f, err := os.Open(path)
	switch {
	case err == nil:
		defer f.Close()
		if err := yaml.NewDecoder(f).Decode(&cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("[config] %s not found, using env and defaults", path)
	default:
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("env overlay: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Server.Mode == "" {
		c.Server.Mode = "debug"
	}
	if c.Database.Driver == "" {
		c.Database.Driver = "postgres"
	}
	if c.Email.SMTPPort == 0 {
		c.Email.SMTPPort = 587
	}
	if c.Email.FromEmail == "" {
		c.Email.FromEmail = "noreply@pirlanta.in"
	}
	if c.Admin.TokenTTL <= 0 {
		c.Admin.TokenTTL = 15 * time.Minute
	}
	if c.Threats.RateLimitPerMinute <= 0 {
		c.Threats.RateLimitPerMinute = 120
	}
	if c.Threats.BufferSize <= 0 {
		c.Threats.BufferSize = 200
	}
	if c.Assessment.OTPTTL <= 0 {
		c.Assessment.OTPTTL = 5 * time.Minute
	}
	if c.Assessment.OTPChannel == "" {
		c.Assessment.OTPChannel = "email"
	}
	if c.Assessment.ReportWorkers <= 0 {
		c.Assessment.ReportWorkers = 2
	}
	if c.Assessment.ReportQueueSize <= 0 {
		c.Assessment.ReportQueueSize = 64
	}
	if c.Assessment.ReportAttempts <= 0 {
		c.Assessment.ReportAttempts = 3
	}
	if c.Assessment.ReportRetryDelay <= 0 {
		c.Assessment.ReportRetryDelay = 5 * time.Second
	}
	if c.Files.RootDir == "" {
		c.Files.RootDir = "./files"
	}
	if c.Files.FontPath == "" {
		c.Files.FontPath = "assets/fonts/DejaVuSans.ttf"
	}
}

func (c *Config) IsProduction() bool {
	return c.Server.Mode == "release"
}
