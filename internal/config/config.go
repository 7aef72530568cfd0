package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/xxxsen/common/logger"
)

type Config struct {
	Port        int              `json:"port"`
	JWTSecret   string           `json:"jwt_secret"`
	JWTTTLHours int              `json:"jwt_ttl_hours"`
	CORSOrigins []string         `json:"cors_origins"`
	LogConfig   logger.LogConfig `json:"log_config"`
	Database    DatabaseConfig   `json:"database"`
	Site        SiteConfig       `json:"site"`
	AI          AIConfig         `json:"ai"`
	RateLimit   RateLimitConfig  `json:"rate_limit"`
	Mail        MailConfig       `json:"mail"`
	GitHub      GitHubConfig     `json:"github"`
	Uploads     UploadsConfig    `json:"uploads"`
}

type DatabaseConfig struct {
	DSN      string `json:"dsn"`
	Host     string `json:"host"`
	Port     int    `json:"port"`
	User     string `json:"user"`
	Password string `json:"password"`
	DBName   string `json:"db_name"`
	SSLMode  string `json:"ssl_mode"`
}

type SiteConfig struct {
	OwnerName string `json:"owner_name"`
	BaseURL   string `json:"base_url"`
}

type AIConfig struct {
	APIKey         string `json:"api_key"`
	Model          string `json:"model"`
	MockMode       bool   `json:"mock_mode"`
	TimeoutSeconds int    `json:"timeout_seconds"`
}

type RateLimitConfig struct {
	ChatPerMinute    int `json:"chat_per_minute"`
	ContactPerMinute int `json:"contact_per_minute"`
	WindowSeconds    int `json:"window_seconds"`
}

type MailConfig struct {
	Host      string `json:"host"`
	Port      int    `json:"port"`
	Username  string `json:"username"`
	Password  string `json:"password"`
	From      string `json:"from"`
	ContactTo string `json:"contact_to"`
}

type GitHubConfig struct {
	Token         string `json:"token"`
	Username      string `json:"username"`
	CacheTTLHours int    `json:"cache_ttl_hours"`
}

type UploadsConfig struct {
	Endpoint     string `json:"endpoint"`
	Region       string `json:"region"`
	Bucket       string `json:"bucket"`
	SecretID     string `json:"secret_id"`
	SecretKey    string `json:"secret_key"`
	Prefix       string `json:"prefix"`
	PublicURL    string `json:"public_url"`
	ExpireSecond int    `json:"expire_second"`
}

func Load(path string) (*Config, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	var cfg Config
	if err := json.NewDecoder(file).Decode(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if cfg.Port == 0 {
		return nil, fmt.Errorf("port is required")
	}
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("jwt_secret is required")
	}
	if cfg.Database.DSN == "" && cfg.Database.Host == "" {
		return nil, fmt.Errorf("database.dsn or database.host is required")
	}
	if cfg.JWTTTLHours == 0 {
		cfg.JWTTTLHours = 72
	}
	if cfg.LogConfig.Level == "" {
		cfg.LogConfig.Level = "info"
	}
	if cfg.Site.OwnerName == "" {
		cfg.Site.OwnerName = "Hit Kalariya"
	}
	if cfg.AI.Model == "" {
		cfg.AI.Model = "gemini-2.5-flash-lite"
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = 60
	}
	if cfg.RateLimit.ChatPerMinute == 0 {
		cfg.RateLimit.ChatPerMinute = 10
	}
	if cfg.RateLimit.ContactPerMinute == 0 {
		cfg.RateLimit.ContactPerMinute = 3
	}
	if cfg.RateLimit.WindowSeconds == 0 {
		cfg.RateLimit.WindowSeconds = 60
	}
	if cfg.GitHub.CacheTTLHours == 0 {
		cfg.GitHub.CacheTTLHours = 6
	}
	if cfg.Uploads.ExpireSecond == 0 {
		cfg.Uploads.ExpireSecond = 600
	}
	return &cfg, nil
}
