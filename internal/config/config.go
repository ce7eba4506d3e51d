package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds runtime configuration values for the API service.
type Config struct {
	AppName                string
	AppEnv                 string
	AppPort                string
	DatabaseURL            string
	RedisURL               string
	JWTSecret              string
	CloudinaryCloudName    string
	CloudinaryAPIKey       string
	CloudinaryAPISecret    string
	CloudinaryUploadFolder string
	OpenRouterAPIKey       string
	OpenRouterBaseURL      string
	OpenRouterReferer      string
	OpenRouterTitle        string
	RankingsCacheTTL       time.Duration
	PracticeScoreAward     float64
	AvatarMaxSizeMB        int
	AIRateLimitPerMinute   int
}

// HTTPAddress returns the address the HTTP server should listen on.
func (c Config) HTTPAddress() string {
	if strings.HasPrefix(c.AppPort, ":") {
		return c.AppPort
	}

	return fmt.Sprintf(":%s", c.AppPort)
}

// Load reads configuration values from environment variables and optional .env file.
func Load() (Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetEnvPrefix("LIMVA")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	v.SetDefault("app.name", "LimVA API")
	v.SetDefault("app.env", "development")
	v.SetDefault("app.port", "8080")
	v.SetDefault("cloudinary.folder", "limva/uploads")
	v.SetDefault("openrouter.base_url", "https://openrouter.ai/api/v1")
	v.SetDefault("openrouter.referer", "https://limva.vn")
	v.SetDefault("openrouter.title", "LimVA")
	v.SetDefault("rankings.cache_ttl", "5m")
	v.SetDefault("practice.score_award", 10.0)
	v.SetDefault("avatar.max_size_mb", 5)
	v.SetDefault("ai.rate_limit_per_minute", 10)

	ttlString := v.GetString("rankings.cache_ttl")
	if ttlString == "" {
		ttlString = "5m"
	}

	ttl, err := time.ParseDuration(ttlString)
	if err != nil {
		return Config{}, fmt.Errorf("invalid rankings cache ttl: %w", err)
	}

	cfg := Config{
		AppName:                v.GetString("app.name"),
		AppEnv:                 v.GetString("app.env"),
		AppPort:                v.GetString("app.port"),
		DatabaseURL:            v.GetString("database.url"),
		RedisURL:               v.GetString("redis.url"),
		JWTSecret:              v.GetString("jwt.secret"),
		CloudinaryCloudName:    v.GetString("cloudinary.cloud_name"),
		CloudinaryAPIKey:       v.GetString("cloudinary.api_key"),
		CloudinaryAPISecret:    v.GetString("cloudinary.api_secret"),
		CloudinaryUploadFolder: v.GetString("cloudinary.folder"),
		OpenRouterAPIKey:       v.GetString("openrouter.api_key"),
		OpenRouterBaseURL:      v.GetString("openrouter.base_url"),
		OpenRouterReferer:      v.GetString("openrouter.referer"),
		OpenRouterTitle:        v.GetString("openrouter.title"),
		RankingsCacheTTL:       ttl,
		PracticeScoreAward:     v.GetFloat64("practice.score_award"),
		AvatarMaxSizeMB:        v.GetInt("avatar.max_size_mb"),
		AIRateLimitPerMinute:   v.GetInt("ai.rate_limit_per_minute"),
	}

	if cfg.JWTSecret == "" {
		return Config{}, fmt.Errorf("jwt secret must be provided")
	}

	if cfg.PracticeScoreAward <= 0 {
		cfg.PracticeScoreAward = 10
	}

	if cfg.AIRateLimitPerMinute <= 0 {
		cfg.AIRateLimitPerMinute = 10
	}

	return cfg, nil
}
