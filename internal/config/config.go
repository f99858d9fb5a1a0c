package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Gemini     GeminiConfig
	OpenAI     OpenAIConfig
	Providers  ProvidersConfig
	News       NewsConfig
	Dashboard  DashboardConfig
	Preference PreferenceConfig
	Redis      RedisConfig
	HTTP       HTTPConfig
	Logging    LoggingConfig
}

type GeminiConfig struct {
	APIKey string
	Model  string
}

type OpenAIConfig struct {
	APIKey         string
	Model          string
	EnableFallback bool
}

type ProvidersConfig struct {
	WeatherBaseURL  string
	ExchangeBaseURL string
	HTTPTimeout     time.Duration
	AITimeout       time.Duration
	RatePerSecond   float64
}

type NewsConfig struct {
	ResolveTitles bool
	MaxSources    int
}

type DashboardConfig struct {
	AppLanguage string
	BaseURL     string
}

type PreferenceConfig struct {
	Backend      string
	Path         string
	DefaultTheme string
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type HTTPConfig struct {
	Port int
}

type LoggingConfig struct {
	Level string
	File  string
}

const (
	PreferenceBackendBolt  = "bolt"
	PreferenceBackendRedis = "redis"
)

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Gemini: GeminiConfig{
			APIKey: getEnv("GEMINI_API_KEY", ""),
			Model:  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-5-mini"),
			EnableFallback: getEnvBool("OPENAI_ENABLE_FALLBACK", true),
		},
		Providers: ProvidersConfig{
			WeatherBaseURL:  getEnv("WEATHER_BASE_URL", "https://api.open-meteo.com/v1/forecast"),
			ExchangeBaseURL: getEnv("EXCHANGE_BASE_URL", "https://open.er-api.com/v6/latest"),
			HTTPTimeout:     time.Duration(getEnvInt("PROVIDER_TIMEOUT_SECONDS", 20)) * time.Second,
			AITimeout:       time.Duration(getEnvInt("AI_TIMEOUT_SECONDS", 60)) * time.Second,
			RatePerSecond:   getEnvFloat("PROVIDER_RATE_PER_SECOND", 5),
		},
		News: NewsConfig{
			ResolveTitles: getEnvBool("NEWS_RESOLVE_TITLES", false),
			MaxSources:    getEnvInt("NEWS_MAX_SOURCES", 4),
		},
		Dashboard: DashboardConfig{
			AppLanguage: getEnv("APP_LANGUAGE", "English"),
			BaseURL:     getEnv("DASHBOARD_BASE_URL", "http://localhost:8080/"),
		},
		Preference: PreferenceConfig{
			Backend:      strings.ToLower(getEnv("PREFERENCE_BACKEND", PreferenceBackendBolt)),
			Path:         getEnv("PREFERENCE_PATH", "data/preferences.db"),
			DefaultTheme: strings.ToLower(getEnv("THEME_DEFAULT", "dark")),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvInt("REDIS_DB", 0),
		},
		HTTP: HTTPConfig{
			Port: getEnvInt("HTTP_PORT", 8080),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
			File:  getEnv("LOG_FILE", ""),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Gemini.APIKey == "" {
		return fmt.Errorf("GEMINI_API_KEY is required")
	}
	switch c.Preference.Backend {
	case PreferenceBackendBolt:
		if c.Preference.Path == "" {
			return fmt.Errorf("PREFERENCE_PATH is required for the bolt backend")
		}
	case PreferenceBackendRedis:
	default:
		return fmt.Errorf("PREFERENCE_BACKEND must be %q or %q, got %q",
			PreferenceBackendBolt, PreferenceBackendRedis, c.Preference.Backend)
	}
	if c.Preference.DefaultTheme != "light" && c.Preference.DefaultTheme != "dark" {
		return fmt.Errorf("THEME_DEFAULT must be light or dark, got %q", c.Preference.DefaultTheme)
	}
	if c.HTTP.Port <= 0 {
		return fmt.Errorf("HTTP_PORT must be positive")
	}
	if strings.TrimSpace(c.Dashboard.AppLanguage) == "" {
		return fmt.Errorf("APP_LANGUAGE must not be empty")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
