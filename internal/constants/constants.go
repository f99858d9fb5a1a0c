package constants

import "time"

var ProviderTimeouts = struct {
	AI      time.Duration
	HTTP    time.Duration
	LinkGet time.Duration
}{
	AI:      60 * time.Second, // profile, translation and news generation
	HTTP:    20 * time.Second, // weather and exchange-rate lookups
	LinkGet: 5 * time.Second,  // news source title resolution, per link
}

var ComparisonConfig = struct {
	MaxEntries int
}{
	MaxEntries: 3,
}

var CircuitBreakerConfig = struct {
	FailureThreshold    int
	ResetTimeout        time.Duration
	RateLimitTimeout    time.Duration
	HealthCheckInterval time.Duration
	HealthCheckTimeout  time.Duration
}{
	FailureThreshold:    3,
	ResetTimeout:        30 * time.Second,
	RateLimitTimeout:    10 * time.Minute,
	HealthCheckInterval: 5 * time.Minute,
	HealthCheckTimeout:  10 * time.Second,
}

var APIConfig = struct {
	WeatherBaseURL  string
	ExchangeBaseURL string
	FlagBaseURL     string
	DarkTileURL     string
	LightTileURL    string
	UserAgent       string
}{
	WeatherBaseURL:  "https://api.open-meteo.com/v1/forecast",
	ExchangeBaseURL: "https://open.er-api.com/v6/latest",
	FlagBaseURL:     "https://flagcdn.com/w640",
	DarkTileURL:     "https://{s}.basemaps.cartocdn.com/dark_all/{z}/{x}/{y}{r}.png",
	LightTileURL:    "https://{s}.basemaps.cartocdn.com/rastertiles/voyager/{z}/{x}/{y}{r}.png",
	UserAgent:       "terrascope/1.0",
}

var NewsConfig = struct {
	EmptyContent      string
	MaxDisplaySources int
	TitleConcurrency  int
	MaxTitleBodyBytes int64
}{
	EmptyContent:      "No news found.",
	MaxDisplaySources: 4,
	TitleConcurrency:  4,
	MaxTitleBodyBytes: 512 * 1024,
}

var Messages = struct {
	ProfileFetchFailed string
}{
	ProfileFetchFailed: "Failed to fetch country data. Please try again.",
}

// MajorCurrencies is the fixed set of targets shown in the exchange-rate panel.
var MajorCurrencies = []string{"USD", "EUR", "GBP", "JPY", "CNY", "AUD", "CAD", "CHF"}

var StringLimits = struct {
	LogPreview int
}{
	LogPreview: 200,
}

var WebSocketConfig = struct {
	WriteTimeout time.Duration
	PingInterval time.Duration
	SendBuffer   int
}{
	WriteTimeout: 10 * time.Second,
	PingInterval: 30 * time.Second,
	SendBuffer:   16,
}
