package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Gemini.Model != "gemini-2.5-flash" {
		t.Fatalf("unexpected default model %q", cfg.Gemini.Model)
	}
	if cfg.Providers.HTTPTimeout != 20*time.Second {
		t.Fatalf("unexpected http timeout %v", cfg.Providers.HTTPTimeout)
	}
	if cfg.Preference.Backend != PreferenceBackendBolt {
		t.Fatalf("unexpected preference backend %q", cfg.Preference.Backend)
	}
	if cfg.Dashboard.AppLanguage != "English" {
		t.Fatalf("unexpected app language %q", cfg.Dashboard.AppLanguage)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")
	t.Setenv("PREFERENCE_BACKEND", "REDIS")
	t.Setenv("THEME_DEFAULT", "Light")
	t.Setenv("PROVIDER_RATE_PER_SECOND", "2.5")
	t.Setenv("NEWS_RESOLVE_TITLES", "true")
	t.Setenv("HTTP_PORT", "9090")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Preference.Backend != PreferenceBackendRedis || cfg.Preference.DefaultTheme != "light" {
		t.Fatalf("unexpected preference config %+v", cfg.Preference)
	}
	if cfg.Providers.RatePerSecond != 2.5 || !cfg.News.ResolveTitles || cfg.HTTP.Port != 9090 {
		t.Fatalf("overrides not applied: %+v %+v %+v", cfg.Providers, cfg.News, cfg.HTTP)
	}
}

func TestValidateRejects(t *testing.T) {
	base := func() *Config {
		return &Config{
			Gemini:     GeminiConfig{APIKey: "k"},
			Preference: PreferenceConfig{Backend: PreferenceBackendBolt, Path: "p.db", DefaultTheme: "dark"},
			HTTP:       HTTPConfig{Port: 8080},
			Dashboard:  DashboardConfig{AppLanguage: "English"},
		}
	}

	cases := map[string]struct {
		mutate func(*Config)
		want   string
	}{
		"missing gemini key": {func(c *Config) { c.Gemini.APIKey = "" }, "GEMINI_API_KEY"},
		"unknown backend":    {func(c *Config) { c.Preference.Backend = "sqlite" }, "PREFERENCE_BACKEND"},
		"bad theme":          {func(c *Config) { c.Preference.DefaultTheme = "sepia" }, "THEME_DEFAULT"},
		"bad port":           {func(c *Config) { c.HTTP.Port = 0 }, "HTTP_PORT"},
		"empty language":     {func(c *Config) { c.Dashboard.AppLanguage = " " }, "APP_LANGUAGE"},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := base()
			tc.mutate(cfg)
			err := cfg.Validate()
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error mentioning %s, got %v", tc.want, err)
			}
		})
	}

	if err := base().Validate(); err != nil {
		t.Fatalf("base config must be valid: %v", err)
	}
}
