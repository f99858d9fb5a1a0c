package app

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/config"
	"github.com/kapu/terrascope/internal/dashboard"
	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/prompt"
	"github.com/kapu/terrascope/internal/server"
	"github.com/kapu/terrascope/internal/service/ai"
	"github.com/kapu/terrascope/internal/service/preference"
	"github.com/kapu/terrascope/internal/service/provider"
)

// Container bundles the assembled dashboard and the infrastructure behind it.
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	Coordinator  *dashboard.Coordinator
	Location     *dashboard.URLLocation
	Hub          *server.Hub
	ModelManager *ai.ModelManager

	closers []func()
}

// Build assembles providers, the preference store and the coordinator. The
// stored theme is loaded before Build returns.
func Build(ctx context.Context, cfg *config.Config, logger *zap.Logger) (container *Container, err error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger must not be nil")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	var closers []func()
	defer func() {
		if err != nil {
			for i := len(closers) - 1; i >= 0; i-- {
				closers[i]()
			}
		}
	}()

	// AI stack
	modelManager, err := ai.NewModelManager(ctx, ai.ModelManagerConfig{
		GeminiAPIKey:       cfg.Gemini.APIKey,
		OpenAIAPIKey:       cfg.OpenAI.APIKey,
		DefaultGeminiModel: cfg.Gemini.Model,
		DefaultOpenAIModel: cfg.OpenAI.Model,
		EnableFallback:     cfg.OpenAI.EnableFallback,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create model manager: %w", err)
	}
	prompts := prompt.NewPromptBuilder()

	// HTTP providers
	httpClient := &http.Client{Timeout: cfg.Providers.HTTPTimeout}
	weatherRequester := provider.NewJSONRequester(provider.NameWeather, httpClient,
		cfg.Providers.RatePerSecond, cfg.Providers.HTTPTimeout, logger)
	exchangeRequester := provider.NewJSONRequester(provider.NameExchange, httpClient,
		cfg.Providers.RatePerSecond, cfg.Providers.HTTPTimeout, logger)

	var titles *provider.LinkTitleResolver
	if cfg.News.ResolveTitles {
		titles = provider.NewLinkTitleResolver(httpClient, logger)
	}

	providers := dashboard.Providers{
		Profile:     provider.NewProfileService(modelManager, prompts, cfg.Providers.AITimeout, logger),
		Translation: provider.NewTranslationService(modelManager, prompts, cfg.Providers.AITimeout, logger),
		News: provider.NewNewsService(modelManager, prompts, provider.NewsServiceOptions{
			Timeout:    cfg.Providers.AITimeout,
			MaxSources: cfg.News.MaxSources,
			Titles:     titles,
		}, logger),
		Weather: provider.NewWeatherService(weatherRequester, cfg.Providers.WeatherBaseURL, logger),
		Rates:   provider.NewExchangeService(exchangeRequester, cfg.Providers.ExchangeBaseURL, logger),
	}

	// Preference store
	prefs, err := preference.New(cfg.Preference, cfg.Redis, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to open preference store: %w", err)
	}
	closers = append(closers, func() {
		_ = prefs.Close()
	})

	// Dashboard
	location, err := dashboard.NewURLLocation(cfg.Dashboard.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid dashboard base url: %w", err)
	}
	hub := server.NewHub(logger)
	closers = append(closers, hub.Close)

	defaultTheme, err := domain.ParseTheme(cfg.Preference.DefaultTheme)
	if err != nil {
		return nil, fmt.Errorf("invalid default theme: %w", err)
	}

	coordinator, err := dashboard.NewCoordinator(providers, dashboard.Options{
		AppLanguage:  cfg.Dashboard.AppLanguage,
		DefaultTheme: defaultTheme,
		ShareBaseURL: cfg.Dashboard.BaseURL,
		Location:     &dashboard.NotifyingLocation{Location: location, OnChange: hub.BroadcastLocation},
		Preferences:  prefs,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to create coordinator: %w", err)
	}

	theme := coordinator.LoadTheme(ctx)
	logger.Info("Dashboard assembled",
		zap.String("app_language", cfg.Dashboard.AppLanguage),
		zap.String("theme", theme.String()),
		zap.String("preference_backend", cfg.Preference.Backend),
	)

	return &Container{
		Config:       cfg,
		Logger:       logger,
		Coordinator:  coordinator,
		Location:     location,
		Hub:          hub,
		ModelManager: modelManager,
		closers:      closers,
	}, nil
}

// NewServer wires the HTTP API around the container's coordinator.
func (c *Container) NewServer() *server.Server {
	return server.New(c.Coordinator, c.Hub, server.Options{
		Port:      c.Config.HTTP.Port,
		Navigator: c.Location,
	}, c.Logger)
}

// Close releases resources in reverse order of creation.
func (c *Container) Close() {
	if c == nil {
		return
	}
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	c.closers = nil
}
