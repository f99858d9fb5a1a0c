package provider

import (
	"context"

	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/service/ai"
)

// ProfileProvider produces a complete country profile. Its failure aborts a search.
type ProfileProvider interface {
	FetchProfile(ctx context.Context, countryName, language string) (*domain.CountryProfile, error)
}

type TranslationProvider interface {
	Translate(ctx context.Context, description string, funFacts []string, targetLanguage string) (*domain.TranslatedContent, error)
}

// NewsProvider returns a headline digest. An empty result is a valid digest.
type NewsProvider interface {
	FetchNews(ctx context.Context, countryName, language string) (*domain.NewsDigest, error)
}

type WeatherProvider interface {
	CurrentWeather(ctx context.Context, coords domain.Coordinates) (*domain.Weather, error)
}

type ExchangeRateProvider interface {
	Rates(ctx context.Context, baseCode string) (*domain.ExchangeRates, error)
}

// JSONGenerator is the slice of ai.ModelManager the profile and translation
// adapters need.
type JSONGenerator interface {
	GenerateJSON(ctx context.Context, prompt string, preset ai.ModelPreset, dest any, opts *ai.GenerateOptions) (*ai.GenerateMetadata, error)
}

type GroundedGenerator interface {
	GenerateGrounded(ctx context.Context, prompt string, preset ai.ModelPreset) (*ai.GroundedResult, error)
}

// Provider names used in errors and logs.
const (
	NameProfile     = "profile"
	NameTranslation = "translation"
	NameNews        = "news"
	NameWeather     = "open-meteo"
	NameExchange    = "open-er-api"
)
