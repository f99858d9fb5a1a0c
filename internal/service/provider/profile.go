package provider

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/prompt"
	"github.com/kapu/terrascope/internal/service/ai"
	"github.com/kapu/terrascope/internal/util"
	"github.com/kapu/terrascope/pkg/errors"
)

// ProfileService generates country profiles with the AI model manager.
type ProfileService struct {
	generator JSONGenerator
	prompts   *prompt.PromptBuilder
	timeout   time.Duration
	logger    *zap.Logger
}

func NewProfileService(generator JSONGenerator, prompts *prompt.PromptBuilder, timeout time.Duration, logger *zap.Logger) *ProfileService {
	if prompts == nil {
		prompts = prompt.DefaultPromptBuilder()
	}
	return &ProfileService{
		generator: generator,
		prompts:   prompts,
		timeout:   timeout,
		logger:    util.OrNop(logger),
	}
}

// FetchProfile generates, normalizes and shape-checks a profile. An empty
// response, malformed JSON or a failed shape check is a fetch error.
func (s *ProfileService) FetchProfile(ctx context.Context, countryName, language string) (*domain.CountryProfile, error) {
	countryName = strings.TrimSpace(countryName)
	if countryName == "" {
		return nil, errors.NewValidationError("country name is required", "countryName", countryName)
	}

	schemaPrompt, err := s.prompts.BuildCountryProfile(countryName, language, false)
	if err != nil {
		return nil, errors.NewProviderError("build profile prompt", NameProfile, "fetch_profile", err)
	}
	strictPrompt, err := s.prompts.BuildCountryProfile(countryName, language, true)
	if err != nil {
		return nil, errors.NewProviderError("build profile prompt", NameProfile, "fetch_profile", err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var profile domain.CountryProfile
	meta, err := s.generator.GenerateJSON(ctx, schemaPrompt, ai.PresetBalanced, &profile, &ai.GenerateOptions{
		Schema:         countryProfileSchema(),
		FallbackPrompt: strictPrompt,
	})
	if err != nil {
		return nil, errors.NewProviderError("generate country profile", NameProfile, "fetch_profile", err)
	}

	profile.Normalize()
	if err := profile.Validate(); err != nil {
		s.logger.Warn("Generated profile failed shape check",
			zap.String("query", countryName),
			zap.String("iso", profile.IsoAlpha2),
			zap.Error(err),
		)
		return nil, errors.NewProviderError("invalid country profile", NameProfile, "fetch_profile", err)
	}

	s.logger.Info("Country profile generated",
		zap.String("query", countryName),
		zap.String("name", profile.Name),
		zap.String("iso", profile.IsoAlpha2),
		zap.String("language", language),
		zap.String("provider", meta.Provider),
		zap.Bool("fallback", meta.UsedFallback),
	)
	return &profile, nil
}

func withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	if timeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}
