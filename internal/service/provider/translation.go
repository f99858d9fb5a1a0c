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

type TranslationService struct {
	generator JSONGenerator
	prompts   *prompt.PromptBuilder
	timeout   time.Duration
	logger    *zap.Logger
}

func NewTranslationService(generator JSONGenerator, prompts *prompt.PromptBuilder, timeout time.Duration, logger *zap.Logger) *TranslationService {
	if prompts == nil {
		prompts = prompt.DefaultPromptBuilder()
	}
	return &TranslationService{
		generator: generator,
		prompts:   prompts,
		timeout:   timeout,
		logger:    util.OrNop(logger),
	}
}

// Translate translates a description and its fun facts. The number of returned
// fun facts is not enforced; an empty description is a failure.
func (s *TranslationService) Translate(ctx context.Context, description string, funFacts []string, targetLanguage string) (*domain.TranslatedContent, error) {
	targetLanguage = strings.TrimSpace(targetLanguage)
	if targetLanguage == "" {
		return nil, errors.NewValidationError("target language is required", "targetLanguage", targetLanguage)
	}

	text, err := s.prompts.BuildContentTranslation(description, funFacts, targetLanguage)
	if err != nil {
		return nil, errors.NewProviderError("build translation prompt", NameTranslation, "translate", err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	var out domain.TranslatedContent
	if _, err := s.generator.GenerateJSON(ctx, text, ai.PresetPrecise, &out, &ai.GenerateOptions{
		Schema: translationSchema(),
	}); err != nil {
		return nil, errors.NewProviderError("translate content", NameTranslation, "translate", err)
	}

	out.Description = strings.TrimSpace(out.Description)
	if out.Description == "" {
		return nil, errors.NewProviderError("translation returned no description", NameTranslation, "translate", nil)
	}
	out.FunFacts = util.TrimAll(out.FunFacts)

	s.logger.Debug("Content translated",
		zap.String("language", targetLanguage),
		zap.Int("fun_facts", len(out.FunFacts)),
	)
	return &out, nil
}
