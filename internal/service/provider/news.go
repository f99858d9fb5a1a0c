package provider

import (
	"context"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/constants"
	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/prompt"
	"github.com/kapu/terrascope/internal/service/ai"
	"github.com/kapu/terrascope/internal/util"
	"github.com/kapu/terrascope/pkg/errors"
)

// NewsService builds a headline digest from a search-grounded generation.
type NewsService struct {
	generator  GroundedGenerator
	prompts    *prompt.PromptBuilder
	titles     *LinkTitleResolver
	maxSources int
	timeout    time.Duration
	logger     *zap.Logger
}

type NewsServiceOptions struct {
	Timeout time.Duration
	// MaxSources caps the digest's source list after deduplication; 0 keeps all.
	MaxSources int
	// Titles resolves page titles for sources labelled only with a domain; nil disables it.
	Titles *LinkTitleResolver
}

func NewNewsService(generator GroundedGenerator, prompts *prompt.PromptBuilder, opts NewsServiceOptions, logger *zap.Logger) *NewsService {
	if prompts == nil {
		prompts = prompt.DefaultPromptBuilder()
	}
	return &NewsService{
		generator:  generator,
		prompts:    prompts,
		titles:     opts.Titles,
		maxSources: opts.MaxSources,
		timeout:    opts.Timeout,
		logger:     util.OrNop(logger),
	}
}

// FetchNews returns the digest for a country. No headlines is still a success.
func (s *NewsService) FetchNews(ctx context.Context, countryName, language string) (*domain.NewsDigest, error) {
	text, err := s.prompts.BuildCountryNews(countryName, language)
	if err != nil {
		return nil, errors.NewProviderError("build news prompt", NameNews, "fetch_news", err)
	}

	ctx, cancel := withTimeout(ctx, s.timeout)
	defer cancel()

	result, err := s.generator.GenerateGrounded(ctx, text, ai.PresetCreative)
	if err != nil {
		return nil, errors.NewProviderError("fetch news", NameNews, "fetch_news", err)
	}

	digest := &domain.NewsDigest{
		Content: strings.TrimSpace(result.Text),
		Sources: dedupeSources(result.Sources),
	}
	if digest.Content == "" {
		digest.Content = constants.NewsConfig.EmptyContent
	}
	if s.maxSources > 0 && len(digest.Sources) > s.maxSources {
		digest.Sources = digest.Sources[:s.maxSources]
	}
	if s.titles != nil && len(digest.Sources) > 0 {
		digest.Sources = s.titles.Resolve(ctx, digest.Sources)
	}

	s.logger.Debug("News digest fetched",
		zap.String("country", countryName),
		zap.String("language", language),
		zap.Int("sources", len(digest.Sources)),
	)
	return digest, nil
}

// dedupeSources keeps the first source for every uri, preserving order.
func dedupeSources(in []ai.GroundingSource) []domain.NewsSource {
	out := make([]domain.NewsSource, 0, len(in))
	seen := make(map[string]struct{}, len(in))
	for _, src := range in {
		if src.URI == "" || src.Title == "" {
			continue
		}
		if _, ok := seen[src.URI]; ok {
			continue
		}
		seen[src.URI] = struct{}{}
		out = append(out, domain.NewsSource{Title: src.Title, URI: src.URI})
	}
	return out
}
