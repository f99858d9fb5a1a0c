package ai

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kapu/terrascope/internal/constants"
	"github.com/kapu/terrascope/internal/util"
	apperrors "github.com/kapu/terrascope/pkg/errors"
)

// ModelManager runs generation against Gemini, falls back to OpenAI when
// configured, and fails fast while its circuit is open.
type ModelManager struct {
	primary        JSONProvider
	grounded       GroundedProvider
	fallback       JSONProvider
	logger         *zap.Logger
	circuitBreaker *util.CircuitBreaker
}

type ModelManagerConfig struct {
	GeminiAPIKey       string
	OpenAIAPIKey       string
	DefaultGeminiModel string
	DefaultOpenAIModel string
	EnableFallback     bool
}

var (
	statusCodeRegex   = regexp.MustCompile(`\b(5\d{2})\b`)
	geminiCodeRegex   = regexp.MustCompile(`"code":\s*(\d{3})`)
	openaiStatusRegex = regexp.MustCompile(`^(\d{3})\s`)
)

func NewModelManager(ctx context.Context, cfg ModelManagerConfig, logger *zap.Logger) (*ModelManager, error) {
	logger = util.OrNop(logger)

	geminiClient, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.GeminiAPIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	defaultGemini := cfg.DefaultGeminiModel
	if defaultGemini == "" {
		defaultGemini = "gemini-2.5-flash"
	}

	defaultOpenAI := cfg.DefaultOpenAIModel
	if defaultOpenAI == "" {
		defaultOpenAI = "gpt-5-mini"
	}

	gemini := NewGeminiProvider(geminiClient, defaultGemini, logger)

	var fallback JSONProvider
	if cfg.EnableFallback && cfg.OpenAIAPIKey != "" {
		fallback = NewOpenAIProvider(cfg.OpenAIAPIKey, defaultOpenAI, logger)
		logger.Info("OpenAI fallback enabled", zap.String("model", defaultOpenAI))
	} else {
		logger.Info("OpenAI fallback disabled")
	}

	return newModelManager(gemini, gemini, fallback, logger), nil
}

func newModelManager(primary JSONProvider, grounded GroundedProvider, fallback JSONProvider, logger *zap.Logger) *ModelManager {
	mm := &ModelManager{
		primary:  primary,
		grounded: grounded,
		fallback: fallback,
		logger:   util.OrNop(logger),
	}
	mm.circuitBreaker = util.NewCircuitBreaker(
		"ai",
		constants.CircuitBreakerConfig.FailureThreshold,
		constants.CircuitBreakerConfig.ResetTimeout,
		constants.CircuitBreakerConfig.HealthCheckInterval,
		mm.healthCheckPing,
		mm.logger,
	)
	return mm
}

// GenerateJSON generates a JSON document and decodes it into dest.
func (mm *ModelManager) GenerateJSON(ctx context.Context, prompt string, preset ModelPreset, dest any, opts *GenerateOptions) (*GenerateMetadata, error) {
	if err := mm.checkCircuit("generate_json"); err != nil {
		return nil, err
	}

	if opts == nil {
		opts = &GenerateOptions{}
	}
	opts.JSONMode = true

	var metadata *GenerateMetadata

	result, primaryErr := mm.primary.Generate(ctx, prompt, preset, opts)
	switch {
	case primaryErr == nil:
		mm.circuitBreaker.RecordSuccess()
		metadata = &GenerateMetadata{Provider: mm.primary.Name(), Model: result.Model}
	case mm.fallback != nil:
		mm.logger.Warn("Primary model failed, trying fallback",
			zap.String("provider", mm.primary.Name()),
			zap.Error(primaryErr),
		)
		fallbackResult, fallbackErr := mm.fallback.Generate(ctx, prompt, preset, opts)
		if fallbackErr != nil {
			mm.recordFailure(primaryErr, fallbackErr)
			return nil, apperrors.NewProviderError("AI generation failed", mm.fallback.Name(), "generate_json",
				errors.Join(primaryErr, fallbackErr))
		}
		mm.circuitBreaker.RecordSuccess()
		result = fallbackResult
		metadata = &GenerateMetadata{Provider: mm.fallback.Name(), Model: result.Model, UsedFallback: true}
	default:
		mm.recordFailure(primaryErr)
		return nil, apperrors.NewProviderError("AI generation failed", mm.primary.Name(), "generate_json", primaryErr)
	}

	cleaned := stripCodeFence(result.Text)
	if cleaned == "" {
		return nil, apperrors.NewProviderError("AI returned an empty response", metadata.Provider, "generate_json", nil)
	}

	if err := json.Unmarshal([]byte(cleaned), dest); err != nil {
		mm.logger.Error("Failed to unmarshal JSON response",
			zap.String("provider", metadata.Provider),
			zap.Error(err),
			zap.String("response_preview", util.TruncateString(cleaned, constants.StringLimits.LogPreview)),
		)
		return nil, apperrors.NewProviderError("AI returned invalid JSON", metadata.Provider, "generate_json", err)
	}

	return metadata, nil
}

// GenerateGrounded produces search-grounded free text. There is no fallback
// because only the primary model can ground on web search.
func (mm *ModelManager) GenerateGrounded(ctx context.Context, prompt string, preset ModelPreset) (*GroundedResult, error) {
	if mm.grounded == nil {
		return nil, apperrors.NewProviderError("grounded generation not configured", "ai", "generate_grounded", nil)
	}
	if err := mm.checkCircuit("generate_grounded"); err != nil {
		return nil, err
	}

	result, err := mm.grounded.GenerateGrounded(ctx, prompt, preset)
	if err != nil {
		mm.recordFailure(err)
		return nil, apperrors.NewProviderError("grounded generation failed", "grounded", "generate_grounded", err)
	}
	mm.circuitBreaker.RecordSuccess()
	return &result, nil
}

func (mm *ModelManager) checkCircuit(operation string) error {
	if mm.circuitBreaker.CanExecute() {
		return nil
	}
	status := mm.circuitBreaker.GetStatus()
	fields := []zap.Field{
		zap.String("state", status.State.String()),
		zap.Int("failure_count", status.FailureCount),
	}
	if status.NextRetryTime != nil {
		fields = append(fields, zap.Time("next_retry", *status.NextRetryTime))
	}
	mm.logger.Error("AI service unavailable (Circuit OPEN)", fields...)
	return apperrors.NewProviderError("AI service temporarily unavailable", "ai", operation, nil)
}

// recordFailure trips the breaker only for service-side failures; bad prompts
// and decode errors never count.
func (mm *ModelManager) recordFailure(errs ...error) {
	service := false
	rateLimited := false
	for _, err := range errs {
		if isServiceFailure(err) {
			service = true
		}
		if isRateLimitError(err) {
			rateLimited = true
		}
	}
	if !service {
		return
	}
	timeout := constants.CircuitBreakerConfig.ResetTimeout
	if rateLimited {
		timeout = constants.CircuitBreakerConfig.RateLimitTimeout
	}
	mm.circuitBreaker.RecordFailure(timeout)
}

func (mm *ModelManager) healthCheckPing() bool {
	mm.logger.Info("Health Check: Testing AI services...")

	ctx, cancel := context.WithTimeout(context.Background(), constants.CircuitBreakerConfig.HealthCheckTimeout)
	defer cancel()

	primaryOK := mm.primary.Ping(ctx)
	fallbackOK := false
	if mm.fallback != nil {
		fallbackOK = mm.fallback.Ping(ctx)
	}

	healthy := primaryOK || fallbackOK
	mm.logger.Info("Health Check: Result",
		zap.Bool("primary", primaryOK),
		zap.Bool("fallback", fallbackOK),
		zap.Bool("healthy", healthy),
	)
	return healthy
}

func (mm *ModelManager) GetCircuitStatus() util.CircuitBreakerStatus {
	return mm.circuitBreaker.GetStatus()
}

func (mm *ModelManager) ResetCircuit() {
	mm.circuitBreaker.Reset()
}

func stripCodeFence(text string) string {
	cleaned := strings.TrimSpace(text)
	if strings.HasPrefix(cleaned, "```json") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```json"))
	} else if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimPrefix(cleaned, "```"))
	}
	if strings.HasSuffix(cleaned, "```") {
		cleaned = strings.TrimSpace(strings.TrimSuffix(cleaned, "```"))
	}
	return cleaned
}

func isServiceFailure(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}

	msg := err.Error()
	if strings.Contains(msg, "timeout") || strings.Contains(msg, "ETIMEDOUT") {
		return true
	}
	if isRateLimitError(err) {
		return true
	}
	if statusCodeRegex.MatchString(msg) {
		return true
	}
	if code, ok := extractStatusCode(msg); ok {
		return code >= 500 && code < 600
	}
	return false
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	if strings.Contains(msg, "429") || strings.Contains(msg, "Rate limit") || strings.Contains(msg, "quota") {
		return true
	}
	if code, ok := extractStatusCode(msg); ok {
		return code == 429
	}
	return false
}

func extractStatusCode(msg string) (int, bool) {
	for _, re := range []*regexp.Regexp{geminiCodeRegex, openaiStatusRegex} {
		if matches := re.FindStringSubmatch(msg); len(matches) > 1 {
			if code, err := strconv.Atoi(matches[1]); err == nil {
				return code, true
			}
		}
	}
	return 0, false
}
