package ai

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"
	"google.golang.org/genai"

	"github.com/kapu/terrascope/internal/util"
)

const pingTimeout = 5 * time.Second

type JSONProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error)
	Ping(ctx context.Context) bool
}

// GroundedProvider answers with web search grounding. Only Gemini offers it.
type GroundedProvider interface {
	GenerateGrounded(ctx context.Context, prompt string, preset ModelPreset) (GroundedResult, error)
}

type ProviderResult struct {
	Text  string
	Model string
}

// GeminiProvider generates profiles, translations and grounded news with a
// single Gemini model.
type GeminiProvider struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

func NewGeminiProvider(client *genai.Client, model string, logger *zap.Logger) *GeminiProvider {
	return &GeminiProvider{client: client, model: model, logger: util.OrNop(logger)}
}

func (g *GeminiProvider) Name() string {
	return "Gemini"
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	cfg := geminiConfig(GetPresetConfig(preset), opts)
	g.logger.Debug("Generating with Gemini",
		zap.String("model", g.model),
		zap.String("preset", string(preset)),
		zap.Bool("schema", cfg.ResponseSchema != nil),
	)

	resp, err := g.generate(ctx, prompt, cfg)
	if err != nil {
		return ProviderResult{}, err
	}
	text := geminiText(resp)
	if text == "" {
		return ProviderResult{}, fmt.Errorf("empty response from Gemini")
	}
	return ProviderResult{Text: text, Model: g.model}, nil
}

// GenerateGrounded runs the prompt with the Google Search tool. Grounding
// cannot be combined with a response schema, so the answer is free text plus
// the grounding chunks.
func (g *GeminiProvider) GenerateGrounded(ctx context.Context, prompt string, preset ModelPreset) (GroundedResult, error) {
	cfg := geminiConfig(GetPresetConfig(preset), nil)
	cfg.Tools = []*genai.Tool{{GoogleSearch: &genai.GoogleSearch{}}}

	resp, err := g.generate(ctx, prompt, cfg)
	if err != nil {
		return GroundedResult{}, err
	}
	return GroundedResult{
		Text:     geminiText(resp),
		Sources:  groundingSources(resp),
		Metadata: GenerateMetadata{Provider: g.Name(), Model: g.model},
	}, nil
}

func (g *GeminiProvider) Ping(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	zero := float32(0)
	resp, err := g.generate(ctx, "ping", &genai.GenerateContentConfig{Temperature: &zero, MaxOutputTokens: 10})
	return err == nil && geminiText(resp) != ""
}

func (g *GeminiProvider) generate(ctx context.Context, prompt string, cfg *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	if g.client == nil {
		return nil, fmt.Errorf("gemini client not initialized")
	}
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), cfg)
	if err != nil {
		g.logger.Warn("Gemini request failed", zap.String("model", g.model), zap.Error(err))
		return nil, err
	}
	return resp, nil
}

// geminiConfig maps a preset onto a request config. JSON mode and a schema
// both force an application/json response.
func geminiConfig(preset ModelConfig, opts *GenerateOptions) *genai.GenerateContentConfig {
	topK := float32(preset.TopK)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &preset.Temperature,
		TopP:            &preset.TopP,
		TopK:            &topK,
		MaxOutputTokens: int32(preset.MaxOutputTokens),
	}
	if opts == nil {
		return cfg
	}
	if opts.JSONMode || opts.Schema != nil {
		cfg.ResponseMIMEType = "application/json"
	}
	cfg.ResponseSchema = opts.Schema
	return cfg
}

func geminiText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
		return ""
	}
	var b strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if part != nil {
			b.WriteString(part.Text)
		}
	}
	return b.String()
}

// groundingSources returns web chunks that carry both a uri and a title, in
// response order. Deduplication is left to the caller.
func groundingSources(resp *genai.GenerateContentResponse) []GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 || resp.Candidates[0].GroundingMetadata == nil {
		return nil
	}
	var sources []GroundingSource
	for _, chunk := range resp.Candidates[0].GroundingMetadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil || chunk.Web.URI == "" || chunk.Web.Title == "" {
			continue
		}
		sources = append(sources, GroundingSource{Title: chunk.Web.Title, URI: chunk.Web.URI})
	}
	return sources
}

// OpenAIProvider is the chat-completion fallback for JSON generation.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	logger *zap.Logger
}

// NewOpenAIProvider returns nil without an API key so the fallback stays off.
func NewOpenAIProvider(apiKey, model string, logger *zap.Logger) *OpenAIProvider {
	if apiKey == "" {
		return nil
	}
	client := openai.NewClient(option.WithAPIKey(apiKey))
	return &OpenAIProvider{client: &client, model: model, logger: util.OrNop(logger)}
}

func (o *OpenAIProvider) Name() string {
	return "OpenAI"
}

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string, preset ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	if o.client == nil {
		return ProviderResult{}, fmt.Errorf("OpenAI client not initialized")
	}
	o.logger.Info("Fallback: Generating with OpenAI",
		zap.String("model", o.model),
		zap.String("preset", string(preset)),
	)

	resp, err := o.client.Chat.Completions.New(ctx, chatParams(o.model, prompt, GetPresetConfig(preset), opts))
	if err != nil {
		o.logger.Error("OpenAI generation failed", zap.Error(err))
		return ProviderResult{}, err
	}
	if len(resp.Choices) == 0 {
		return ProviderResult{}, fmt.Errorf("no choices in OpenAI response")
	}

	o.logger.Info("OpenAI response received",
		zap.Int64("prompt_tokens", resp.Usage.PromptTokens),
		zap.Int64("completion_tokens", resp.Usage.CompletionTokens),
	)
	return ProviderResult{Text: resp.Choices[0].Message.Content, Model: o.model}, nil
}

func (o *OpenAIProvider) Ping(ctx context.Context) bool {
	if o.client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	resp, err := o.client.Chat.Completions.New(ctx, chatParams(o.model, "ping", ModelConfig{MaxOutputTokens: 16}, nil))
	return err == nil && len(resp.Choices) > 0
}

// chatParams builds a completion request. The fallback prompt replaces prompt
// when set, and JSON mode adds a system instruction since the schema is
// Gemini-only.
func chatParams(model, prompt string, preset ModelConfig, opts *GenerateOptions) openai.ChatCompletionNewParams {
	var messages []openai.ChatCompletionMessageParamUnion
	if opts != nil {
		if opts.FallbackPrompt != "" {
			prompt = opts.FallbackPrompt
		}
		if opts.JSONMode {
			messages = append(messages, openai.SystemMessage("You must respond with valid JSON only. Do not include any text outside the JSON object."))
		}
	}
	messages = append(messages, openai.UserMessage(prompt))

	params := openai.ChatCompletionNewParams{
		Model:               openai.ChatModel(model),
		Messages:            messages,
		MaxCompletionTokens: openai.Int(int64(preset.MaxOutputTokens)),
	}
	if acceptsSampling(model) {
		params.Temperature = openai.Float(float64(preset.Temperature))
		params.TopP = openai.Float(float64(preset.TopP))
	}
	return params
}

// acceptsSampling reports whether model takes temperature and top_p. The
// gpt-5 family rejects them.
func acceptsSampling(model string) bool {
	return !strings.HasPrefix(model, "gpt-5")
}
