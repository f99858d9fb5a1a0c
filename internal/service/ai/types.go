package ai

import "google.golang.org/genai"

// ModelPreset represents the model usage preset
type ModelPreset string

const (
	PresetCreative ModelPreset = "creative" // news digests
	PresetPrecise  ModelPreset = "precise"  // translation
	PresetBalanced ModelPreset = "balanced" // country profiles
)

// ModelConfig holds the sampling settings of a preset. OpenAI reads
// MaxOutputTokens as its completion token limit.
type ModelConfig struct {
	Temperature     float32
	TopP            float32
	TopK            int
	MaxOutputTokens int
}

// GenerateMetadata contains metadata about the generation
type GenerateMetadata struct {
	Provider     string
	Model        string
	UsedFallback bool
}

// GenerateOptions holds options for AI generation
type GenerateOptions struct {
	JSONMode bool
	// Schema constrains Gemini JSON output. The fallback provider ignores it.
	Schema *genai.Schema
	// FallbackPrompt replaces the prompt when the fallback provider runs.
	FallbackPrompt string
}

// GroundingSource is one web page a grounded answer was built from.
type GroundingSource struct {
	Title string
	URI   string
}

// GroundedResult is free text produced with web search grounding.
type GroundedResult struct {
	Text     string
	Sources  []GroundingSource
	Metadata GenerateMetadata
}

var presets = map[ModelPreset]ModelConfig{
	PresetCreative: {Temperature: 0.7, TopP: 0.95, TopK: 40, MaxOutputTokens: 2048},
	PresetPrecise:  {Temperature: 0.1, TopP: 0.9, TopK: 20, MaxOutputTokens: 2048},
	PresetBalanced: {Temperature: 0.2, TopP: 0.95, TopK: 40, MaxOutputTokens: 8192},
}

// GetPresetConfig returns the configuration for a preset. Unknown presets
// fall back to balanced.
func GetPresetConfig(preset ModelPreset) ModelConfig {
	if cfg, ok := presets[preset]; ok {
		return cfg
	}
	return presets[PresetBalanced]
}
