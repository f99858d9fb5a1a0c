package ai

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/util"
	apperrors "github.com/kapu/terrascope/pkg/errors"
)

type fakeProvider struct {
	name    string
	text    string
	err     error
	calls   int
	prompts []string
}

func (f *fakeProvider) Name() string { return f.name }

func (f *fakeProvider) Generate(_ context.Context, prompt string, _ ModelPreset, opts *GenerateOptions) (ProviderResult, error) {
	f.calls++
	if opts != nil && opts.FallbackPrompt != "" && f.name == "fallback" {
		prompt = opts.FallbackPrompt
	}
	f.prompts = append(f.prompts, prompt)
	if f.err != nil {
		return ProviderResult{}, f.err
	}
	return ProviderResult{Text: f.text, Model: f.name + "-model"}, nil
}

func (f *fakeProvider) Ping(context.Context) bool { return false }

type fakeGrounded struct {
	result GroundedResult
	err    error
}

func (f *fakeGrounded) GenerateGrounded(context.Context, string, ModelPreset) (GroundedResult, error) {
	return f.result, f.err
}

type payload struct {
	Name string `json:"name"`
}

func TestGenerateJSONPrimary(t *testing.T) {
	primary := &fakeProvider{name: "primary", text: "```json\n{\"name\":\"Japan\"}\n```"}
	mm := newModelManager(primary, nil, nil, zap.NewNop())

	var out payload
	meta, err := mm.GenerateJSON(context.Background(), "prompt", PresetBalanced, &out, nil)
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if out.Name != "Japan" {
		t.Fatalf("unexpected payload %+v", out)
	}
	if meta.Provider != "primary" || meta.UsedFallback {
		t.Fatalf("unexpected metadata %+v", meta)
	}
}

func TestGenerateJSONFallsBack(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("500 internal")}
	fallback := &fakeProvider{name: "fallback", text: `{"name":"France"}`}
	mm := newModelManager(primary, nil, fallback, zap.NewNop())

	var out payload
	meta, err := mm.GenerateJSON(context.Background(), "prompt", PresetBalanced, &out,
		&GenerateOptions{FallbackPrompt: "strict prompt"})
	if err != nil {
		t.Fatalf("GenerateJSON: %v", err)
	}
	if !meta.UsedFallback || out.Name != "France" {
		t.Fatalf("expected fallback result, got %+v %+v", meta, out)
	}
	if fallback.prompts[0] != "strict prompt" {
		t.Fatalf("fallback must receive its own prompt, got %q", fallback.prompts[0])
	}
}

func TestGenerateJSONInvalidJSON(t *testing.T) {
	primary := &fakeProvider{name: "primary", text: "not json"}
	mm := newModelManager(primary, nil, nil, zap.NewNop())

	var out payload
	_, err := mm.GenerateJSON(context.Background(), "prompt", PresetBalanced, &out, nil)
	if !apperrors.IsProviderError(err) {
		t.Fatalf("expected provider error, got %v", err)
	}
	if mm.GetCircuitStatus().FailureCount != 0 {
		t.Fatalf("decode errors must not count as service failures")
	}
}

func TestCircuitOpensOnServiceFailures(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("503 service unavailable")}
	mm := newModelManager(primary, nil, nil, zap.NewNop())

	var out payload
	for i := 0; i < 3; i++ {
		_, _ = mm.GenerateJSON(context.Background(), "prompt", PresetBalanced, &out, nil)
	}
	if mm.GetCircuitStatus().State != util.CircuitStateOpen {
		t.Fatalf("expected open circuit, got %s", mm.GetCircuitStatus().State)
	}

	calls := primary.calls
	_, err := mm.GenerateJSON(context.Background(), "prompt", PresetBalanced, &out, nil)
	if err == nil || primary.calls != calls {
		t.Fatalf("open circuit must fail fast without calling the provider")
	}

	mm.ResetCircuit()
	if mm.GetCircuitStatus().State != util.CircuitStateClosed {
		t.Fatalf("reset must close the circuit")
	}
}

func TestClientErrorsDoNotTripCircuit(t *testing.T) {
	primary := &fakeProvider{name: "primary", err: errors.New("400 invalid argument")}
	mm := newModelManager(primary, nil, nil, zap.NewNop())

	var out payload
	for i := 0; i < 5; i++ {
		_, _ = mm.GenerateJSON(context.Background(), "prompt", PresetBalanced, &out, nil)
	}
	if mm.GetCircuitStatus().State != util.CircuitStateClosed {
		t.Fatalf("client errors must not open the circuit")
	}
}

func TestGenerateGrounded(t *testing.T) {
	grounded := &fakeGrounded{result: GroundedResult{
		Text:    "- headline",
		Sources: []GroundingSource{{Title: "a", URI: "https://a"}},
	}}
	mm := newModelManager(&fakeProvider{name: "primary"}, grounded, nil, zap.NewNop())

	res, err := mm.GenerateGrounded(context.Background(), "news", PresetCreative)
	if err != nil {
		t.Fatalf("GenerateGrounded: %v", err)
	}
	if res.Text != "- headline" || len(res.Sources) != 1 {
		t.Fatalf("unexpected result %+v", res)
	}

	noGrounding := newModelManager(&fakeProvider{name: "primary"}, nil, nil, zap.NewNop())
	if _, err := noGrounding.GenerateGrounded(context.Background(), "news", PresetCreative); err == nil {
		t.Fatalf("expected error without a grounded provider")
	}
}

func TestIsRateLimitError(t *testing.T) {
	if !isRateLimitError(errors.New(`{"error":{"code":429,"message":"quota"}}`)) {
		t.Fatalf("expected rate limit")
	}
	if isRateLimitError(errors.New("404 not found")) {
		t.Fatalf("404 is not a rate limit")
	}
	if !isServiceFailure(context.DeadlineExceeded) {
		t.Fatalf("deadline exceeded is a service failure")
	}
}
