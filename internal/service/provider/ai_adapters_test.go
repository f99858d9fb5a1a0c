package provider

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/service/ai"
	apperrors "github.com/kapu/terrascope/pkg/errors"
)

type fakeGenerator struct {
	body    string
	err     error
	prompts []string
	opts    []*ai.GenerateOptions
}

func (f *fakeGenerator) GenerateJSON(_ context.Context, prompt string, _ ai.ModelPreset, dest any, opts *ai.GenerateOptions) (*ai.GenerateMetadata, error) {
	f.prompts = append(f.prompts, prompt)
	f.opts = append(f.opts, opts)
	if f.err != nil {
		return nil, f.err
	}
	if err := json.Unmarshal([]byte(f.body), dest); err != nil {
		return nil, err
	}
	return &ai.GenerateMetadata{Provider: "fake", Model: "fake-1"}, nil
}

type fakeGroundedGenerator struct {
	result *ai.GroundedResult
	err    error
}

func (f *fakeGroundedGenerator) GenerateGrounded(context.Context, string, ai.ModelPreset) (*ai.GroundedResult, error) {
	return f.result, f.err
}

const japanJSON = `{
	"name": "Japan", "officialName": "State of Japan", "isoAlpha2": "jp", "capital": "Tokyo",
	"population": "125 Million",
	"currency": {"name": "Japanese Yen", "code": "jpy", "symbol": "¥"},
	"languages": ["Japanese"], "region": "East Asia",
	"description": "An island nation in East Asia.",
	"funFacts": ["Over 6,800 islands."],
	"economicHistory": [
		{"year": "2023", "gdp": 1.9, "inflation": 3.2},
		{"year": "2020", "gdp": -4.1, "inflation": 0.0},
		{"year": "2021", "gdp": 2.6, "inflation": -0.2},
		{"year": "2019", "gdp": -0.4, "inflation": 0.5},
		{"year": "2022", "gdp": 1.0, "inflation": 2.5}
	],
	"landmarks": [{"name": "Mount Fuji", "description": "Volcano", "type": "Nature", "emoji": "🗻", "url": "https://example.org/fuji"}],
	"timezones": ["UTC+09:00"],
	"coordinates": {"latitude": 36.2, "longitude": 138.25},
	"capitalCoordinates": {"latitude": 35.68, "longitude": 139.69},
	"emergencyNumbers": {"police": "110", "ambulance": "119", "fire": "119"},
	"safetyAdvisory": {"score": 1.2, "message": "Safe", "regionsToAvoid": [], "healthRisks": [], "visaInfo": "Visa-free for many"}
}`

func TestFetchProfileNormalizes(t *testing.T) {
	gen := &fakeGenerator{body: japanJSON}
	svc := NewProfileService(gen, nil, 0, zap.NewNop())

	p, err := svc.FetchProfile(context.Background(), " Japan ", "English")
	if err != nil {
		t.Fatalf("FetchProfile: %v", err)
	}
	if p.IsoAlpha2 != "JP" || p.Currency.Code != "JPY" {
		t.Fatalf("identity not normalized: %s %s", p.IsoAlpha2, p.Currency.Code)
	}
	for i := 1; i < len(p.EconomicHistory); i++ {
		if p.EconomicHistory[i-1].Year > p.EconomicHistory[i].Year {
			t.Fatalf("economic history out of order: %+v", p.EconomicHistory)
		}
	}
	if !strings.Contains(gen.prompts[0], "country: Japan.") {
		t.Fatalf("query must be trimmed in the prompt")
	}
	if gen.opts[0].Schema == nil || gen.opts[0].FallbackPrompt == "" {
		t.Fatalf("profile generation must send a schema and a fallback prompt")
	}
}

func TestFetchProfileFailures(t *testing.T) {
	cases := map[string]*fakeGenerator{
		"generator error": {err: errors.New("boom")},
		"bad iso":         {body: strings.Replace(japanJSON, `"jp"`, `"JPN"`, 1)},
		"no capital":      {body: strings.Replace(japanJSON, `"capital": "Tokyo"`, `"capital": ""`, 1)},
	}
	for name, gen := range cases {
		t.Run(name, func(t *testing.T) {
			svc := NewProfileService(gen, nil, 0, zap.NewNop())
			if _, err := svc.FetchProfile(context.Background(), "Japan", "English"); !apperrors.IsProviderError(err) {
				t.Fatalf("expected provider error, got %v", err)
			}
		})
	}

	svc := NewProfileService(&fakeGenerator{body: japanJSON}, nil, 0, zap.NewNop())
	if _, err := svc.FetchProfile(context.Background(), "  ", "English"); !apperrors.IsValidationError(err) {
		t.Fatalf("blank query must be a validation error, got %v", err)
	}
}

func TestTranslate(t *testing.T) {
	gen := &fakeGenerator{body: `{"description":" Un pays insulaire. ","funFacts":["Plus de 6 800 îles.",""]}`}
	svc := NewTranslationService(gen, nil, 0, zap.NewNop())

	out, err := svc.Translate(context.Background(), "An island nation.", []string{"Over 6,800 islands."}, "French")
	if err != nil {
		t.Fatalf("Translate: %v", err)
	}
	if out.Description != "Un pays insulaire." || len(out.FunFacts) != 1 {
		t.Fatalf("unexpected translation %+v", out)
	}
	if !strings.Contains(gen.prompts[0], "An island nation.") {
		t.Fatalf("prompt must carry the original description")
	}

	empty := NewTranslationService(&fakeGenerator{body: `{"description":"","funFacts":[]}`}, nil, 0, zap.NewNop())
	if _, err := empty.Translate(context.Background(), "x", nil, "French"); err == nil {
		t.Fatalf("empty description must fail")
	}
}

func TestFetchNewsDedupesSources(t *testing.T) {
	gen := &fakeGroundedGenerator{result: &ai.GroundedResult{
		Text: "- Headline one\n- Headline two",
		Sources: []ai.GroundingSource{
			{Title: "First", URI: "https://a.example/1"},
			{Title: "Second", URI: "https://b.example/2"},
			{Title: "Duplicate", URI: "https://a.example/1"},
			{Title: "", URI: "https://c.example/3"},
			{Title: "Third", URI: "https://d.example/4"},
		},
	}}
	svc := NewNewsService(gen, nil, NewsServiceOptions{}, zap.NewNop())

	digest, err := svc.FetchNews(context.Background(), "Japan", "English")
	if err != nil {
		t.Fatalf("FetchNews: %v", err)
	}
	var titles []string
	for _, s := range digest.Sources {
		titles = append(titles, s.Title)
	}
	if strings.Join(titles, ",") != "First,Second,Third" {
		t.Fatalf("unexpected sources %v", titles)
	}

	capped := NewNewsService(gen, nil, NewsServiceOptions{MaxSources: 2}, zap.NewNop())
	digest, _ = capped.FetchNews(context.Background(), "Japan", "English")
	if len(digest.Sources) != 2 {
		t.Fatalf("expected 2 sources, got %d", len(digest.Sources))
	}
}

func TestFetchNewsEmptyIsSuccess(t *testing.T) {
	svc := NewNewsService(&fakeGroundedGenerator{result: &ai.GroundedResult{Text: "  "}}, nil, NewsServiceOptions{}, zap.NewNop())

	digest, err := svc.FetchNews(context.Background(), "Nauru", "English")
	if err != nil {
		t.Fatalf("FetchNews: %v", err)
	}
	if digest.Content != "No news found." || len(digest.Sources) != 0 {
		t.Fatalf("unexpected empty digest %+v", digest)
	}
}
