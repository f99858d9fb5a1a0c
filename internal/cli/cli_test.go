package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/app"
	"github.com/kapu/terrascope/internal/config"
	"github.com/kapu/terrascope/internal/dashboard"
	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/service/preference"
)

type stubProfiles map[string]*domain.CountryProfile

func (s stubProfiles) FetchProfile(_ context.Context, name, _ string) (*domain.CountryProfile, error) {
	p, ok := s[name]
	if !ok {
		return nil, errors.New("unknown country")
	}
	return p.Clone(), nil
}

type stubTranslator struct{}

func (stubTranslator) Translate(_ context.Context, description string, funFacts []string, language string) (*domain.TranslatedContent, error) {
	return &domain.TranslatedContent{Description: language + ": " + description, FunFacts: funFacts}, nil
}

func profile(name, iso, capital string, lat, lon float64) *domain.CountryProfile {
	return &domain.CountryProfile{
		Name:               name,
		IsoAlpha2:          iso,
		Capital:            capital,
		Population:         "1 Million",
		Description:        name + " description",
		FunFacts:           []string{name + " fact"},
		CapitalCoordinates: domain.Coordinates{Latitude: lat, Longitude: lon},
	}
}

// useContainer swaps buildFunc for one returning a container around stubs.
func useContainer(t *testing.T) *dashboard.URLLocation {
	t.Helper()

	loc, err := dashboard.NewURLLocation("https://terrascope.example/")
	if err != nil {
		t.Fatalf("NewURLLocation: %v", err)
	}
	profiles := stubProfiles{
		"Japan":  profile("Japan", "JP", "Tokyo", 35.68, 139.69),
		"France": profile("France", "FR", "Paris", 48.8566, 2.3522),
	}
	coord, err := dashboard.NewCoordinator(
		dashboard.Providers{Profile: profiles, Translation: stubTranslator{}},
		dashboard.Options{Location: loc, Preferences: preference.NewMemoryStore(), ShareBaseURL: "https://terrascope.example/"},
		zap.NewNop(),
	)
	if err != nil {
		t.Fatalf("NewCoordinator: %v", err)
	}

	prev := buildFunc
	buildFunc = func(context.Context) (*app.Container, error) {
		return &app.Container{
			Config:      &config.Config{},
			Logger:      zap.NewNop(),
			Coordinator: coord,
			Location:    loc,
		}, nil
	}
	t.Cleanup(func() { buildFunc = prev })
	return loc
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	globalFlags.Format = "table"
	globalFlags.Language = ""
	globalFlags.LogLevel = ""
	showFlags.NoPanels = false

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), errOut.String(), err
}

func TestShowJSON(t *testing.T) {
	loc := useContainer(t)

	out, _, err := run(t, "show", "Japan", "--format", "json", "--no-panels")
	if err != nil {
		t.Fatalf("show: %v", err)
	}
	var state dashboard.ViewState
	if err := json.Unmarshal([]byte(out), &state); err != nil {
		t.Fatalf("output is not JSON: %v\n%s", err, out)
	}
	if state.ActiveProfile == nil || state.ActiveProfile.Name != "Japan" {
		t.Fatalf("unexpected state %+v", state)
	}
	if loc.Country() != "Japan" {
		t.Fatalf("location not published, got %q", loc.Country())
	}
}

func TestShowUnknownCountry(t *testing.T) {
	useContainer(t)

	if _, _, err := run(t, "show", "Atlantis", "--no-panels"); err == nil {
		t.Fatalf("expected an error for an unknown country")
	}
}

func TestRejectsUnknownFormat(t *testing.T) {
	useContainer(t)

	_, _, err := run(t, "show", "Japan", "--format", "yaml")
	if err == nil || !strings.Contains(err.Error(), "unknown format") {
		t.Fatalf("expected format error, got %v", err)
	}
}

func TestArgValidation(t *testing.T) {
	useContainer(t)

	tests := []struct {
		name string
		args []string
	}{
		{"show without country", []string{"show"}},
		{"translate without language", []string{"translate", "Japan"}},
		{"compare without countries", []string{"compare"}},
		{"theme with two args", []string{"theme", "light", "dark"}},
		{"serve with args", []string{"serve", "now"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, err := run(t, tt.args...); err == nil {
				t.Fatalf("expected an argument error")
			}
		})
	}
}

func TestOpenLoadsDeepLink(t *testing.T) {
	loc := useContainer(t)

	out, _, err := run(t, "open", "https://terrascope.example/?country=France", "--no-panels")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	if !strings.Contains(out, "Paris") {
		t.Fatalf("expected the France profile, got:\n%s", out)
	}
	if len(loc.History()) != 2 {
		t.Fatalf("open must not push extra history, got %v", loc.History())
	}
}

func TestCompareReportsDuplicates(t *testing.T) {
	useContainer(t)

	out, errOut, err := run(t, "compare", "Japan", "France", "Japan")
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !strings.Contains(errOut, "duplicate") {
		t.Fatalf("expected a duplicate notice, got %q", errOut)
	}
	if !strings.Contains(out, "Tokyo") || !strings.Contains(out, "Paris") {
		t.Fatalf("expected both capitals in output:\n%s", out)
	}
}

func TestCompareNothingLoaded(t *testing.T) {
	useContainer(t)

	if _, _, err := run(t, "compare", "Atlantis"); err == nil {
		t.Fatalf("expected an error when no country loads")
	}
}

func TestTranslate(t *testing.T) {
	useContainer(t)

	out, _, err := run(t, "translate", "Japan", "French", "--format", "json")
	if err != nil {
		t.Fatalf("translate: %v", err)
	}
	if !strings.Contains(out, "French: Japan description") {
		t.Fatalf("expected translated description:\n%s", out)
	}
}

func TestTheme(t *testing.T) {
	useContainer(t)

	out, _, err := run(t, "theme", "light")
	if err != nil || strings.TrimSpace(out) != "light" {
		t.Fatalf("theme light: %q %v", out, err)
	}
	out, _, err = run(t, "theme", "toggle")
	if err != nil || strings.TrimSpace(out) != "dark" {
		t.Fatalf("theme toggle: %q %v", out, err)
	}
	if _, _, err := run(t, "theme", "purple"); err == nil {
		t.Fatalf("expected an invalid theme error")
	}
}
