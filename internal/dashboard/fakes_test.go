package dashboard

import (
	"context"
	"errors"
	"sync"

	"github.com/kapu/terrascope/internal/domain"
)

// gate blocks a fake call until the test releases it.
type gate struct {
	started chan struct{}
	release chan struct{}
}

func newGate() *gate {
	return &gate{started: make(chan struct{}, 1), release: make(chan struct{})}
}

func (g *gate) wait() {
	if g == nil {
		return
	}
	g.started <- struct{}{}
	<-g.release
}

func (g *gate) open() {
	close(g.release)
}

type fakeProfiles struct {
	mu       sync.Mutex
	profiles map[string]*domain.CountryProfile
	gates    map[string]*gate
	calls    []string
	langs    []string
}

func newFakeProfiles(profiles ...*domain.CountryProfile) *fakeProfiles {
	f := &fakeProfiles{
		profiles: make(map[string]*domain.CountryProfile),
		gates:    make(map[string]*gate),
	}
	for _, p := range profiles {
		f.profiles[p.Name] = p
	}
	return f
}

func (f *fakeProfiles) FetchProfile(_ context.Context, name, language string) (*domain.CountryProfile, error) {
	f.mu.Lock()
	f.calls = append(f.calls, name)
	f.langs = append(f.langs, language)
	g := f.gates[name]
	p := f.profiles[name]
	f.mu.Unlock()

	g.wait()
	if p == nil {
		return nil, errors.New("profile service returned 500")
	}
	return p.Clone(), nil
}

func (f *fakeProfiles) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

type translateCall struct {
	description string
	funFacts    []string
	language    string
}

type fakeTranslator struct {
	mu    sync.Mutex
	gate  *gate
	err   error
	calls []translateCall
}

func (f *fakeTranslator) Translate(_ context.Context, description string, funFacts []string, language string) (*domain.TranslatedContent, error) {
	f.mu.Lock()
	f.calls = append(f.calls, translateCall{description: description, funFacts: funFacts, language: language})
	g, err := f.gate, f.err
	f.mu.Unlock()

	g.wait()
	if err != nil {
		return nil, err
	}
	facts := make([]string, len(funFacts))
	for i, fact := range funFacts {
		facts[i] = "[" + language + "] " + fact
	}
	return &domain.TranslatedContent{Description: "[" + language + "] " + description, FunFacts: facts}, nil
}

type fakeWeather struct {
	mu     sync.Mutex
	gate   *gate
	err    error
	coords []domain.Coordinates
}

func (f *fakeWeather) CurrentWeather(_ context.Context, coords domain.Coordinates) (*domain.Weather, error) {
	f.mu.Lock()
	f.coords = append(f.coords, coords)
	g, err := f.gate, f.err
	f.mu.Unlock()

	g.wait()
	if err != nil {
		return nil, err
	}
	return &domain.Weather{Temperature: 18.5, FeelsLike: 17.9, Humidity: 60, WindSpeed: 12, WindDirection: 90, WeatherCode: 1, IsDay: true}, nil
}

type fakeNews struct {
	mu    sync.Mutex
	err   error
	calls [][2]string
}

func (f *fakeNews) FetchNews(_ context.Context, name, language string) (*domain.NewsDigest, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, [2]string{name, language})
	if f.err != nil {
		return nil, f.err
	}
	return &domain.NewsDigest{
		Content: "- headline",
		Sources: []domain.NewsSource{{Title: "Example", URI: "https://news.example/1"}},
	}, nil
}

type fakeRates struct {
	mu    sync.Mutex
	err   error
	bases []string
}

func (f *fakeRates) Rates(_ context.Context, base string) (*domain.ExchangeRates, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.bases = append(f.bases, base)
	if f.err != nil {
		return nil, f.err
	}
	return &domain.ExchangeRates{
		Base: base,
		Rates: map[string]float64{
			"USD": 0.0067, "EUR": 0.0062, "GBP": 0.0053, "JPY": 1,
			"CNY": 0.048, "AUD": 0.0102, "CAD": 0.0091, "CHF": 0.0059,
		},
		LastUpdated: "Mon, 13 Oct 2025 00:00:01 +0000",
	}, nil
}

// gatedLocation blocks SetCountry for the gated country names.
type gatedLocation struct {
	*URLLocation
	gates map[string]*gate
}

func (l *gatedLocation) SetCountry(name string) error {
	l.gates[name].wait()
	return l.URLLocation.SetCountry(name)
}

type failingStore struct{}

func (failingStore) Theme(context.Context) (domain.Theme, bool, error) {
	return "", false, errors.New("store offline")
}

func (failingStore) SetTheme(context.Context, domain.Theme) error {
	return errors.New("store offline")
}

func (failingStore) Close() error { return nil }

func testProfile(name, iso, currency string, lat, lon float64) *domain.CountryProfile {
	return &domain.CountryProfile{
		Name:               name,
		IsoAlpha2:          iso,
		Capital:            name + " City",
		Population:         "1 Million",
		Currency:           domain.Currency{Name: currency, Code: currency},
		Description:        name + " description",
		FunFacts:           []string{name + " fact one", name + " fact two"},
		CapitalCoordinates: domain.Coordinates{Latitude: lat, Longitude: lon},
	}
}

func japan() *domain.CountryProfile {
	p := testProfile("Japan", "JP", "JPY", 35.68, 139.69)
	p.Capital = "Tokyo"
	return p
}

func france() *domain.CountryProfile {
	p := testProfile("France", "FR", "EUR", 48.8566, 2.3522)
	p.Capital = "Paris"
	return p
}
