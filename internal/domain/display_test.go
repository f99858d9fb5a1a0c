package domain

import (
	"net/url"
	"testing"
)

func TestClassifyLandmark(t *testing.T) {
	cases := map[string]LandmarkCategory{
		"Nature Reserve":    LandmarkNature,
		"Ancient Temple":    LandmarkHistorical,
		"Modern Skyscraper": LandmarkUrban,
		"Island":            LandmarkCoastal,
		"Market":            LandmarkOther,
		"":                  LandmarkOther,
	}
	for in, want := range cases {
		if got := ClassifyLandmark(in); got != want {
			t.Errorf("ClassifyLandmark(%q) = %s, want %s", in, got, want)
		}
	}
}

func TestWeatherLabel(t *testing.T) {
	cases := map[int]string{
		0:  "Clear Sky",
		48: "Foggy",
		57: "Freezing Drizzle",
		82: "Rain Showers",
		99: "Thunderstorm & Hail",
		42: "Unknown",
	}
	for code, want := range cases {
		if got := WeatherLabel(code); got != want {
			t.Errorf("WeatherLabel(%d) = %q, want %q", code, got, want)
		}
	}
}

func TestWindDirection(t *testing.T) {
	cases := map[float64]string{0: "N", 44: "NE", 90: "E", 200: "S", 337: "NW", 350: "N", 360: "N"}
	for deg, want := range cases {
		if got := WindDirection(deg); got != want {
			t.Errorf("WindDirection(%v) = %s, want %s", deg, got, want)
		}
	}
}

func TestRiskLevelFor(t *testing.T) {
	cases := map[float64]RiskLevel{0: RiskLow, 2.49: RiskLow, 2.5: RiskMedium, 3.5: RiskHigh, 4.5: RiskExtreme, 5: RiskExtreme}
	for score, want := range cases {
		if got := RiskLevelFor(score); got != want {
			t.Errorf("RiskLevelFor(%v) = %s, want %s", score, got, want)
		}
	}
}

func TestExchangeRowsExcludeBase(t *testing.T) {
	rates := &ExchangeRates{Base: "USD", Rates: map[string]float64{
		"USD": 1, "EUR": 0.92, "JPY": 149.5, "GBP": 0.79, "CNY": 7.2, "AUD": 1.5, "CAD": 1.36,
	}}

	rows := ExchangeRows("usd", rates)
	if len(rows) != 7 {
		t.Fatalf("expected 7 rows, got %d", len(rows))
	}
	for _, row := range rows {
		if row.Code == "USD" {
			t.Fatalf("base currency must not be displayed")
		}
	}
	if rows[0].Code != "EUR" || rows[0].Formatted != "0.92" {
		t.Fatalf("unexpected first row %+v", rows[0])
	}
	last := rows[len(rows)-1]
	if last.Code != "CHF" || last.Available {
		t.Fatalf("missing rate must be unavailable, got %+v", last)
	}
}

func TestFormatRate(t *testing.T) {
	if got := FormatRate(0.00671); got != "0.0067" {
		t.Fatalf("small rate: got %s", got)
	}
	if got := FormatRate(149.4567); got != "149.46" {
		t.Fatalf("large rate: got %s", got)
	}
}

func TestShareURLKeepsOtherParams(t *testing.T) {
	got, err := ShareURL("http://localhost:8080/?lang=fr&country=Peru", "Côte d'Ivoire")
	if err != nil {
		t.Fatalf("ShareURL: %v", err)
	}
	u, _ := url.Parse(got)
	if u.Query().Get("country") != "Côte d'Ivoire" || u.Query().Get("lang") != "fr" {
		t.Fatalf("unexpected share url %s", got)
	}
}

func TestFlagAndTileURL(t *testing.T) {
	if got := FlagURL("JP"); got != "https://flagcdn.com/w640/jp.png" {
		t.Fatalf("unexpected flag url %s", got)
	}
	if TileURL(ThemeDark) == TileURL(ThemeLight) {
		t.Fatalf("themes must use different tiles")
	}
}

func TestParseTheme(t *testing.T) {
	th, err := ParseTheme(" Dark ")
	if err != nil || th != ThemeDark {
		t.Fatalf("ParseTheme: %v %v", th, err)
	}
	if th.Toggle() != ThemeLight {
		t.Fatalf("toggle dark must give light")
	}
	if _, err := ParseTheme("sepia"); err == nil {
		t.Fatalf("expected error for unknown theme")
	}
}
