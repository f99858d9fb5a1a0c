package domain

import (
	"strings"
	"testing"
)

func sampleProfile() *CountryProfile {
	return &CountryProfile{
		Name:        " Japan ",
		IsoAlpha2:   "jp",
		Capital:     "Tokyo",
		Population:  "125 Million",
		Currency:    Currency{Name: "Yen", Code: "jpy", Symbol: "¥"},
		Languages:   []string{"Japanese", " "},
		Description: "An island nation.",
		FunFacts:    []string{"Vending machines everywhere."},
		EconomicHistory: []EconomicMetric{
			{Year: "2023", GDP: 1.9},
			{Year: "2019", GDP: -0.4},
			{Year: "2021", GDP: 2.1},
		},
		Landmarks:          []Landmark{{Name: "Mount Fuji", Type: "Nature"}},
		Timezones:          []string{"UTC+09:00"},
		Coordinates:        Coordinates{Latitude: 36.2, Longitude: 138.25},
		CapitalCoordinates: Coordinates{Latitude: 35.68, Longitude: 139.69},
		SafetyAdvisory:     SafetyAdvisory{Score: 7},
	}
}

func TestNormalize(t *testing.T) {
	p := sampleProfile()
	p.Normalize()

	if p.Name != "Japan" || p.IsoAlpha2 != "JP" || p.Currency.Code != "JPY" {
		t.Fatalf("identity not normalized: %q %q %q", p.Name, p.IsoAlpha2, p.Currency.Code)
	}
	if len(p.Languages) != 1 {
		t.Fatalf("blank languages must be dropped, got %v", p.Languages)
	}
	if p.SafetyAdvisory.Score != 5 {
		t.Fatalf("score must clamp to 5, got %v", p.SafetyAdvisory.Score)
	}
	var years []string
	for _, m := range p.EconomicHistory {
		years = append(years, m.Year)
	}
	if strings.Join(years, ",") != "2019,2021,2023" {
		t.Fatalf("economic history not chronological: %v", years)
	}
}

func TestValidate(t *testing.T) {
	p := sampleProfile()
	p.Normalize()
	if err := p.Validate(); err != nil {
		t.Fatalf("expected valid profile: %v", err)
	}

	bad := p.Clone()
	bad.IsoAlpha2 = "JPN"
	if err := bad.Validate(); err == nil {
		t.Fatalf("three letter iso code must fail validation")
	}

	bad = p.Clone()
	bad.CapitalCoordinates.Latitude = 120
	if err := bad.Validate(); err == nil {
		t.Fatalf("latitude out of range must fail validation")
	}

	bad = p.Clone()
	bad.Capital = ""
	if err := bad.Validate(); err == nil {
		t.Fatalf("missing capital must fail validation")
	}
}

func TestCloneIsDeep(t *testing.T) {
	p := sampleProfile()
	c := p.Clone()
	c.FunFacts[0] = "changed"
	c.EconomicHistory[0].GDP = 99

	if p.FunFacts[0] == "changed" || p.EconomicHistory[0].GDP == 99 {
		t.Fatalf("clone shares memory with original")
	}
	if !p.SameCountry(c) {
		t.Fatalf("clone must be the same country")
	}
}

func TestSameCountryIgnoresContent(t *testing.T) {
	a := &CountryProfile{IsoAlpha2: "FR", Description: "Bonjour"}
	b := &CountryProfile{IsoAlpha2: "fr", Description: "Hello"}
	if !a.SameCountry(b) {
		t.Fatalf("profiles with the same iso code are the same country")
	}
	if a.SameCountry(nil) {
		t.Fatalf("nil is never the same country")
	}
}

func TestCoordinatesPoint(t *testing.T) {
	pt := Coordinates{Latitude: 35.68, Longitude: 139.69}.Point()
	if pt.Lon() != 139.69 || pt.Lat() != 35.68 {
		t.Fatalf("unexpected point %v", pt)
	}
}
