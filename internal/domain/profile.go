package domain

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/paulmach/orb"
)

// CountryProfile is the canonical snapshot for one country. A profile is never
// mutated after it has been produced; a new query yields a new value.
type CountryProfile struct {
	Name               string           `json:"name" validate:"required"`
	OfficialName       string           `json:"officialName"`
	IsoAlpha2          string           `json:"isoAlpha2" validate:"required,len=2,alpha"`
	Capital            string           `json:"capital" validate:"required"`
	Population         string           `json:"population" validate:"required"`
	Currency           Currency         `json:"currency"`
	Languages          []string         `json:"languages"`
	Region             string           `json:"region"`
	Description        string           `json:"description" validate:"required"`
	FunFacts           []string         `json:"funFacts"`
	EconomicHistory    []EconomicMetric `json:"economicHistory" validate:"dive"`
	Landmarks          []Landmark       `json:"landmarks" validate:"dive"`
	Climate            string           `json:"climate"`
	InternetTLD        string           `json:"internetTLD"`
	CallingCode        string           `json:"callingCode"`
	Timezones          []string         `json:"timezones"`
	Coordinates        Coordinates      `json:"coordinates"`
	CapitalCoordinates Coordinates      `json:"capitalCoordinates"`
	EmergencyNumbers   EmergencyNumbers `json:"emergencyNumbers"`
	SafetyAdvisory     SafetyAdvisory   `json:"safetyAdvisory"`
}

type Currency struct {
	Name   string `json:"name"`
	Code   string `json:"code" validate:"omitempty,len=3,alpha"`
	Symbol string `json:"symbol"`
}

// EconomicMetric is one year of GDP growth and inflation, both in percent.
type EconomicMetric struct {
	Year      string  `json:"year" validate:"required"`
	GDP       float64 `json:"gdp"`
	Inflation float64 `json:"inflation"`
}

type Landmark struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
	Type        string `json:"type"`
	Emoji       string `json:"emoji,omitempty"`
	URL         string `json:"url,omitempty"`
}

type Coordinates struct {
	Latitude  float64 `json:"latitude" validate:"gte=-90,lte=90"`
	Longitude float64 `json:"longitude" validate:"gte=-180,lte=180"`
}

// Point returns the coordinates as an orb point (longitude first).
func (c Coordinates) Point() orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

type EmergencyNumbers struct {
	Police    string `json:"police"`
	Ambulance string `json:"ambulance"`
	Fire      string `json:"fire"`
}

type SafetyAdvisory struct {
	Score          float64  `json:"score" validate:"gte=0,lte=5"`
	Message        string   `json:"message"`
	RegionsToAvoid []string `json:"regionsToAvoid"`
	HealthRisks    []string `json:"healthRisks"`
	VisaInfo       string   `json:"visaInfo"`
}

// Key returns the identity of the profile. Two profiles with the same key are the
// same country regardless of any other field.
func (p *CountryProfile) Key() string {
	if p == nil {
		return ""
	}
	return strings.ToUpper(p.IsoAlpha2)
}

// SameCountry reports whether both profiles describe the same country.
func (p *CountryProfile) SameCountry(other *CountryProfile) bool {
	if p == nil || other == nil {
		return false
	}
	return p.Key() == other.Key()
}

// Clone returns a deep copy so holders never share slices with the original.
func (p *CountryProfile) Clone() *CountryProfile {
	if p == nil {
		return nil
	}
	c := *p
	c.Languages = cloneStrings(p.Languages)
	c.FunFacts = cloneStrings(p.FunFacts)
	c.Timezones = cloneStrings(p.Timezones)
	c.SafetyAdvisory.RegionsToAvoid = cloneStrings(p.SafetyAdvisory.RegionsToAvoid)
	c.SafetyAdvisory.HealthRisks = cloneStrings(p.SafetyAdvisory.HealthRisks)
	if p.EconomicHistory != nil {
		c.EconomicHistory = append([]EconomicMetric(nil), p.EconomicHistory...)
	}
	if p.Landmarks != nil {
		c.Landmarks = append([]Landmark(nil), p.Landmarks...)
	}
	return &c
}

// PrimaryLanguage returns the first listed language, or "".
func (p *CountryProfile) PrimaryLanguage() string {
	if p == nil || len(p.Languages) == 0 {
		return ""
	}
	return p.Languages[0]
}

// PrimaryTimezone returns the first listed timezone, or "".
func (p *CountryProfile) PrimaryTimezone() string {
	if p == nil || len(p.Timezones) == 0 {
		return ""
	}
	return p.Timezones[0]
}

// Normalize tidies a freshly decoded profile in place. It runs before the
// profile is published, never afterwards.
func (p *CountryProfile) Normalize() {
	p.Name = strings.TrimSpace(p.Name)
	p.OfficialName = strings.TrimSpace(p.OfficialName)
	p.IsoAlpha2 = strings.ToUpper(strings.TrimSpace(p.IsoAlpha2))
	p.Capital = strings.TrimSpace(p.Capital)
	p.Population = strings.TrimSpace(p.Population)
	p.Region = strings.TrimSpace(p.Region)
	p.Description = strings.TrimSpace(p.Description)
	p.Currency.Name = strings.TrimSpace(p.Currency.Name)
	p.Currency.Code = strings.ToUpper(strings.TrimSpace(p.Currency.Code))
	p.Currency.Symbol = strings.TrimSpace(p.Currency.Symbol)
	p.Languages = trimNonEmpty(p.Languages)
	p.FunFacts = trimNonEmpty(p.FunFacts)
	p.Timezones = trimNonEmpty(p.Timezones)

	if p.SafetyAdvisory.Score < 0 {
		p.SafetyAdvisory.Score = 0
	} else if p.SafetyAdvisory.Score > 5 {
		p.SafetyAdvisory.Score = 5
	}

	for i := range p.EconomicHistory {
		p.EconomicHistory[i].Year = strings.TrimSpace(p.EconomicHistory[i].Year)
	}
	sort.SliceStable(p.EconomicHistory, func(i, j int) bool {
		return yearLess(p.EconomicHistory[i].Year, p.EconomicHistory[j].Year)
	})
}

var (
	validateOnce sync.Once
	validate     *validator.Validate
)

func profileValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
	})
	return validate
}

// Validate runs the shape checks on the profile. It does not judge accuracy.
func (p *CountryProfile) Validate() error {
	return profileValidator().Struct(p)
}

func yearLess(a, b string) bool {
	ai, aErr := strconv.Atoi(a)
	bi, bErr := strconv.Atoi(b)
	if aErr == nil && bErr == nil {
		return ai < bi
	}
	return a < b
}

func trimNonEmpty(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, 0, len(values))
	for _, v := range values {
		if t := strings.TrimSpace(v); t != "" {
			out = append(out, t)
		}
	}
	return out
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	return append([]string(nil), values...)
}
