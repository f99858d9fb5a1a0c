package domain

// Weather holds current conditions at a point. Temperatures are Celsius and wind
// speed is km/h.
type Weather struct {
	Temperature   float64 `json:"temperature"`
	FeelsLike     float64 `json:"feelsLike"`
	Humidity      float64 `json:"humidity"`
	WindSpeed     float64 `json:"windSpeed"`
	WindDirection float64 `json:"windDirection"`
	WeatherCode   int     `json:"weatherCode"`
	IsDay         bool    `json:"isDay"`
}

type NewsSource struct {
	Title string `json:"title"`
	URI   string `json:"uri"`
}

// NewsDigest is the headline summary for one country with its grounding sources.
type NewsDigest struct {
	Content string       `json:"content"`
	Sources []NewsSource `json:"sources"`
}

// ExchangeRates maps currency codes to the amount of that currency one unit of
// Base buys.
type ExchangeRates struct {
	Base        string             `json:"base"`
	Rates       map[string]float64 `json:"rates"`
	LastUpdated string             `json:"lastUpdated,omitempty"`
}

// TranslatedContent is the translatable part of a profile.
type TranslatedContent struct {
	Description string   `json:"description"`
	FunFacts    []string `json:"funFacts"`
}

func (w *Weather) Clone() *Weather {
	if w == nil {
		return nil
	}
	c := *w
	return &c
}

func (n *NewsDigest) Clone() *NewsDigest {
	if n == nil {
		return nil
	}
	c := *n
	if n.Sources != nil {
		c.Sources = append([]NewsSource(nil), n.Sources...)
	}
	return &c
}

func (r *ExchangeRates) Clone() *ExchangeRates {
	if r == nil {
		return nil
	}
	c := *r
	if r.Rates != nil {
		c.Rates = make(map[string]float64, len(r.Rates))
		for k, v := range r.Rates {
			c.Rates[k] = v
		}
	}
	return &c
}

func (t *TranslatedContent) Clone() *TranslatedContent {
	if t == nil {
		return nil
	}
	c := *t
	c.FunFacts = cloneStrings(t.FunFacts)
	return &c
}
