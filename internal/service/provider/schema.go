package provider

import "google.golang.org/genai"

func stringSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeString, Description: description}
}

func numberSchema(description string) *genai.Schema {
	return &genai.Schema{Type: genai.TypeNumber, Description: description}
}

func stringListSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeArray,
		Items:       &genai.Schema{Type: genai.TypeString},
		Description: description,
	}
}

func coordinatesSchema(description string) *genai.Schema {
	return &genai.Schema{
		Type:        genai.TypeObject,
		Description: description,
		Properties: map[string]*genai.Schema{
			"latitude":  {Type: genai.TypeNumber},
			"longitude": {Type: genai.TypeNumber},
		},
		Required: []string{"latitude", "longitude"},
	}
}

// countryProfileSchema mirrors domain.CountryProfile's JSON shape.
func countryProfileSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"name":         stringSchema("Common name of the country"),
			"officialName": stringSchema("Official full name"),
			"isoAlpha2":    stringSchema("ISO 3166-1 alpha-2 two-letter country code (e.g., US, JP, BR)"),
			"capital":      {Type: genai.TypeString},
			"population":   stringSchema("Formatted population string (e.g. '67 Million')"),
			"currency": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"name":   stringSchema("Currency name (e.g. United States Dollar)"),
					"code":   stringSchema("ISO 4217 code (e.g. USD)"),
					"symbol": stringSchema("Currency symbol (e.g. $)"),
				},
			},
			"languages":   stringListSchema("Spoken languages, most widely used first"),
			"region":      {Type: genai.TypeString},
			"description": stringSchema("A concise 2-3 sentence overview."),
			"funFacts":    stringListSchema(""),
			"economicHistory": {
				Type:        genai.TypeArray,
				Description: "Last 5 years of economic data",
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"year":      {Type: genai.TypeString},
						"gdp":       numberSchema("GDP Growth rate in percentage"),
						"inflation": numberSchema("Inflation rate in percentage"),
					},
				},
			},
			"landmarks": {
				Type: genai.TypeArray,
				Items: &genai.Schema{
					Type: genai.TypeObject,
					Properties: map[string]*genai.Schema{
						"name":        {Type: genai.TypeString},
						"description": {Type: genai.TypeString},
						"type":        stringSchema("Nature, Historical, Urban, etc."),
						"emoji":       stringSchema("A single emoji icon representing this landmark"),
						"url":         stringSchema("URL to official site or reputable info page"),
					},
				},
			},
			"climate":            {Type: genai.TypeString},
			"internetTLD":        {Type: genai.TypeString},
			"callingCode":        {Type: genai.TypeString},
			"timezones":          stringListSchema("List of timezones (e.g. UTC+09:00)"),
			"coordinates":        coordinatesSchema("Geographic center of the country"),
			"capitalCoordinates": coordinatesSchema("Geographic coordinates of the capital city"),
			"emergencyNumbers": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"police":    stringSchema("Police emergency number"),
					"ambulance": stringSchema("Ambulance emergency number"),
					"fire":      stringSchema("Fire department emergency number"),
				},
			},
			"safetyAdvisory": {
				Type: genai.TypeObject,
				Properties: map[string]*genai.Schema{
					"score":          numberSchema("Safety risk score from 0 (Safe) to 5 (Extreme)"),
					"message":        stringSchema("Brief travel advisory summary"),
					"regionsToAvoid": stringListSchema("Specific regions to avoid or exercise caution"),
					"healthRisks":    stringListSchema("Health risks or required vaccinations"),
					"visaInfo":       stringSchema("General visa requirement summary"),
				},
				Required: []string{"score", "message", "regionsToAvoid", "healthRisks", "visaInfo"},
			},
		},
		Required: []string{
			"name", "isoAlpha2", "capital", "population", "currency", "description",
			"economicHistory", "landmarks", "coordinates", "capitalCoordinates",
			"timezones", "emergencyNumbers", "safetyAdvisory",
		},
	}
}

func translationSchema() *genai.Schema {
	return &genai.Schema{
		Type: genai.TypeObject,
		Properties: map[string]*genai.Schema{
			"description": {Type: genai.TypeString},
			"funFacts":    stringListSchema(""),
		},
		Required: []string{"description", "funFacts"},
	}
}
