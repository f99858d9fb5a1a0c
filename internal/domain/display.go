package domain

import (
	"fmt"
	"math"
	"net/url"
	"strconv"
	"strings"

	"github.com/kapu/terrascope/internal/constants"
)

// LandmarkCategory groups landmark types for display treatment.
type LandmarkCategory string

const (
	LandmarkNature     LandmarkCategory = "nature"
	LandmarkHistorical LandmarkCategory = "historical"
	LandmarkUrban      LandmarkCategory = "urban"
	LandmarkCoastal    LandmarkCategory = "coastal"
	LandmarkOther      LandmarkCategory = "other"
)

var landmarkKeywords = []struct {
	category LandmarkCategory
	keywords []string
}{
	{LandmarkNature, []string{"nature", "mountain", "river", "park"}},
	{LandmarkHistorical, []string{"history", "ancient", "temple", "museum"}},
	{LandmarkUrban, []string{"urban", "city", "modern", "tower"}},
	{LandmarkCoastal, []string{"beach", "coast", "sea", "island"}},
}

// ClassifyLandmark maps a free-form landmark type to a category. The first
// matching group wins; anything unmatched is LandmarkOther.
func ClassifyLandmark(landmarkType string) LandmarkCategory {
	t := strings.ToLower(landmarkType)
	for _, group := range landmarkKeywords {
		for _, kw := range group.keywords {
			if strings.Contains(t, kw) {
				return group.category
			}
		}
	}
	return LandmarkOther
}

// WeatherLabel returns the English label for a WMO weather code.
func WeatherLabel(code int) string {
	switch code {
	case 0:
		return "Clear Sky"
	case 1:
		return "Mainly Clear"
	case 2:
		return "Partly Cloudy"
	case 3:
		return "Overcast"
	case 45, 48:
		return "Foggy"
	case 51, 53, 55:
		return "Drizzle"
	case 56, 57:
		return "Freezing Drizzle"
	case 61, 63, 65:
		return "Rain"
	case 66, 67:
		return "Freezing Rain"
	case 71, 73, 75:
		return "Snow"
	case 77:
		return "Snow Grains"
	case 80, 81, 82:
		return "Rain Showers"
	case 85, 86:
		return "Snow Showers"
	case 95:
		return "Thunderstorm"
	case 96, 99:
		return "Thunderstorm & Hail"
	default:
		return "Unknown"
	}
}

// WeatherIcon returns a coarse icon name for a WMO code.
func WeatherIcon(code int) string {
	switch {
	case code == 0:
		return "sun"
	case code >= 1 && code <= 3:
		return "cloud"
	case code == 45 || code == 48:
		return "fog"
	case code >= 51 && code <= 57:
		return "drizzle"
	case (code >= 61 && code <= 67) || (code >= 80 && code <= 82):
		return "rain"
	case (code >= 71 && code <= 77) || code == 85 || code == 86:
		return "snow"
	case code >= 95:
		return "thunderstorm"
	default:
		return "sun"
	}
}

var compassPoints = [8]string{"N", "NE", "E", "SE", "S", "SW", "W", "NW"}

// WindDirection maps degrees to one of eight compass points.
func WindDirection(degrees float64) string {
	idx := int(math.Round(degrees/45)) % 8
	if idx < 0 {
		idx += 8
	}
	return compassPoints[idx]
}

// CelsiusToFahrenheit converts and rounds to whole degrees.
func CelsiusToFahrenheit(c float64) float64 {
	return math.Round(c*9/5 + 32)
}

// RiskLevel is the display band for a safety score.
type RiskLevel string

const (
	RiskLow     RiskLevel = "Low Risk"
	RiskMedium  RiskLevel = "Medium Risk"
	RiskHigh    RiskLevel = "High Risk"
	RiskExtreme RiskLevel = "Extreme Warning"
)

func RiskLevelFor(score float64) RiskLevel {
	switch {
	case score < 2.5:
		return RiskLow
	case score < 3.5:
		return RiskMedium
	case score < 4.5:
		return RiskHigh
	default:
		return RiskExtreme
	}
}

// FlagURL returns the flag image for an ISO alpha-2 code.
func FlagURL(isoAlpha2 string) string {
	return fmt.Sprintf("%s/%s.png", constants.APIConfig.FlagBaseURL, strings.ToLower(isoAlpha2))
}

// TileURL returns the map tile template for the theme.
func TileURL(theme Theme) string {
	if theme == ThemeDark {
		return constants.APIConfig.DarkTileURL
	}
	return constants.APIConfig.LightTileURL
}

// ShareURL sets the country parameter on the dashboard URL, keeping any other
// query parameters.
func ShareURL(base, countryName string) (string, error) {
	u, err := url.Parse(base)
	if err != nil {
		return "", fmt.Errorf("parse dashboard url: %w", err)
	}
	q := u.Query()
	q.Set("country", countryName)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// ExchangeRow is one displayed target currency.
type ExchangeRow struct {
	Code      string  `json:"code"`
	Rate      float64 `json:"rate"`
	Formatted string  `json:"formatted"`
	Available bool    `json:"available"`
}

// ExchangeRows lists the major currencies other than the base, in fixed order.
// A currency missing from rates is kept with Available=false.
func ExchangeRows(base string, rates *ExchangeRates) []ExchangeRow {
	base = strings.ToUpper(base)
	rows := make([]ExchangeRow, 0, len(constants.MajorCurrencies))
	for _, code := range constants.MajorCurrencies {
		if code == base {
			continue
		}
		row := ExchangeRow{Code: code, Formatted: "-"}
		if rates != nil {
			if rate, ok := rates.Rates[code]; ok {
				row.Rate = rate
				row.Formatted = FormatRate(rate)
				row.Available = true
			}
		}
		rows = append(rows, row)
	}
	return rows
}

// FormatRate uses four decimals for very small rates and two otherwise.
func FormatRate(rate float64) string {
	if rate < 0.01 {
		return strconv.FormatFloat(rate, 'f', 4, 64)
	}
	return strconv.FormatFloat(rate, 'f', 2, 64)
}
