package provider

import (
	"context"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/kapu/terrascope/internal/domain"
	"github.com/kapu/terrascope/internal/util"
	"github.com/kapu/terrascope/pkg/errors"
)

const weatherCurrentFields = "temperature_2m,relative_humidity_2m,apparent_temperature,is_day,weather_code,wind_speed_10m,wind_direction_10m"

type openMeteoResponse struct {
	Current *struct {
		Temperature         float64 `json:"temperature_2m"`
		RelativeHumidity    float64 `json:"relative_humidity_2m"`
		ApparentTemperature float64 `json:"apparent_temperature"`
		IsDay               int     `json:"is_day"`
		WeatherCode         int     `json:"weather_code"`
		WindSpeed           float64 `json:"wind_speed_10m"`
		WindDirection       float64 `json:"wind_direction_10m"`
	} `json:"current"`
}

// WeatherService reads current conditions from open-meteo.
type WeatherService struct {
	requester *JSONRequester
	baseURL   string
	logger    *zap.Logger
}

func NewWeatherService(requester *JSONRequester, baseURL string, logger *zap.Logger) *WeatherService {
	return &WeatherService{
		requester: requester,
		baseURL:   baseURL,
		logger:    util.OrNop(logger),
	}
}

func (s *WeatherService) CurrentWeather(ctx context.Context, coords domain.Coordinates) (*domain.Weather, error) {
	params := url.Values{}
	params.Set("latitude", strconv.FormatFloat(coords.Latitude, 'f', -1, 64))
	params.Set("longitude", strconv.FormatFloat(coords.Longitude, 'f', -1, 64))
	params.Set("current", weatherCurrentFields)
	params.Set("wind_speed_unit", "kmh")

	var body openMeteoResponse
	if err := s.requester.GetJSON(ctx, s.baseURL, params, &body); err != nil {
		return nil, errors.NewProviderError("fetch weather", NameWeather, "current_weather", err)
	}
	if body.Current == nil {
		return nil, errors.NewProviderError("weather response has no current block", NameWeather, "current_weather", nil)
	}

	c := body.Current
	return &domain.Weather{
		Temperature:   c.Temperature,
		FeelsLike:     c.ApparentTemperature,
		Humidity:      c.RelativeHumidity,
		WindSpeed:     c.WindSpeed,
		WindDirection: c.WindDirection,
		WeatherCode:   c.WeatherCode,
		IsDay:         c.IsDay == 1,
	}, nil
}
