package service

import (
	"context"
	"strings"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
)

// MockWeatherService serves fixed conditions for a few cities.
// It stands in for OpenWeatherMap when no API key is configured.
type MockWeatherService struct {
	now func() time.Time
}

// NewMockWeatherService creates a new mock weather service
func NewMockWeatherService() *MockWeatherService {
	return &MockWeatherService{now: time.Now}
}

var mockCities = map[string]domain.WeatherRecord{
	"london":    {Location: "London", ConditionMain: "Rain", Description: "light rain", TemperatureC: 15.4, Humidity: 80, WindSpeed: 12.3},
	"jakarta":   {Location: "Jakarta", ConditionMain: "Clouds", Description: "broken clouds", TemperatureC: 31.2, Humidity: 70, WindSpeed: 3.6},
	"almaty":    {Location: "Almaty", ConditionMain: "Snow", Description: "light snow", TemperatureC: -8, Humidity: 65, WindSpeed: 3.5},
	"cairo":     {Location: "Cairo", ConditionMain: "Clear", Description: "clear sky", TemperatureC: 27.8, Humidity: 30, WindSpeed: 5.1},
	"reykjavik": {Location: "Reykjavik", ConditionMain: "Mist", Description: "mist", TemperatureC: 2.5, Humidity: 93, WindSpeed: 7.2},
}

// Lookup returns the fixture for the city, LocationNotFound otherwise
func (s *MockWeatherService) Lookup(ctx context.Context, query string) domain.LookupResult {
	city := strings.TrimSpace(query)
	if city == "" {
		return domain.Failed(domain.EmptyQuery)
	}
	if err := ctx.Err(); err != nil {
		return domain.Failed(domain.TransientFailure)
	}

	rec, ok := mockCities[strings.ToLower(city)]
	if !ok {
		return domain.Failed(domain.LocationNotFound)
	}
	rec.Condition = domain.ParseCondition(rec.ConditionMain)
	rec.FetchedAt = s.now()
	return domain.Found(rec)
}
