package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/weatherwidget/backend/internal/domain"
	"github.com/weatherwidget/backend/pkg/utils"
)

// DefaultWeatherURL is the OpenWeatherMap current-weather endpoint
const DefaultWeatherURL = "https://api.openweathermap.org/data/2.5/weather"

// Fetcher resolves a city name to a lookup result.
// Implementations absorb every failure into the result.
type Fetcher interface {
	Lookup(ctx context.Context, query string) domain.LookupResult
}

// WeatherService handles weather data fetching
type WeatherService struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
	now        func() time.Time
}

// NewWeatherService creates a new weather service
func NewWeatherService(apiKey, baseURL string, timeout time.Duration) *WeatherService {
	if baseURL == "" {
		baseURL = DefaultWeatherURL
	}
	return &WeatherService{
		apiKey:  apiKey,
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		now: time.Now,
	}
}

// OpenWeatherResponse represents the OpenWeatherMap API response
type OpenWeatherResponse struct {
	Main *struct {
		Temp     float64 `json:"temp"`
		Humidity float64 `json:"humidity"`
	} `json:"main"`
	Weather []struct {
		Main        string `json:"main"`
		Description string `json:"description"`
	} `json:"weather"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Name string `json:"name"`
}

// Lookup fetches current conditions for a city. An empty or blank query
// resolves to EmptyQuery without touching the network.
func (s *WeatherService) Lookup(ctx context.Context, query string) domain.LookupResult {
	city := strings.TrimSpace(query)
	if city == "" {
		return domain.Failed(domain.EmptyQuery)
	}

	rec, status, err := s.fetch(ctx, city)
	switch {
	case status == http.StatusNotFound:
		return domain.Failed(domain.LocationNotFound)
	case err != nil:
		log.Printf("Weather lookup for %q failed: %v", city, err)
		return domain.Failed(domain.TransientFailure)
	}
	return domain.Found(rec)
}

func (s *WeatherService) fetch(ctx context.Context, city string) (domain.WeatherRecord, int, error) {
	params := url.Values{}
	params.Set("q", city)
	params.Set("units", "metric")
	params.Set("appid", s.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return domain.WeatherRecord{}, 0, fmt.Errorf("weather: failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return domain.WeatherRecord{}, 0, fmt.Errorf("weather: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return domain.WeatherRecord{}, resp.StatusCode, fmt.Errorf("weather: unexpected status %d", resp.StatusCode)
	}

	var owResp OpenWeatherResponse
	if err := json.NewDecoder(resp.Body).Decode(&owResp); err != nil {
		return domain.WeatherRecord{}, resp.StatusCode, fmt.Errorf("weather: failed to decode response: %w", err)
	}

	rec, err := s.toRecord(owResp)
	return rec, resp.StatusCode, err
}

func (s *WeatherService) toRecord(owResp OpenWeatherResponse) (domain.WeatherRecord, error) {
	if len(owResp.Weather) == 0 {
		return domain.WeatherRecord{}, fmt.Errorf("weather: response has no condition data")
	}
	if owResp.Main == nil {
		return domain.WeatherRecord{}, fmt.Errorf("weather: response has no main block")
	}

	cond := owResp.Weather[0]
	return domain.WeatherRecord{
		Location:      owResp.Name,
		Condition:     domain.ParseCondition(cond.Main),
		ConditionMain: cond.Main,
		Description:   cond.Description,
		TemperatureC:  owResp.Main.Temp,
		Humidity:      utils.ClampInt(utils.RoundHalfUp(owResp.Main.Humidity), 0, 100),
		WindSpeed:     owResp.Wind.Speed,
		FetchedAt:     s.now(),
	}, nil
}
