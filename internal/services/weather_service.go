// internal/services/weather_service.go
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/config"
	"github.com/agrilink/agrilink-backend/internal/models"
)

var ErrWeatherUnavailable = errors.New("weather service unavailable")

// WeatherService queries an OpenWeather-compatible API for current conditions
// and forecasts, keeping a snapshot trail of successful current-weather
// lookups.
type WeatherService struct {
	db     *gorm.DB
	config *config.Config
	client *http.Client
}

// CurrentWeather is the trimmed payload served to clients.
type CurrentWeather struct {
	Location    string  `json:"location"`
	Temperature float64 `json:"temperature"`
	FeelsLike   float64 `json:"feels_like"`
	Humidity    float64 `json:"humidity"`
	WindSpeed   float64 `json:"wind_speed"`
	Description string  `json:"description"`
	Icon        string  `json:"icon"`
}

type ForecastEntry struct {
	Timestamp   time.Time `json:"timestamp"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Description string    `json:"description"`
	Icon        string    `json:"icon"`
}

type openWeatherCurrent struct {
	Name string `json:"name"`
	Main struct {
		Temp      float64 `json:"temp"`
		FeelsLike float64 `json:"feels_like"`
		Humidity  float64 `json:"humidity"`
	} `json:"main"`
	Wind struct {
		Speed float64 `json:"speed"`
	} `json:"wind"`
	Weather []struct {
		Description string `json:"description"`
		Icon        string `json:"icon"`
	} `json:"weather"`
}

type openWeatherForecast struct {
	List []struct {
		Dt   int64 `json:"dt"`
		Main struct {
			Temp     float64 `json:"temp"`
			Humidity float64 `json:"humidity"`
		} `json:"main"`
		Weather []struct {
			Description string `json:"description"`
			Icon        string `json:"icon"`
		} `json:"weather"`
	} `json:"list"`
}

func NewWeatherService(db *gorm.DB, cfg *config.Config) *WeatherService {
	return &WeatherService{
		db:     db,
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Weather.TimeoutSeconds) * time.Second,
		},
	}
}

func (s *WeatherService) GetCurrentWeather(ctx context.Context, location string) (*CurrentWeather, error) {
	var raw openWeatherCurrent
	if err := s.fetch(ctx, "/weather", location, &raw); err != nil {
		return nil, err
	}

	weather := &CurrentWeather{
		Location:    raw.Name,
		Temperature: raw.Main.Temp,
		FeelsLike:   raw.Main.FeelsLike,
		Humidity:    raw.Main.Humidity,
		WindSpeed:   raw.Wind.Speed,
	}
	if weather.Location == "" {
		weather.Location = location
	}
	if len(raw.Weather) > 0 {
		weather.Description = raw.Weather[0].Description
		weather.Icon = raw.Weather[0].Icon
	}

	s.saveSnapshot(weather)

	return weather, nil
}

func (s *WeatherService) GetForecast(ctx context.Context, location string) ([]ForecastEntry, error) {
	var raw openWeatherForecast
	if err := s.fetch(ctx, "/forecast", location, &raw); err != nil {
		return nil, err
	}

	entries := make([]ForecastEntry, 0, len(raw.List))
	for _, item := range raw.List {
		entry := ForecastEntry{
			Timestamp:   time.Unix(item.Dt, 0).UTC(),
			Temperature: item.Main.Temp,
			Humidity:    item.Main.Humidity,
		}
		if len(item.Weather) > 0 {
			entry.Description = item.Weather[0].Description
			entry.Icon = item.Weather[0].Icon
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

func (s *WeatherService) fetch(ctx context.Context, path, location string, out interface{}) error {
	if s.config.Weather.APIKey == "" {
		return fmt.Errorf("%w: no API key configured", ErrWeatherUnavailable)
	}

	endpoint := s.config.Weather.BaseURL + path
	params := url.Values{}
	params.Set("q", location)
	params.Set("appid", s.config.Weather.APIKey)
	params.Set("units", "metric")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		logrus.WithError(err).WithField("location", location).Warn("Weather request failed")
		return fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		logrus.WithFields(logrus.Fields{
			"status":   resp.StatusCode,
			"location": location,
		}).Warn("Weather API returned non-200")
		return fmt.Errorf("%w: status %d", ErrWeatherUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: decoding response: %v", ErrWeatherUnavailable, err)
	}

	return nil
}

// saveSnapshot keeps a record of successful lookups. Failures are logged but
// never affect the caller's response.
func (s *WeatherService) saveSnapshot(w *CurrentWeather) {
	snapshot := &models.WeatherSnapshot{
		Location:    w.Location,
		Temperature: &w.Temperature,
		Humidity:    &w.Humidity,
		Description: w.Description,
	}
	if err := s.db.Create(snapshot).Error; err != nil {
		logrus.WithError(err).WithField("location", w.Location).
			Warn("Failed to save weather snapshot")
	}
}
