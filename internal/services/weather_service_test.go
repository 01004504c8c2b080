// internal/services/weather_service_test.go
package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/agrilink/agrilink-backend/internal/models"
)

func newWeatherService(t *testing.T, handler http.HandlerFunc) (*WeatherService, *gorm.DB, func()) {
	t.Helper()

	db := setupTestDB(t)
	server := httptest.NewServer(handler)

	cfg := testConfig()
	cfg.Weather.BaseURL = server.URL

	return NewWeatherService(db, cfg), db, server.Close
}

func TestGetCurrentWeather(t *testing.T) {
	svc, db, cleanup := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/weather", r.URL.Path)
		assert.Equal(t, "Nairobi", r.URL.Query().Get("q"))
		assert.Equal(t, "metric", r.URL.Query().Get("units"))
		w.Write([]byte(`{
			"name": "Nairobi",
			"main": {"temp": 22.5, "feels_like": 21.8, "humidity": 64},
			"wind": {"speed": 3.1},
			"weather": [{"description": "scattered clouds", "icon": "03d"}]
		}`))
	})
	defer cleanup()

	weather, err := svc.GetCurrentWeather(context.Background(), "Nairobi")
	require.NoError(t, err)
	assert.Equal(t, "Nairobi", weather.Location)
	assert.Equal(t, 22.5, weather.Temperature)
	assert.Equal(t, "scattered clouds", weather.Description)

	// A snapshot is kept for every successful lookup.
	var snapshots []models.WeatherSnapshot
	require.NoError(t, db.Find(&snapshots).Error)
	require.Len(t, snapshots, 1)
	assert.Equal(t, "Nairobi", snapshots[0].Location)
}

func TestGetCurrentWeatherUpstreamDown(t *testing.T) {
	svc, db, cleanup := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	defer cleanup()

	_, err := svc.GetCurrentWeather(context.Background(), "Nairobi")
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrWeatherUnavailable)

	var count int64
	require.NoError(t, db.Model(&models.WeatherSnapshot{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGetForecast(t *testing.T) {
	svc, _, cleanup := newWeatherService(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/forecast", r.URL.Path)
		w.Write([]byte(`{
			"list": [
				{"dt": 1756650000, "main": {"temp": 19.0, "humidity": 70}, "weather": [{"description": "light rain", "icon": "10d"}]},
				{"dt": 1756660800, "main": {"temp": 23.0, "humidity": 55}, "weather": [{"description": "clear sky", "icon": "01d"}]}
			]
		}`))
	})
	defer cleanup()

	forecast, err := svc.GetForecast(context.Background(), "Eldoret")
	require.NoError(t, err)
	require.Len(t, forecast, 2)
	assert.Equal(t, 19.0, forecast[0].Temperature)
	assert.Equal(t, "clear sky", forecast[1].Description)
	assert.True(t, forecast[1].Timestamp.After(forecast[0].Timestamp))
}

func TestWeatherMissingAPIKey(t *testing.T) {
	db := setupTestDB(t)
	cfg := testConfig()
	cfg.Weather.APIKey = ""

	svc := NewWeatherService(db, cfg)
	_, err := svc.GetCurrentWeather(context.Background(), "Nairobi")
	assert.ErrorIs(t, err, ErrWeatherUnavailable)
}
