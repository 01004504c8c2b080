// internal/handlers/weather.go
package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/agrilink/agrilink-backend/internal/i18n"
	"github.com/agrilink/agrilink-backend/internal/services"
	"github.com/agrilink/agrilink-backend/internal/utils"
)

// defaultWeatherLocation is used when neither the query nor the farmer's
// profile names a place.
const defaultWeatherLocation = "Nairobi"

type WeatherHandler struct {
	weatherService *services.WeatherService
	authService    *services.AuthService
}

func NewWeatherHandler(weatherService *services.WeatherService, authService *services.AuthService) *WeatherHandler {
	return &WeatherHandler{
		weatherService: weatherService,
		authService:    authService,
	}
}

// resolveLocation picks the lookup location: explicit query parameter, then
// the account's profile location, then the default.
func (h *WeatherHandler) resolveLocation(c *gin.Context) string {
	if location := c.Query("location"); location != "" {
		return location
	}
	if raw, ok := utils.GetUserIDFromContext(c); ok {
		if userID, err := uuid.Parse(raw); err == nil {
			if user, err := h.authService.GetUserByID(userID); err == nil && user.Location != "" {
				return user.Location
			}
		}
	}
	return defaultWeatherLocation
}

// GET /farmer/weather?location=Nairobi
//
// A provider outage degrades the payload instead of failing the request; the
// farmer's home screen still renders.
func (h *WeatherHandler) GetCurrentWeather(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	location := h.resolveLocation(c)

	weather, err := h.weatherService.GetCurrentWeather(c.Request.Context(), location)
	if err != nil {
		if errors.Is(err, services.ErrWeatherUnavailable) {
			utils.SuccessResponse(c, gin.H{
				"available": false,
				"location":  location,
				"message":   i18n.T(lang, i18n.KeyWeatherUnavailable),
			})
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"available": true,
		"weather":   weather,
	})
}

// GET /farmer/weather/forecast?location=Nairobi
func (h *WeatherHandler) GetForecast(c *gin.Context) {
	lang := utils.GetLangFromContext(c)
	location := h.resolveLocation(c)

	forecast, err := h.weatherService.GetForecast(c.Request.Context(), location)
	if err != nil {
		if errors.Is(err, services.ErrWeatherUnavailable) {
			utils.SuccessResponse(c, gin.H{
				"available": false,
				"location":  location,
				"message":   i18n.T(lang, i18n.KeyWeatherUnavailable),
			})
			return
		}
		utils.InternalErrorResponse(c, err.Error())
		return
	}

	utils.SuccessResponse(c, gin.H{
		"available": true,
		"forecast":  forecast,
	})
}
