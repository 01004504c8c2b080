// internal/models/weather.go
package models

// WeatherSnapshot records the result of each weather lookup. Every page view
// re-fetches from the provider; the snapshot is history, not a cache.
type WeatherSnapshot struct {
	BaseModel
	Location    string   `json:"location" gorm:"size:200;not null;index"`
	Temperature *float64 `json:"temperature"`
	Humidity    *float64 `json:"humidity"`
	Description string   `json:"description" gorm:"size:200"`
}
