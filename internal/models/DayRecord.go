package models

// DayRecord is one reduced daily summary taken from a single hourly sample.
type DayRecord struct {
	Date         string   `json:"date" example:"2025-06-01"`
	SourceTime   string   `json:"source_time" example:"2025-06-01T12:00"`
	HourOfDay    int      `json:"hour" example:"12"`
	TemperatureC *float64 `json:"temperature_c" example:"21.4"`
	HumidityPct  *float64 `json:"humidity_pct" example:"63"`
	WindSpeedMs  *float64 `json:"wind_speed_ms" example:"3.2"`
	WeatherCode  *int     `json:"weather_code" example:"3"`
}
