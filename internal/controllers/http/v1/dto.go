package http

import (
	"time"

	"weather-backcast/internal/models"
	"weather-backcast/internal/services/backcast"
	"weather-backcast/internal/services/icons"
	"weather-backcast/internal/services/units"
)

// BackcastResponse represents the five-day backcast for one location
type BackcastResponse struct {
	Latitude  float64       `json:"latitude" example:"52.52"`
	Longitude float64       `json:"longitude" example:"13.41"`
	Units     models.Units  `json:"units"`
	Days      []DayResponse `json:"days"`
}

// DayResponse represents a single day's noon-nearest observation in display units
type DayResponse struct {
	Date        string       `json:"date" example:"2025-06-05"`
	SourceTime  string       `json:"source_time" example:"2025-06-05T12:00"`
	Hour        int          `json:"hour" example:"12"`
	Temperature *float64     `json:"temperature" example:"21"`
	Humidity    *float64     `json:"humidity" example:"63"`
	WindSpeed   *float64     `json:"wind_speed" example:"3"`
	WeatherCode *int         `json:"weather_code" example:"3"`
	Icon        IconResponse `json:"icon"`
}

type IconResponse struct {
	Category icons.Category `json:"category" example:"cloudy"`
	IsDay    bool           `json:"is_day" example:"true"`
	Code     string         `json:"code" example:"03d"`
}

// ViewResponse represents a user's backcast view
type ViewResponse struct {
	Status          backcast.Status `json:"status" example:"success"`
	Latitude        *float64        `json:"latitude,omitempty" example:"52.52"`
	Longitude       *float64        `json:"longitude,omitempty" example:"13.41"`
	Units           models.Units    `json:"units"`
	Days            []DayResponse   `json:"days"`
	Error           string          `json:"error,omitempty"`
	ErrorKind       backcast.Kind   `json:"error_kind,omitempty" example:"transport"`
	TransportStatus int             `json:"transport_status,omitempty" example:"503"`
	Generation      uint64          `json:"generation" example:"1"`
	LoadID          string          `json:"load_id,omitempty"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error  string        `json:"error" example:"Missing required parameter: lat"`
	Kind   backcast.Kind `json:"kind,omitempty" example:"transport"`
	Status int           `json:"status,omitempty" example:"503"`
}

// LocationRequest is the body of a location search
type LocationRequest struct {
	Lat *float64 `json:"lat" example:"52.52"`
	Lon *float64 `json:"lon" example:"13.41"`
}

// PreferencesRequest carries the settings to change; absent fields stay as they are
type PreferencesRequest struct {
	Units    *UnitsRequest `json:"units,omitempty"`
	DarkMode *bool         `json:"dark_mode,omitempty" example:"true"`
}

type UnitsRequest struct {
	Temperature string `json:"temp" example:"F"`
	Speed       string `json:"speed" example:"km/h"`
}

func newDayResponses(records []models.DayRecord, u models.Units) []DayResponse {
	days := make([]DayResponse, 0, len(records))
	for _, r := range records {
		icon := icons.Classify(r.WeatherCode, r.HourOfDay)

		days = append(days, DayResponse{
			Date:        r.Date,
			SourceTime:  r.SourceTime,
			Hour:        r.HourOfDay,
			Temperature: units.Round(units.ConvertTemperature(r.TemperatureC, u.Temperature)),
			Humidity:    units.Round(r.HumidityPct),
			WindSpeed:   units.Round(units.ConvertSpeed(r.WindSpeedMs, u.Speed)),
			WeatherCode: r.WeatherCode,
			Icon: IconResponse{
				Category: icon.Category,
				IsDay:    icon.IsDay,
				Code:     icon.OpenWeatherCode(),
			},
		})
	}
	return days
}

func newViewResponse(state backcast.State, u models.Units) ViewResponse {
	resp := ViewResponse{
		Status:          state.Status,
		Units:           u,
		Days:            newDayResponses(state.Records, u),
		Error:           state.Error,
		ErrorKind:       state.ErrorKind,
		TransportStatus: state.TransportStatus,
		Generation:      state.Generation,
		LoadID:          state.LoadID,
		UpdatedAt:       state.UpdatedAt,
	}
	if state.Coordinates != nil {
		resp.Latitude = state.Coordinates.Lat
		resp.Longitude = state.Coordinates.Lon
	}
	return resp
}
