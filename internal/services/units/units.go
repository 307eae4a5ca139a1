// Package units converts canonical metric observations into display units.
package units

import (
	"fmt"
	"math"
	"strings"

	"weather-backcast/internal/models"
)

const msToKmh = 3.6

// ConvertTemperature converts degrees Celsius into unit. A nil reading stays nil.
func ConvertTemperature(celsius *float64, unit models.TemperatureUnit) *float64 {
	if celsius == nil {
		return nil
	}

	v := *celsius
	if unit != models.Celsius {
		v = v*9/5 + 32
	}
	return &v
}

// ConvertSpeed converts meters per second into unit. A nil reading stays nil.
func ConvertSpeed(metersPerSecond *float64, unit models.SpeedUnit) *float64 {
	if metersPerSecond == nil {
		return nil
	}

	v := *metersPerSecond
	if unit != models.MetersPerSecond {
		v = v * msToKmh
	}
	return &v
}

func ParseTemperatureUnit(s string) (models.TemperatureUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "c", "celsius", "metric":
		return models.Celsius, nil
	case "f", "fahrenheit", "imperial":
		return models.Fahrenheit, nil
	}
	return "", fmt.Errorf("unknown temperature unit %q", s)
}

func ParseSpeedUnit(s string) (models.SpeedUnit, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "m/s", "ms", "metric":
		return models.MetersPerSecond, nil
	case "km/h", "kmh", "kph":
		return models.KilometersPerHour, nil
	}
	return "", fmt.Errorf("unknown speed unit %q", s)
}

// ToggleTemperature flips between Celsius and Fahrenheit.
func ToggleTemperature(unit models.TemperatureUnit) models.TemperatureUnit {
	if unit == models.Celsius {
		return models.Fahrenheit
	}
	return models.Celsius
}

// ToggleSpeed flips between m/s and km/h.
func ToggleSpeed(unit models.SpeedUnit) models.SpeedUnit {
	if unit == models.MetersPerSecond {
		return models.KilometersPerHour
	}
	return models.MetersPerSecond
}

// Round rounds half up to a whole number, the way the dashboard displays
// readings (-2.5 becomes -2). A nil reading stays nil.
func Round(v *float64) *float64 {
	if v == nil {
		return nil
	}
	r := math.Floor(*v + 0.5)
	return &r
}
