package models

type TemperatureUnit string

type SpeedUnit string

const (
	Celsius    TemperatureUnit = "C"
	Fahrenheit TemperatureUnit = "F"

	MetersPerSecond   SpeedUnit = "m/s"
	KilometersPerHour SpeedUnit = "km/h"
)

// Units is the display unit choice of a user.
type Units struct {
	Temperature TemperatureUnit `json:"temp" yaml:"temp" example:"C"`
	Speed       SpeedUnit       `json:"speed" yaml:"speed" example:"m/s"`
}

func MetricUnits() Units {
	return Units{Temperature: Celsius, Speed: MetersPerSecond}
}
