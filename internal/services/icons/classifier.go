// Package icons turns WMO weather codes into provider-neutral icon categories.
package icons

type Category string

const (
	Clear        Category = "clear"
	PartlyCloudy Category = "partly-cloudy"
	Cloudy       Category = "cloudy"
	Fog          Category = "fog"
	Drizzle      Category = "drizzle"
	Rain         Category = "rain"
	Snow         Category = "snow"
)

const (
	dayStartHour = 6
	dayEndHour   = 18
)

// Icon is the category plus day/night flag handed to the display layer.
type Icon struct {
	Category Category `json:"category" example:"cloudy"`
	IsDay    bool     `json:"is_day" example:"true"`
}

// IsDay reports whether hour falls in the inclusive 06..18 daytime band.
func IsDay(hour int) bool {
	return hour >= dayStartHour && hour <= dayEndHour
}

// Classify maps a WMO code observed at hourOfDay to an icon. Unknown and
// missing codes fall back to partly cloudy.
func Classify(code *int, hourOfDay int) Icon {
	category := PartlyCloudy
	if code != nil {
		category = categoryOf(*code)
	}

	return Icon{
		Category: category,
		IsDay:    IsDay(hourOfDay),
	}
}

func categoryOf(code int) Category {
	switch code {
	case 0:
		return Clear
	case 1, 2:
		return PartlyCloudy
	case 3:
		return Cloudy
	case 45, 48:
		return Fog
	case 51, 53, 55, 80, 81, 82:
		return Drizzle
	case 61, 63, 65, 66, 67, 95, 96, 99:
		return Rain
	case 71, 73, 75, 77, 85, 86:
		return Snow
	default:
		return PartlyCloudy
	}
}

var openWeatherPrefix = map[Category]string{
	Clear:        "01",
	PartlyCloudy: "02",
	Cloudy:       "03",
	Fog:          "50",
	Drizzle:      "09",
	Rain:         "10",
	Snow:         "13",
}

// OpenWeatherCode resolves the icon to the OpenWeather icon code used by the
// dashboard assets, e.g. "10d" or "02n".
func (i Icon) OpenWeatherCode() string {
	prefix, ok := openWeatherPrefix[i.Category]
	if !ok {
		prefix = openWeatherPrefix[PartlyCloudy]
	}

	if i.IsDay {
		return prefix + "d"
	}
	return prefix + "n"
}
