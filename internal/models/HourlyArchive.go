package models

// HourlyArchive holds the parallel hourly series returned by the archive.
// Every present series is indexed by the same position as Time. A series the
// provider did not return stays nil.
type HourlyArchive struct {
	Time        []string   `json:"time"`
	Temperature []*float64 `json:"temperature_2m"`
	Humidity    []*float64 `json:"relativehumidity_2m"`
	WindSpeed   []*float64 `json:"wind_speed_10m"`
	WeatherCode []*int     `json:"weathercode"`
}

func (h HourlyArchive) Empty() bool {
	return len(h.Time) == 0
}

func (h HourlyArchive) TemperatureAt(i int) *float64 {
	return floatAt(h.Temperature, i)
}

func (h HourlyArchive) HumidityAt(i int) *float64 {
	return floatAt(h.Humidity, i)
}

func (h HourlyArchive) WindSpeedAt(i int) *float64 {
	return floatAt(h.WindSpeed, i)
}

func (h HourlyArchive) WeatherCodeAt(i int) *int {
	if i < 0 || i >= len(h.WeatherCode) || h.WeatherCode[i] == nil {
		return nil
	}
	v := *h.WeatherCode[i]
	return &v
}

func floatAt(series []*float64, i int) *float64 {
	if i < 0 || i >= len(series) || series[i] == nil {
		return nil
	}
	v := *series[i]
	return &v
}
