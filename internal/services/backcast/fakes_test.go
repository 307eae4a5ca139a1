package backcast_test

import (
	"context"
	"fmt"
	"sync"

	"weather-backcast/internal/models"
)

// fakeArchive implements repositories.ArchiveRepository for testing.
type fakeArchive struct {
	mu      sync.Mutex
	archive models.HourlyArchive
	err     error
	calls   []archiveCall
	// block, when set, is waited on before answering.
	block chan struct{}
}

type archiveCall struct {
	lat, lon   float64
	start, end string
}

func (f *fakeArchive) Name() string {
	return "fake-archive"
}

func (f *fakeArchive) FetchHourly(ctx context.Context, lat, lon float64, start, end string) (models.HourlyArchive, error) {
	f.mu.Lock()
	f.calls = append(f.calls, archiveCall{lat: lat, lon: lon, start: start, end: end})
	block := f.block
	f.mu.Unlock()

	if block != nil {
		select {
		case <-block:
		case <-ctx.Done():
			return models.HourlyArchive{}, ctx.Err()
		}
	}

	if f.err != nil {
		return models.HourlyArchive{}, f.err
	}
	return f.archive, nil
}

func (f *fakeArchive) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func float(v float64) *float64 {
	return &v
}

func integer(v int) *int {
	return &v
}

// hourlyArchive builds a full archive with every hour of every date, with
// temperature encoding the day of month and hour for easy assertions.
func hourlyArchive(dates ...string) models.HourlyArchive {
	var archive models.HourlyArchive
	for d, date := range dates {
		for hour := 0; hour < 24; hour++ {
			archive.Time = append(archive.Time, fmt.Sprintf("%sT%02d:00", date, hour))
			archive.Temperature = append(archive.Temperature, float(float64(d*100+hour)))
			archive.Humidity = append(archive.Humidity, float(50))
			archive.WindSpeed = append(archive.WindSpeed, float(2.5))
			archive.WeatherCode = append(archive.WeatherCode, integer(3))
		}
	}
	return archive
}
