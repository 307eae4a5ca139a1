package backcast

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"weather-backcast/internal/models"
	"weather-backcast/internal/repositories"
	"weather-backcast/pkg/logger"
)

// Reducer turns the archive's hourly series into one DayRecord per day of
// the look-back window.
type Reducer struct {
	archive repositories.ArchiveRepository
	l       *logger.Logger
}

func NewReducer(archive repositories.ArchiveRepository, l *logger.Logger) *Reducer {
	return &Reducer{
		archive: archive,
		l:       l,
	}
}

// Reduce loads the five days before now for coord. Records come back newest
// first; days without any sample are left out. Errors are ErrNoCoordinates,
// *repositories.TransportError, ErrDataUnavailable or *UnexpectedError, and
// the record slice is always empty when an error is returned.
func (r *Reducer) Reduce(ctx context.Context, coord *models.Coordinates, now time.Time) (records []models.DayRecord, err error) {
	if !coord.Valid() {
		return nil, ErrNoCoordinates
	}

	defer func() {
		if p := recover(); p != nil {
			records = nil
			err = &UnexpectedError{Err: fmt.Errorf("panic: %v", p)}
		}
	}()

	window := NewDateWindow(now)

	r.l.Debug("reducing backcast", map[string]any{
		"coordinates": coord.String(),
		"start":       window.Start(),
		"end":         window.End(),
	})

	archive, err := r.archive.FetchHourly(ctx, *coord.Lat, *coord.Lon, window.Start(), window.End())
	if err != nil {
		var transportErr *repositories.TransportError
		if errors.As(err, &transportErr) {
			return nil, transportErr
		}
		return nil, &UnexpectedError{Err: err}
	}

	if archive.Empty() {
		return nil, ErrDataUnavailable
	}

	records = make([]models.DayRecord, 0, models.DateWindowSize)
	for _, date := range window.Ascending() {
		idx := SelectIndex(archive.Time, date)
		if idx == NotFound {
			r.l.Debug("no hourly sample for date, skipping", map[string]any{
				"date": date,
			})
			continue
		}

		records = append(records, newDayRecord(archive, date, idx))
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})

	return records, nil
}

func newDayRecord(archive models.HourlyArchive, date string, idx int) models.DayRecord {
	sourceTime := archive.Time[idx]
	hour, _ := HourOf(sourceTime)

	return models.DayRecord{
		Date:         date,
		SourceTime:   sourceTime,
		HourOfDay:    hour,
		TemperatureC: archive.TemperatureAt(idx),
		HumidityPct:  archive.HumidityAt(idx),
		WindSpeedMs:  archive.WindSpeedAt(idx),
		WeatherCode:  archive.WeatherCodeAt(idx),
	}
}
