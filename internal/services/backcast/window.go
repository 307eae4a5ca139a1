package backcast

import (
	"time"

	"weather-backcast/internal/models"
)

const dateLayout = "2006-01-02"

// NewDateWindow returns the five calendar dates before now, newest first.
// Days are subtracted on now's own calendar, so DST shifts never skip or
// repeat a date.
func NewDateWindow(now time.Time) models.DateWindow {
	var dates [models.DateWindowSize]string
	for i := 1; i <= models.DateWindowSize; i++ {
		dates[i-1] = now.AddDate(0, 0, -i).Format(dateLayout)
	}
	return models.NewDateWindow(dates)
}
