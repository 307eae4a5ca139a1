package backcast

import (
	"strconv"
	"strings"
)

// NotFound is returned by SelectIndex when a date has no hourly sample.
const NotFound = -1

const noonHour = 12

type candidate struct {
	index int
	hour  int
}

// SelectIndex picks the hourly sample that best stands in for date: the
// exact "<date>T12:00" entry when present, otherwise the same-date entry
// whose hour is nearest to noon, ties going to the earliest in times.
func SelectIndex(times []string, date string) int {
	noon := date + "T12:00"
	for i, ts := range times {
		if ts == noon {
			return i
		}
	}

	var candidates []candidate
	for i, ts := range times {
		d, hour, ok := splitTimestamp(ts)
		if !ok || d != date {
			continue
		}
		candidates = append(candidates, candidate{index: i, hour: hour})
	}

	if len(candidates) == 0 {
		return NotFound
	}

	best := candidates[0]
	bestDiff := distanceToNoon(best.hour)
	for _, c := range candidates[1:] {
		if diff := distanceToNoon(c.hour); diff < bestDiff {
			best = c
			bestDiff = diff
		}
	}

	return best.index
}

// splitTimestamp splits "YYYY-MM-DDTHH:MM" into its date and hour.
func splitTimestamp(ts string) (date string, hour int, ok bool) {
	datePart, timePart, found := strings.Cut(ts, "T")
	if !found || len(timePart) < 2 {
		return "", 0, false
	}

	hour, err := strconv.Atoi(timePart[:2])
	if err != nil || hour < 0 || hour > 23 {
		return "", 0, false
	}

	return datePart, hour, true
}

// HourOf returns the hour of a "YYYY-MM-DDTHH:MM" timestamp.
func HourOf(ts string) (int, bool) {
	_, hour, ok := splitTimestamp(ts)
	return hour, ok
}

func distanceToNoon(hour int) int {
	if hour < noonHour {
		return noonHour - hour
	}
	return hour - noonHour
}
