package repositories

import (
	"fmt"
	"sync"
	"time"

	"github.com/ringsaturn/tzf"
)

// TimezoneResolver finds the local time zone of a coordinate pair.
type TimezoneResolver interface {
	Location(lat, lon float64) (*time.Location, error)
}

type tzfResolver struct {
	finder tzf.F
	mu     sync.RWMutex
}

var (
	tzfInstance *tzfResolver
	tzfErr      error
	tzfOnce     sync.Once
)

// NewTimezoneResolver returns the process-wide tzf resolver. The finder
// keeps its polygon data in memory, so it is built once.
func NewTimezoneResolver() (TimezoneResolver, error) {
	tzfOnce.Do(func() {
		finder, err := tzf.NewDefaultFinder()
		if err != nil {
			tzfErr = fmt.Errorf("failed to initialize timezone finder: %w", err)
			return
		}
		tzfInstance = &tzfResolver{finder: finder}
	})
	if tzfErr != nil {
		return nil, tzfErr
	}
	return tzfInstance, nil
}

func (r *tzfResolver) Location(lat, lon float64) (*time.Location, error) {
	r.mu.RLock()
	name := r.finder.GetTimezoneName(lon, lat)
	r.mu.RUnlock()

	if name == "" {
		return nil, fmt.Errorf("could not determine timezone for coordinates lat=%f, lon=%f", lat, lon)
	}

	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("failed to load timezone %s: %w", name, err)
	}
	return loc, nil
}
