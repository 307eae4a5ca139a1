package backcast

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"weather-backcast/internal/models"
	"weather-backcast/internal/repositories"
	"weather-backcast/pkg/logger"
	"weather-backcast/pkg/observe"
)

// Service is the entry point used by the HTTP layer: it picks "now" for a
// location, runs the reducer, records metrics and owns the per-user views.
type Service struct {
	reducer *Reducer
	zones   repositories.TimezoneResolver
	clock   func() time.Time
	metrics *observe.Metrics
	views   *Views
	l       *logger.Logger
}

type Option func(*Service)

// WithTimezoneResolver makes the look-back window follow the location's
// own calendar instead of the server's.
func WithTimezoneResolver(zones repositories.TimezoneResolver) Option {
	return func(s *Service) {
		s.zones = zones
	}
}

func WithClock(clock func() time.Time) Option {
	return func(s *Service) {
		s.clock = clock
	}
}

func WithMetrics(m *observe.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func NewService(archive repositories.ArchiveRepository, l *logger.Logger, opts ...Option) *Service {
	s := &Service{
		reducer: NewReducer(archive, l),
		clock:   time.Now,
		l:       l,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.views = NewViews(func() *View {
		v := NewView(s.Backcast, l)
		v.clock = s.clock
		v.onStale = s.metrics.RecordStaleLoad
		return v
	})

	return s
}

// Now is the query moment for coord, in the location's zone when known.
func (s *Service) Now(coord *models.Coordinates) time.Time {
	now := s.clock()
	if s.zones == nil || !coord.Valid() {
		return now
	}

	loc, err := s.zones.Location(*coord.Lat, *coord.Lon)
	if err != nil {
		s.l.Warning("falling back to server time zone", map[string]any{
			"coordinates": coord.String(),
			"err":         errors.Wrap(err, "resolve timezone").Error(),
		})
		return now
	}
	return now.In(loc)
}

// Backcast reduces the five days before now for coord.
func (s *Service) Backcast(ctx context.Context, coord *models.Coordinates) ([]models.DayRecord, error) {
	if !coord.Valid() {
		return nil, ErrNoCoordinates
	}

	started := time.Now()
	records, err := s.reducer.Reduce(ctx, coord, s.Now(coord))
	elapsed := time.Since(started)

	if err != nil {
		// superseded by a newer load; the view counts it as stale
		if errors.Is(err, context.Canceled) {
			s.l.Debug("backcast load cancelled", map[string]any{
				"coordinates": coord.String(),
				"elapsed":     elapsed.String(),
			})
			return nil, err
		}

		kind := KindOf(err)
		s.metrics.RecordLoad(outcomeOf(kind), elapsed, 0)

		fields := map[string]any{
			"coordinates": coord.String(),
			"kind":        string(kind),
		}
		if kind == KindDataUnavailable {
			s.l.Warning("no historical data for location", fields)
		} else {
			s.l.Error(err, fields)
		}
		return nil, err
	}

	s.metrics.RecordLoad(observe.OutcomeSuccess, elapsed, len(records))
	s.l.Info("backcast reduced", map[string]any{
		"coordinates": coord.String(),
		"days":        len(records),
		"elapsed":     elapsed.String(),
	})

	return records, nil
}

// LoadView starts a load in the user's view and returns the settled state.
func (s *Service) LoadView(ctx context.Context, userID string, coord *models.Coordinates) State {
	return s.views.Get(userID).Load(ctx, coord)
}

func (s *Service) View(userID string) State {
	return s.views.Get(userID).Snapshot()
}

func outcomeOf(kind Kind) string {
	switch kind {
	case KindTransport:
		return observe.OutcomeTransport
	case KindDataUnavailable:
		return observe.OutcomeDataUnavailable
	default:
		return observe.OutcomeUnexpected
	}
}
