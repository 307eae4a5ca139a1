package preferences

import (
	"context"
	"strings"
	"sync"

	"github.com/pkg/errors"

	"weather-backcast/internal/models"
	"weather-backcast/internal/repositories"
	"weather-backcast/internal/services/units"
	"weather-backcast/pkg/logger"
)

const (
	UnitKindTemperature = "temp"
	UnitKindSpeed       = "speed"
)

var (
	ErrUnknownUnitKind = errors.New("unit kind must be temp or speed")
	ErrEmptyCity       = errors.New("city cannot be empty")
)

// PreferencesService applies dashboard setting changes on top of a repository.
type PreferencesService struct {
	repo repositories.PreferencesRepository
	l    *logger.Logger

	// serializes read-modify-write cycles
	mu sync.Mutex
}

func NewPreferencesService(repo repositories.PreferencesRepository, l *logger.Logger) *PreferencesService {
	return &PreferencesService{
		repo: repo,
		l:    l,
	}
}

func (s *PreferencesService) Get(ctx context.Context, userID string) (models.Preferences, error) {
	prefs, err := s.repo.Load(ctx, userID)
	if err != nil {
		return models.Preferences{}, errors.Wrap(err, "load preferences")
	}
	return prefs, nil
}

// ToggleFavorite adds city to the favorites, or removes it when already there.
// The order of the remaining favorites is preserved.
func (s *PreferencesService) ToggleFavorite(ctx context.Context, userID, city string) (models.Preferences, error) {
	city = strings.TrimSpace(city)
	if city == "" {
		return models.Preferences{}, ErrEmptyCity
	}

	return s.update(ctx, userID, func(p *models.Preferences) error {
		if p.IsFavorite(city) {
			kept := make([]string, 0, len(p.Favorites))
			for _, fav := range p.Favorites {
				if fav != city {
					kept = append(kept, fav)
				}
			}
			p.Favorites = kept
			return nil
		}

		p.Favorites = append(p.Favorites, city)
		return nil
	})
}

// ToggleUnits flips the temperature (C/F) or speed (m/s, km/h) unit.
func (s *PreferencesService) ToggleUnits(ctx context.Context, userID, kind string) (models.Preferences, error) {
	if kind != UnitKindTemperature && kind != UnitKindSpeed {
		return models.Preferences{}, ErrUnknownUnitKind
	}

	return s.update(ctx, userID, func(p *models.Preferences) error {
		if kind == UnitKindTemperature {
			p.Units.Temperature = units.ToggleTemperature(p.Units.Temperature)
		} else {
			p.Units.Speed = units.ToggleSpeed(p.Units.Speed)
		}
		return nil
	})
}

func (s *PreferencesService) SetDarkMode(ctx context.Context, userID string, enabled bool) (models.Preferences, error) {
	return s.update(ctx, userID, func(p *models.Preferences) error {
		p.DarkMode = enabled
		return nil
	})
}

// SetUnits replaces both display units. Unknown unit names are rejected.
func (s *PreferencesService) SetUnits(ctx context.Context, userID, temperature, speed string) (models.Preferences, error) {
	tempUnit, err := units.ParseTemperatureUnit(temperature)
	if err != nil {
		return models.Preferences{}, err
	}
	speedUnit, err := units.ParseSpeedUnit(speed)
	if err != nil {
		return models.Preferences{}, err
	}

	return s.update(ctx, userID, func(p *models.Preferences) error {
		p.Units = models.Units{Temperature: tempUnit, Speed: speedUnit}
		return nil
	})
}

func (s *PreferencesService) update(ctx context.Context, userID string, apply func(*models.Preferences) error) (models.Preferences, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefs, err := s.repo.Load(ctx, userID)
	if err != nil {
		return models.Preferences{}, errors.Wrap(err, "load preferences")
	}

	if err := apply(&prefs); err != nil {
		return models.Preferences{}, err
	}

	if err := s.repo.Save(ctx, userID, prefs); err != nil {
		s.l.Error(err, map[string]any{"userID": userID})
		return models.Preferences{}, errors.Wrap(err, "save preferences")
	}

	s.l.Debug("preferences updated", map[string]any{
		"userID":    userID,
		"units":     prefs.Units,
		"favorites": len(prefs.Favorites),
		"darkMode":  prefs.DarkMode,
	})

	return prefs.Clone(), nil
}
