package repositories

import (
	"context"
	"errors"
	"strings"
	"sync"

	"weather-backcast/internal/models"
)

// ErrEmptyUserID is returned for a blank user id.
var ErrEmptyUserID = errors.New("user id cannot be empty")

// PreferencesRepository loads and saves per-user dashboard preferences.
// Loading an unknown user yields the defaults.
type PreferencesRepository interface {
	Load(ctx context.Context, userID string) (models.Preferences, error)
	Save(ctx context.Context, userID string, prefs models.Preferences) error
}

// MemoryPreferencesRepository keeps preferences for the life of the process.
type MemoryPreferencesRepository struct {
	mu   sync.RWMutex
	data map[string]models.Preferences
}

func NewMemoryPreferencesRepository() *MemoryPreferencesRepository {
	return &MemoryPreferencesRepository{
		data: make(map[string]models.Preferences),
	}
}

func (m *MemoryPreferencesRepository) Load(_ context.Context, userID string) (models.Preferences, error) {
	if strings.TrimSpace(userID) == "" {
		return models.Preferences{}, ErrEmptyUserID
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	prefs, ok := m.data[userID]
	if !ok {
		return models.DefaultPreferences(), nil
	}
	return prefs.Clone(), nil
}

func (m *MemoryPreferencesRepository) Save(_ context.Context, userID string, prefs models.Preferences) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.data[userID] = prefs.Clone()
	return nil
}
