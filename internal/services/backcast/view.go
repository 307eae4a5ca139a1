package backcast

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"

	"weather-backcast/internal/models"
	"weather-backcast/internal/repositories"
	"weather-backcast/pkg/logger"
)

type Status string

const (
	StatusIdle    Status = "idle"
	StatusLoading Status = "loading"
	StatusSuccess Status = "success"
	StatusError   Status = "error"
)

// State is a point-in-time copy of a view.
type State struct {
	Status          Status              `json:"status" example:"success"`
	Coordinates     *models.Coordinates `json:"coordinates,omitempty"`
	Records         []models.DayRecord  `json:"records"`
	Error           string              `json:"error,omitempty"`
	ErrorKind       Kind                `json:"error_kind,omitempty"`
	TransportStatus int                 `json:"transport_status,omitempty"`
	Generation      uint64              `json:"generation"`
	LoadID          string              `json:"load_id,omitempty"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// LoadFunc produces the records for one load.
type LoadFunc func(ctx context.Context, coord *models.Coordinates) ([]models.DayRecord, error)

// View follows Idle -> Loading -> Success|Error for one displayed city.
// Every load gets a new generation; a load that finishes after a newer one
// started is dropped instead of overwriting the newer state, and its
// context is cancelled as soon as it is superseded.
type View struct {
	mu      sync.Mutex
	load    LoadFunc
	state   State
	cancel  context.CancelFunc
	clock   func() time.Time
	onStale func()
	l       *logger.Logger
}

func NewView(load LoadFunc, l *logger.Logger) *View {
	return &View{
		load:  load,
		state: State{Status: StatusIdle, Records: []models.DayRecord{}},
		clock: time.Now,
		l:     l,
	}
}

// Snapshot returns a copy of the current state.
func (v *View) Snapshot() State {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.snapshotLocked()
}

func (v *View) snapshotLocked() State {
	s := v.state
	s.Records = make([]models.DayRecord, len(v.state.Records))
	copy(s.Records, v.state.Records)
	if v.state.Coordinates != nil {
		s.Coordinates = copyCoordinates(v.state.Coordinates)
	}
	return s
}

// Load runs a load for coord and returns the state after it settles. With
// missing coordinates nothing happens and the current state is returned.
func (v *View) Load(ctx context.Context, coord *models.Coordinates) State {
	if !coord.Valid() {
		return v.Snapshot()
	}

	v.mu.Lock()
	if v.cancel != nil {
		v.cancel()
	}
	loadCtx, cancel := context.WithCancel(ctx)
	v.cancel = cancel

	generation := v.state.Generation + 1
	loadID := uuid.NewString()
	v.state = State{
		Status:      StatusLoading,
		Coordinates: copyCoordinates(coord),
		Records:     []models.DayRecord{},
		Generation:  generation,
		LoadID:      loadID,
		UpdatedAt:   v.clock(),
	}
	v.mu.Unlock()

	v.l.Debug("backcast load started", map[string]any{
		"loadID":      loadID,
		"generation":  generation,
		"coordinates": coord.String(),
	})

	records, err := v.load(loadCtx, coord)

	v.mu.Lock()
	defer v.mu.Unlock()

	if v.state.Generation != generation {
		cancel()
		v.l.Warning("stale backcast load dropped", map[string]any{
			"loadID":     loadID,
			"generation": generation,
			"current":    v.state.Generation,
		})
		if v.onStale != nil {
			v.onStale()
		}
		return v.snapshotLocked()
	}

	cancel()
	v.cancel = nil
	v.state.UpdatedAt = v.clock()

	if err != nil {
		v.state.Status = StatusError
		v.state.Records = []models.DayRecord{}
		v.state.Error = err.Error()
		v.state.ErrorKind = KindOf(err)

		var transportErr *repositories.TransportError
		if errors.As(err, &transportErr) {
			v.state.TransportStatus = transportErr.StatusCode
		}
		return v.snapshotLocked()
	}

	v.state.Status = StatusSuccess
	v.state.Records = records
	return v.snapshotLocked()
}

func copyCoordinates(c *models.Coordinates) *models.Coordinates {
	out := &models.Coordinates{}
	if c.Lat != nil {
		lat := *c.Lat
		out.Lat = &lat
	}
	if c.Lon != nil {
		lon := *c.Lon
		out.Lon = &lon
	}
	return out
}

// Views keeps one View per user.
type Views struct {
	mu      sync.Mutex
	views   map[string]*View
	newView func() *View
}

func NewViews(newView func() *View) *Views {
	return &Views{
		views:   make(map[string]*View),
		newView: newView,
	}
}

// Get returns the user's view, creating an idle one on first use.
func (vs *Views) Get(userID string) *View {
	vs.mu.Lock()
	defer vs.mu.Unlock()

	v, ok := vs.views[userID]
	if !ok {
		v = vs.newView()
		vs.views[userID] = v
	}
	return v
}
