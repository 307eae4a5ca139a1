package backcast

import (
	"errors"
	"fmt"

	"weather-backcast/internal/repositories"
)

var (
	// ErrNoCoordinates means there is nothing to load yet. Callers treat it
	// as a quiet idle state rather than a failure.
	ErrNoCoordinates = errors.New("coordinates are missing")

	// ErrDataUnavailable means the archive answered but had no hourly data.
	ErrDataUnavailable = errors.New("no historical hourly data available for this location/date range")
)

// UnexpectedError wraps any failure that is neither a transport error nor a
// data gap.
type UnexpectedError struct {
	Err error
}

func (e *UnexpectedError) Error() string {
	return fmt.Sprintf("unexpected backcast failure: %v", e.Err)
}

func (e *UnexpectedError) Unwrap() error {
	return e.Err
}

// Kind classifies a reducer error for display and metrics.
type Kind string

const (
	KindNone            Kind = ""
	KindInput           Kind = "input"
	KindTransport       Kind = "transport"
	KindDataUnavailable Kind = "data_unavailable"
	KindUnexpected      Kind = "unexpected"
)

func KindOf(err error) Kind {
	var transportErr *repositories.TransportError

	switch {
	case err == nil:
		return KindNone
	case errors.Is(err, ErrNoCoordinates):
		return KindInput
	case errors.As(err, &transportErr):
		return KindTransport
	case errors.Is(err, ErrDataUnavailable):
		return KindDataUnavailable
	default:
		return KindUnexpected
	}
}
