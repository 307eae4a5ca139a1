package backcast_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"weather-backcast/internal/models"
	"weather-backcast/internal/repositories"
	"weather-backcast/internal/services/backcast"
	"weather-backcast/pkg/logger"
)

func TestReducer_Reduce_ProviderOutageStaysTransport(t *testing.T) {
	mockServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("down"))
	}))
	defer mockServer.Close()

	archive := repositories.NewOpenMeteoArchiveRepository(logger.Nop(), http.DefaultClient, repositories.OpenMeteoArchiveOptions{
		BaseURL: mockServer.URL,
		Breaker: repositories.BreakerSettings{Timeout: time.Minute, ConsecutiveFailures: 3},
	})
	reducer := newReducer(archive)

	for i := 0; i < 5; i++ {
		records, err := reducer.Reduce(context.Background(), models.NewCoordinates(52.52, 13.41), testNow)

		assert.Empty(t, records)
		assert.Equal(t, backcast.KindTransport, backcast.KindOf(err), "call %d: %v", i+1, err)

		var transportErr *repositories.TransportError
		require.True(t, errors.As(err, &transportErr))
		if i < 3 {
			assert.Equal(t, http.StatusInternalServerError, transportErr.StatusCode)
		} else {
			assert.Equal(t, http.StatusServiceUnavailable, transportErr.StatusCode)
			assert.ErrorIs(t, err, repositories.ErrCircuitOpen)
		}
	}
}
