package observe

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_RecordLoad(t *testing.T) {
	m := NewMetrics()

	m.RecordLoad(OutcomeSuccess, 120*time.Millisecond, 4)
	m.RecordLoad(OutcomeSuccess, 80*time.Millisecond, 5)
	m.RecordLoad(OutcomeTransport, 10*time.Millisecond, 0)
	m.RecordStaleLoad()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.loadsTotal.WithLabelValues(OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.loadsTotal.WithLabelValues(OutcomeTransport)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.staleLoadsTotal))
}

func TestMetrics_NilIsSafe(t *testing.T) {
	var m *Metrics

	m.RecordLoad(OutcomeSuccess, time.Second, 5)
	m.RecordStaleLoad()
}
