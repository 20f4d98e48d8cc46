package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveResolution(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.ObserveResolution("registry", 1)
	m.ObserveResolution("", 0)
	m.IncrementPatientsProcessed()
	m.IncrementIterationFailures()

	assert.Equal(t, 1.0, testutil.ToFloat64(m.DoctorResolutions.WithLabelValues("registry")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.DoctorResolutions.WithLabelValues("none")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PatientsProcessed))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.IterationFailures))
}

func TestNilMetrics(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveResolution("operator", 3)
		m.IncrementPatientsProcessed()
		m.IncrementIterationFailures()
	})
}
