package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the workflow-level Prometheus metrics.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	PatientsProcessed  prometheus.Counter
	IterationFailures  prometheus.Counter
	DoctorResolutions  *prometheus.CounterVec
	ResolutionAttempts prometheus.Histogram
}

// New creates and registers the workflow metrics with reg; nil uses the
// default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		PatientsProcessed: factory.NewCounter(prometheus.CounterOpts{
			Name: "covrecord_patients_processed_total",
			Help: "Patients whose intake form was filled and printed",
		}),
		IterationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "covrecord_iteration_failures_total",
			Help: "Patient iterations aborted by an error",
		}),
		DoctorResolutions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "covrecord_doctor_resolutions_total",
			Help: "Resolved doctors by source (registry, operator, none)",
		}, []string{"source"}),
		ResolutionAttempts: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "covrecord_doctor_resolution_attempts",
			Help:    "Registry searches needed to resolve one doctor",
			Buckets: []float64{0, 1, 2, 3, 4, 5, 8},
		}),
	}
}

// IncrementPatientsProcessed increments the processed patients counter by 1
func (m *Metrics) IncrementPatientsProcessed() {
	if m == nil {
		return
	}
	m.PatientsProcessed.Inc()
}

func (m *Metrics) IncrementIterationFailures() {
	if m == nil {
		return
	}
	m.IterationFailures.Inc()
}

// ObserveResolution records how a doctor was resolved and after how many
// registry searches.
func (m *Metrics) ObserveResolution(source string, attempts int) {
	if m == nil {
		return
	}
	if source == "" {
		source = "none"
	}
	m.DoctorResolutions.WithLabelValues(source).Inc()
	m.ResolutionAttempts.Observe(float64(attempts))
}
