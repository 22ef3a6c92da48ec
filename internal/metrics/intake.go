// Package metrics defines the Prometheus collectors for the intake pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Step names used as the "step" label.
const (
	StepUpload  = "upload"
	StepExtract = "extract"
	StepAnalyze = "analyze"
	StepSave    = "save"
)

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Intake counts pipeline steps and terminal document states.
// A nil *Intake is valid and records nothing.
type Intake struct {
	steps        *prometheus.CounterVec
	documents    *prometheus.CounterVec
	stepDuration *prometheus.HistogramVec
}

// NewIntake creates the collectors and registers them with reg.
func NewIntake(reg prometheus.Registerer) (*Intake, error) {
	m := &Intake{
		steps: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lease_intake_steps_total",
				Help: "Intake pipeline steps by step and outcome.",
			},
			[]string{"step", "outcome"},
		),
		documents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "lease_intake_documents_total",
				Help: "Documents that reached a terminal pipeline status.",
			},
			[]string{"status"},
		),
		stepDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "lease_intake_step_duration_seconds",
				Help:    "Duration of intake pipeline steps.",
				Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30, 60},
			},
			[]string{"step"},
		),
	}
	for _, c := range []prometheus.Collector{m.steps, m.documents, m.stepDuration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// Step records one step attempt.
func (m *Intake) Step(step string, err error, seconds float64) {
	if m == nil {
		return
	}
	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	}
	m.steps.WithLabelValues(step, outcome).Inc()
	m.stepDuration.WithLabelValues(step).Observe(seconds)
}

// Document records a document reaching a terminal status.
func (m *Intake) Document(status string) {
	if m == nil {
		return
	}
	m.documents.WithLabelValues(status).Inc()
}
