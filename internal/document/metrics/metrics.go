package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the document module.
// Tracks issuance outcomes, reference collisions, and pipeline durations.
type Metrics struct {
	DocumentsIssued      prometheus.Counter
	IssuanceFailures     *prometheus.CounterVec
	ReferenceCollisions  prometheus.Counter
	VerificationChecks   *prometheus.CounterVec
	IssueDuration        prometheus.Histogram
	VerifyDuration       prometheus.Histogram
}

// New creates a Metrics instance with all document module metrics registered.
func New() *Metrics {
	return &Metrics{
		DocumentsIssued: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attesta_documents_issued_total",
			Help: "Total number of documents issued",
		}),
		IssuanceFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attesta_issuance_failures_total",
			Help: "Issuance pipeline failures by stage (render, persist, validate)",
		}, []string{"stage"}),
		ReferenceCollisions: promauto.NewCounter(prometheus.CounterOpts{
			Name: "attesta_reference_collisions_total",
			Help: "Duplicate reference numbers rejected by the store and retried",
		}),
		VerificationChecks: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "attesta_verification_checks_total",
			Help: "Verification checks by outcome (ok, code_mismatch, content_mismatch)",
		}, []string{"outcome"}),
		IssueDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attesta_issue_duration_seconds",
			Help:    "Duration of the full issuance pipeline",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
		}),
		VerifyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "attesta_verify_duration_seconds",
			Help:    "Duration of verification checks",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),
	}
}

// IncrementIssued records a successful issuance.
func (m *Metrics) IncrementIssued() {
	if m == nil {
		return
	}
	m.DocumentsIssued.Inc()
}

// IncrementIssuanceFailure records a failed issuance attempt at a pipeline stage.
func (m *Metrics) IncrementIssuanceFailure(stage string) {
	if m == nil {
		return
	}
	m.IssuanceFailures.WithLabelValues(stage).Inc()
}

// IncrementReferenceCollision records a store-rejected duplicate reference.
func (m *Metrics) IncrementReferenceCollision() {
	if m == nil {
		return
	}
	m.ReferenceCollisions.Inc()
}

// IncrementVerification records a verification check outcome.
func (m *Metrics) IncrementVerification(outcome string) {
	if m == nil {
		return
	}
	m.VerificationChecks.WithLabelValues(outcome).Inc()
}

// ObserveIssue records the duration of an issuance pipeline run.
// Call with time.Now() captured at the start of the operation.
func (m *Metrics) ObserveIssue(start time.Time) {
	if m == nil {
		return
	}
	m.IssueDuration.Observe(time.Since(start).Seconds())
}

// ObserveVerify records the duration of a verification check.
func (m *Metrics) ObserveVerify(start time.Time) {
	if m == nil {
		return
	}
	m.VerifyDuration.Observe(time.Since(start).Seconds())
}
