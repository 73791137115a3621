package metrics

import "github.com/prometheus/client_golang/prometheus"

// ReconciliationMetrics counts backfill outcomes per settlement origin.
type ReconciliationMetrics struct {
	created *prometheus.CounterVec
	skipped *prometheus.CounterVec
	errors  *prometheus.CounterVec
}

// NewReconciliationMetrics registers the reconciliation counters on the
// provided registerer.
func NewReconciliationMetrics(reg prometheus.Registerer) *ReconciliationMetrics {
	if reg == nil {
		return &ReconciliationMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciliation_installments_created",
		Help: "Installments created by the reconciliation backfill.",
	}, []string{"origem"})
	skipped := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciliation_candidates_skipped",
		Help: "Settlement candidates skipped because installments already exist.",
	}, []string{"origem"})
	errors := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "reconciliation_row_errors",
		Help: "Per-candidate failures isolated during reconciliation.",
	}, []string{"origem"})
	reg.MustRegister(created, skipped, errors)
	return &ReconciliationMetrics{created: created, skipped: skipped, errors: errors}
}

// AddCreated adds to the created counter for an origin.
func (r *ReconciliationMetrics) AddCreated(origin string, n int) {
	if r == nil || r.created == nil || n <= 0 {
		return
	}
	r.created.WithLabelValues(normalizeLabel(origin)).Add(float64(n))
}

// AddSkipped adds to the skipped counter for an origin.
func (r *ReconciliationMetrics) AddSkipped(origin string, n int) {
	if r == nil || r.skipped == nil || n <= 0 {
		return
	}
	r.skipped.WithLabelValues(normalizeLabel(origin)).Add(float64(n))
}

// AddErrors adds to the per-row error counter for an origin.
func (r *ReconciliationMetrics) AddErrors(origin string, n int) {
	if r == nil || r.errors == nil || n <= 0 {
		return
	}
	r.errors.WithLabelValues(normalizeLabel(origin)).Add(float64(n))
}
