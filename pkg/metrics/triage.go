package metrics

import "github.com/prometheus/client_golang/prometheus"

// TriageMetrics counts symptom analysis outcomes.
type TriageMetrics struct {
	analyses *prometheus.CounterVec
}

// NewTriageMetrics registers the triage metrics on the provided registerer.
func NewTriageMetrics(reg prometheus.Registerer) *TriageMetrics {
	if reg == nil {
		return &TriageMetrics{}
	}
	analyses := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "symptom_analyses_total",
		Help: "Symptom analyses grouped by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(analyses)
	return &TriageMetrics{analyses: analyses}
}

// IncUrgent counts an analysis that escalated to urgent consultation.
func (t *TriageMetrics) IncUrgent() {
	t.inc("urgent")
}

// IncRecommended counts an analysis that produced medicine recommendations.
func (t *TriageMetrics) IncRecommended() {
	t.inc("recommended")
}

func (t *TriageMetrics) inc(outcome string) {
	if t == nil || t.analyses == nil {
		return
	}
	t.analyses.WithLabelValues(outcome).Inc()
}
