package metrics

import "github.com/prometheus/client_golang/prometheus"

const (
	ProvisionOutcomeSuccess      = "success"
	ProvisionOutcomeNotFound     = "user_not_found"
	ProvisionOutcomeLookupFailed = "lookup_failed"
	ProvisionOutcomeInsertFailed = "insert_failed"
)

// ProvisioningMetrics counts admin provisioning attempts by outcome.
type ProvisioningMetrics struct {
	attempts *prometheus.CounterVec
}

// NewProvisioningMetrics registers the provisioning counter on the provided registerer.
func NewProvisioningMetrics(reg prometheus.Registerer) *ProvisioningMetrics {
	if reg == nil {
		return &ProvisioningMetrics{}
	}
	attempts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "admin_provision_total",
		Help: "Admin provisioning attempts by outcome.",
	}, []string{"outcome"})
	reg.MustRegister(attempts)
	return &ProvisioningMetrics{attempts: attempts}
}

func (m *ProvisioningMetrics) Observe(outcome string) {
	if m == nil || m.attempts == nil {
		return
	}
	m.attempts.WithLabelValues(normalizeLabel(outcome)).Inc()
}
