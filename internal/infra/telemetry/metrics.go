package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RouterMetrics instruments the correlation router.
type RouterMetrics struct {
	authentications *prometheus.CounterVec
	creations       *prometheus.CounterVec
	confirmations   prometheus.Counter
	dropped         *prometheus.CounterVec
}

// NewRouterMetrics registers the router collectors with the default
// registerer.
func NewRouterMetrics() *RouterMetrics {
	return &RouterMetrics{
		authentications: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auth",
			Name:      "authentications_total",
			Help:      "Authentication requests partitioned by token status.",
		}, []string{"status"}),
		creations: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auth",
			Name:      "account_creations_total",
			Help:      "Account creation requests partitioned by outcome.",
		}, []string{"outcome"}),
		confirmations: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: "auth",
			Name:      "account_confirmations_total",
			Help:      "Account confirmation requests processed.",
		}),
		dropped: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: "auth",
			Name:      "dropped_messages_total",
			Help:      "Inbound messages dropped without a response, partitioned by queue and reason.",
		}, []string{"topic", "reason"}),
	}
}

// ObserveAuthentication counts one authentication outcome.
func (m *RouterMetrics) ObserveAuthentication(status string) {
	m.authentications.WithLabelValues(status).Inc()
}

// ObserveAccountCreation counts one account creation outcome.
func (m *RouterMetrics) ObserveAccountCreation(outcome string) {
	m.creations.WithLabelValues(outcome).Inc()
}

// ObserveConfirmation counts one processed confirmation request.
func (m *RouterMetrics) ObserveConfirmation() {
	m.confirmations.Inc()
}

// ObserveDropped counts one dropped inbound message.
func (m *RouterMetrics) ObserveDropped(topic, reason string) {
	m.dropped.WithLabelValues(topic, reason).Inc()
}
