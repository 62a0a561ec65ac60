package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор prometheus-коллекторов сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	SessionTransitions *prometheus.CounterVec
	SDKLoads           *prometheus.CounterVec
	PaymentOutcomes    *prometheus.CounterVec
}

// New регистрирует метрики в глобальном регистре prometheus
func New(serviceName string) *Metrics {
	return NewWithRegistry(prometheus.DefaultRegisterer, serviceName)
}

// NewWithRegistry регистрирует метрики в переданном регистре
func NewWithRegistry(reg prometheus.Registerer, serviceName string) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),

		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		SessionTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "booking_session_transitions_total",
			Help:        "Booking session transitions by source and target",
			ConstLabels: constLabels,
		}, []string{"from", "to"}),

		SDKLoads: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_sdk_loads_total",
			Help:        "Payment SDK load attempts by provider and result",
			ConstLabels: constLabels,
		}, []string{"provider", "result"}),

		PaymentOutcomes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "payment_outcomes_total",
			Help:        "Payment approvals by provider and outcome",
			ConstLabels: constLabels,
		}, []string{"provider", "outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.SessionTransitions,
		m.SDKLoads,
		m.PaymentOutcomes,
	)

	return m
}

// ObserveTransition учитывает переход сессии; безопасно для nil
func (m *Metrics) ObserveTransition(from, to string) {
	if m == nil {
		return
	}
	m.SessionTransitions.WithLabelValues(from, to).Inc()
}

// ObserveSDKLoad учитывает результат загрузки SDK; безопасно для nil
func (m *Metrics) ObserveSDKLoad(provider, result string) {
	if m == nil {
		return
	}
	m.SDKLoads.WithLabelValues(provider, result).Inc()
}

// ObservePaymentOutcome учитывает исход оплаты; безопасно для nil
func (m *Metrics) ObservePaymentOutcome(provider, outcome string) {
	if m == nil {
		return
	}
	m.PaymentOutcomes.WithLabelValues(provider, outcome).Inc()
}
