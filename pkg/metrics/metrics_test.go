package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetrics_Observe(t *testing.T) {
	m := NewWithRegistry(prometheus.NewRegistry(), "tour-booking")

	m.ObserveTransition("details", "payment")
	m.ObserveTransition("details", "payment")
	m.ObserveSDKLoad("paypal", "timeout")
	m.ObservePaymentOutcome("stripe", "completed")

	assert.Equal(t, 2.0, testutil.ToFloat64(m.SessionTransitions.WithLabelValues("details", "payment")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.SDKLoads.WithLabelValues("paypal", "timeout")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.PaymentOutcomes.WithLabelValues("stripe", "completed")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics

	assert.NotPanics(t, func() {
		m.ObserveTransition("payment", "details")
		m.ObserveSDKLoad("paypal", "ok")
		m.ObservePaymentOutcome("paypal", "failed")
	})
}
