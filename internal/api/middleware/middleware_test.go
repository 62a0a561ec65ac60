package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TourBookingService/pkg/metrics"
)

func okHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusTeapot)
}

func TestSupportAuth(t *testing.T) {
	tests := []struct {
		name       string
		configured string
		header     string
		wantStatus int
	}{
		{name: "valid token", configured: "secret", header: "secret", wantStatus: http.StatusTeapot},
		{name: "wrong token", configured: "secret", header: "nope", wantStatus: http.StatusUnauthorized},
		{name: "missing header", configured: "secret", header: "", wantStatus: http.StatusUnauthorized},
		{name: "not configured", configured: "", header: "", wantStatus: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := SupportAuth(tt.configured)(http.HandlerFunc(okHandler))

			req := httptest.NewRequest(http.MethodGet, "/api/v1/reconciliations", nil)
			if tt.header != "" {
				req.Header.Set(SupportTokenHeader, tt.header)
			}
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}

func TestMetricsMiddleware(t *testing.T) {
	m := metrics.NewWithRegistry(prometheus.NewRegistry(), "test")

	r := mux.NewRouter()
	r.Use(MetricsMiddleware(m))
	r.HandleFunc("/api/v1/sessions/{sessionId}", okHandler).Methods(http.MethodGet)

	for _, id := range []string{"tab-1", "tab-2"} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/v1/sessions/"+id, nil))
		assert.Equal(t, http.StatusTeapot, rr.Code)
	}

	// метка маршрута по шаблону, а не по конкретному id
	assert.Equal(t, 2.0, testutil.ToFloat64(
		m.HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/api/v1/sessions/{sessionId}", "418"),
	))
}
