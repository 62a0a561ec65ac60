package render_payment

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	renderPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/render_payment"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

type stubUseCase struct {
	resp *renderPayment.Response
	err  error
	got  *renderPayment.Request
}

func (s *stubUseCase) Execute(ctx context.Context, req *renderPayment.Request) (*renderPayment.Response, error) {
	s.got = req
	return s.resp, s.err
}

func newRouter(h *Handler) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/sessions/{sessionId}/payment", h.Handle).Methods(http.MethodPost)
	r.HandleFunc("/api/v1/sessions/{sessionId}/payment/retry", h.HandleRetry).Methods(http.MethodPost)
	return r
}

func TestHandler_Render(t *testing.T) {
	uc := &stubUseCase{resp: &renderPayment.Response{
		SessionID: "tab-1",
		AttemptID: "a-1",
		Widget: domain.Widget{
			Provider:  "paypal",
			Method:    domain.PaymentMethodPayPal,
			MountID:   "payment-widget",
			ScriptURL: "https://www.paypal.com/sdk/js?client-id=x",
			Reference: "ORDER-1",
			Amount:    200,
			Currency:  "EUR",
			AttemptID: "a-1",
		},
		Quote: domain.Quote{Subtotal: 200, Total: 200, Currency: "EUR"},
	}}

	rr := httptest.NewRecorder()
	newRouter(NewHandler(uc, logger.NewNop())).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/api/v1/sessions/tab-1/payment", strings.NewReader(`{"method":"paypal"}`)))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp RenderPaymentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ORDER-1", resp.Widget.Reference)
	assert.Equal(t, 200.0, resp.Quote.Total)
	assert.False(t, uc.got.Retry)
	assert.Equal(t, "tab-1", uc.got.SessionID)
}

func TestHandler_RetryDefaultsMethod(t *testing.T) {
	uc := &stubUseCase{resp: &renderPayment.Response{}}

	rr := httptest.NewRecorder()
	newRouter(NewHandler(uc, logger.NewNop())).ServeHTTP(rr,
		httptest.NewRequest(http.MethodPost, "/api/v1/sessions/tab-1/payment/retry", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.True(t, uc.got.Retry)
	assert.Equal(t, domain.PaymentMethodPayPal, uc.got.Method)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name          string
		err           error
		wantStatus    int
		wantRetryable bool
	}{
		{name: "sdk timeout", err: fmt.Errorf("%w: timeout", renderPayment.ErrSDKUnavailable), wantStatus: http.StatusServiceUnavailable, wantRetryable: true},
		{name: "wrong phase", err: renderPayment.ErrWrongPhase, wantStatus: http.StatusConflict},
		{name: "session gone", err: renderPayment.ErrSessionGone, wantStatus: http.StatusGone},
		{name: "method unavailable", err: renderPayment.ErrMethodUnavailable, wantStatus: http.StatusBadRequest},
		{name: "render failed", err: renderPayment.ErrRenderFailed, wantStatus: http.StatusBadGateway, wantRetryable: true},
		{name: "internal", err: renderPayment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			newRouter(NewHandler(&stubUseCase{err: tt.err}, logger.NewNop())).ServeHTTP(rr,
				httptest.NewRequest(http.MethodPost, "/api/v1/sessions/tab-1/payment", strings.NewReader(`{"method":"stripe"}`)))

			assert.Equal(t, tt.wantStatus, rr.Code)

			var body handlers.ErrorResponse
			require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
			assert.NotEmpty(t, body.Error)
			assert.Equal(t, tt.wantRetryable, body.Retryable)
		})
	}
}
