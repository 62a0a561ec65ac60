package cancel_payment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	completePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

type stubUseCase struct {
	resp *completePayment.CancelResponse
	err  error
	got  *completePayment.CancelRequest
}

func (s *stubUseCase) CancelPayment(ctx context.Context, req *completePayment.CancelRequest) (*completePayment.CancelResponse, error) {
	s.got = req
	return s.resp, s.err
}

func serve(uc *stubUseCase, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/sessions/{sessionId}/payment/cancel", NewHandler(uc, logger.NewNop()).Handle).Methods(http.MethodPost)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/v1/sessions/tab-1/payment/cancel", strings.NewReader(body)))
	return rr
}

func TestHandler_Cancelled(t *testing.T) {
	uc := &stubUseCase{resp: &completePayment.CancelResponse{
		SessionID: "tab-1",
		Phase:     domain.PhasePayment,
		Draft:     domain.BookingDraft{TripType: domain.TripTypeOneWay, DepartureDate: "2025-06-01", Guests: 2},
	}}

	rr := serve(uc, `{"attemptId":"a-1","mountId":"checkout-modal","reason":"cancelled"}`)
	require.Equal(t, http.StatusOK, rr.Code)

	var resp CancelPaymentResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "payment", resp.Phase)
	assert.Equal(t, 2, resp.Draft.Guests)

	assert.Equal(t, "tab-1", uc.got.SessionID)
	assert.Equal(t, "a-1", uc.got.AttemptID)
	assert.Equal(t, "checkout-modal", uc.got.MountID)
	assert.Equal(t, completePayment.ReasonCancelled, uc.got.Reason)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{name: "unknown reason", err: completePayment.ErrInvalidInput, wantStatus: http.StatusBadRequest},
		{name: "stale callback", err: completePayment.ErrSessionGone, wantStatus: http.StatusGone},
		{name: "wrong phase", err: completePayment.ErrWrongPhase, wantStatus: http.StatusConflict},
		{name: "internal", err: completePayment.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := serve(&stubUseCase{err: tt.err}, `{"reason":"error","message":"popup closed"}`)
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
