package dispose_session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-TourBookingService/internal/service/session"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

type stubService struct {
	err   error
	calls []string
}

func (s *stubService) Dispose(ctx context.Context, sessionID string) error {
	s.calls = append(s.calls, sessionID)
	return s.err
}

func TestHandler(t *testing.T) {
	svc := &stubService{}
	h := NewHandler(svc, logger.NewNop())

	r := mux.NewRouter()
	r.HandleFunc("/api/v1/sessions/{sessionId}", h.Handle).Methods(http.MethodDelete)
	r.HandleFunc("/api/v1/sessions/{sessionId}/dispose", h.Handle).Methods(http.MethodPost)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/tab-1", nil),
		httptest.NewRequest(http.MethodPost, "/api/v1/sessions/tab-2/dispose", nil),
	} {
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	}

	assert.Equal(t, []string{"tab-1", "tab-2"}, svc.calls)
}

func TestHandler_InvalidSession(t *testing.T) {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/sessions/{sessionId}", NewHandler(&stubService{err: session.ErrInvalidInput}, logger.NewNop()).Handle)

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodDelete, "/api/v1/sessions/bad", nil))
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}
