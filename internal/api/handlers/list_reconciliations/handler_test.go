package list_reconciliations

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

type stubService struct {
	err error
	got *models.ListRequest
}

func (s *stubService) List(ctx context.Context, req *models.ListRequest) (*models.ReconciliationListResponse, error) {
	s.got = req
	if s.err != nil {
		return nil, s.err
	}
	return &models.ReconciliationListResponse{Reconciliations: []models.ReconciliationResponse{}}, nil
}

func TestHandler_Query(t *testing.T) {
	svc := &stubService{}

	rr := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rr, httptest.NewRequest(http.MethodGet, "/api/v1/reconciliations?status=all&limit=20", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	require.NotNil(t, svc.got.Status)
	assert.Equal(t, "all", *svc.got.Status)
	assert.Equal(t, uint64(20), svc.got.Limit)
	assert.JSONEq(t, `{"reconciliations":[],"total":0}`, rr.Body.String())
}

func TestHandler_Defaults(t *testing.T) {
	svc := &stubService{}

	rr := httptest.NewRecorder()
	NewHandler(svc, logger.NewNop()).Handle(rr, httptest.NewRequest(http.MethodGet, "/api/v1/reconciliations", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	assert.Nil(t, svc.got.Status)
	assert.Zero(t, svc.got.Limit)
}

func TestHandler_Errors(t *testing.T) {
	tests := []struct {
		name       string
		url        string
		err        error
		wantStatus int
	}{
		{name: "bad limit", url: "/api/v1/reconciliations?limit=-1", wantStatus: http.StatusBadRequest},
		{name: "bad status", url: "/api/v1/reconciliations?status=open", err: fmt.Errorf("%w: unknown status", reconciliations.ErrInvalidInput), wantStatus: http.StatusBadRequest},
		{name: "db down", url: "/api/v1/reconciliations", err: reconciliations.ErrInternal, wantStatus: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			NewHandler(&stubService{err: tt.err}, logger.NewNop()).Handle(rr, httptest.NewRequest(http.MethodGet, tt.url, nil))
			assert.Equal(t, tt.wantStatus, rr.Code)
		})
	}
}
