package list_tours

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/logger"
)

type stubCatalog struct {
	tours []domain.Tour
	err   error
}

func (c *stubCatalog) ListTours(ctx context.Context) ([]domain.Tour, error) {
	return c.tours, c.err
}

func TestHandler(t *testing.T) {
	catalog := &stubCatalog{tours: []domain.Tour{
		{ID: 1, Title: "Sunset cruise", Price: 80, MaxGuests: 6, Duration: "3h"},
		{ID: 2, Title: "Fjord trail", Price: 120, MaxGuests: 8, DepartureTime: "08:00"},
	}}

	rr := httptest.NewRecorder()
	NewHandler(catalog, logger.NewNop()).Handle(rr, httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var resp []handlers.TourResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	require.Len(t, resp, 2)
	assert.Equal(t, "3h", resp[0].Duration)
	assert.Equal(t, "08:00", resp[1].DepartureTime)
}

func TestHandler_CatalogDown(t *testing.T) {
	rr := httptest.NewRecorder()
	NewHandler(&stubCatalog{err: errors.New("connection refused")}, logger.NewNop()).Handle(rr,
		httptest.NewRequest(http.MethodGet, "/api/v1/tours", nil))

	assert.Equal(t, http.StatusBadGateway, rr.Code)
}
