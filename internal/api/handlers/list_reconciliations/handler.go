package list_reconciliations

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

const (
	msgInvalidLimit  = "некорректный параметр limit"
	msgInvalidStatus = "некорректный параметр status, ожидается pending, resolved или all"
)

type Handler struct {
	service ReconciliationService
	logger  Logger
}

func NewHandler(service ReconciliationService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/reconciliations?status=pending&limit=100
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	req := &models.ListRequest{}
	if status := query.Get("status"); status != "" {
		req.Status = ptr.Ptr(status)
	}

	if limitStr := query.Get("limit"); limitStr != "" {
		limit, err := strconv.ParseUint(limitStr, 10, 64)
		if err != nil {
			h.logger.Warn("GET /reconciliations - Invalid limit: %v", err)
			handlers.RespondBadRequest(w, msgInvalidLimit)
			return
		}
		req.Limit = limit
	}

	result, err := h.service.List(r.Context(), req)
	if err != nil {
		if errors.Is(err, reconciliations.ErrInvalidInput) {
			h.logger.Warn("GET /reconciliations - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidStatus)
			return
		}
		h.logger.Error("GET /reconciliations - Failed to list reconciliations: %v", err)
		handlers.RespondInternalError(w)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, result)
}
