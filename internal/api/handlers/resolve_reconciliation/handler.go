package resolve_reconciliation

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations"
)

const (
	msgInvalidID          = "некорректный ID записи сверки"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNoteRequired       = "укажите заметку о разборе"
	msgNotFound           = "запись сверки не найдена"
	msgAlreadyResolved    = "запись сверки уже разобрана"
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

// Handle PATCH /api/v1/reconciliations/{id}/resolve
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /reconciliations/{id}/resolve - Invalid ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidID)
		return
	}

	var req ResolveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /reconciliations/{id}/resolve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.Resolve(r.Context(), req.ToServiceRequest(id))
	if err != nil {
		switch {
		case errors.Is(err, reconciliations.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgNoteRequired)

		case errors.Is(err, reconciliations.ErrReconciliationNotFound):
			h.logger.Warn("PATCH /reconciliations/{id}/resolve - Not found: id=%d", id)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, reconciliations.ErrAlreadyResolved):
			h.logger.Warn("PATCH /reconciliations/{id}/resolve - Already resolved: id=%d", id)
			handlers.RespondConflict(w, msgAlreadyResolved)

		default:
			h.logger.Error("PATCH /reconciliations/{id}/resolve - Failed to resolve: id=%d, error=%v", id, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /reconciliations/{id}/resolve - Resolved: id=%d, transaction_id=%s", id, result.TransactionID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
