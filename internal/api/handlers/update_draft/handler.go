package update_draft

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
)

const msgInvalidRequestBody = "некорректное тело запроса"

type Handler struct {
	service SessionService
	logger  Logger
}

func NewHandler(service SessionService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/sessions/{sessionId}/draft
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req UpdateDraftRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /sessions/{id}/draft - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	view, err := h.service.UpdateDraft(r.Context(), sessionID, req.ToDomain())
	if err != nil {
		status, message, ok := handlers.SessionErrorStatus(err)
		if ok {
			h.logger.Warn("PUT /sessions/{id}/draft - Rejected: session_id=%s, error=%v", sessionID, err)
		} else {
			h.logger.Error("PUT /sessions/{id}/draft - Failed to update draft: session_id=%s, error=%v", sessionID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(view))
}
