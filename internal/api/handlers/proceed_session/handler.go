package proceed_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
)

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

// Handle POST /api/v1/sessions/{sessionId}/proceed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	view, err := h.service.Proceed(r.Context(), sessionID)
	if err != nil {
		status, message, ok := handlers.SessionErrorStatus(err)
		if ok {
			h.logger.Warn("POST /sessions/{id}/proceed - Rejected: session_id=%s, error=%v", sessionID, err)
		} else {
			h.logger.Error("POST /sessions/{id}/proceed - Failed: session_id=%s, error=%v", sessionID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	h.logger.Info("POST /sessions/{id}/proceed - Moved to payment: session_id=%s, phase=%s", sessionID, view.Phase)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(view))
}
