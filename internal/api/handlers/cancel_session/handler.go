package cancel_session

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

// Handle POST /api/v1/sessions/{sessionId}/cancel
// Идемпотентно: отмена несуществующей сессии тоже успешна
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	result, err := h.service.Cancel(r.Context(), sessionID)
	if err != nil {
		status, message, ok := handlers.SessionErrorStatus(err)
		if !ok {
			h.logger.Error("POST /sessions/{id}/cancel - Failed to cancel: session_id=%s, error=%v", sessionID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	h.logger.Info("POST /sessions/{id}/cancel - Session cancelled: session_id=%s", sessionID)
	handlers.RespondJSON(w, http.StatusOK, &CancelResponse{
		SessionID: result.SessionID,
		Outcome:   string(result.Outcome),
	})
}
