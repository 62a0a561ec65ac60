package suspend_session

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

// Handle POST /api/v1/sessions/{sessionId}/suspend
// Вызывается через sendBeacon, когда вкладка скрыта; черновик удаляется, если вкладка не вернется
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.service.Suspend(r.Context(), sessionID); err != nil {
		status, message, ok := handlers.SessionErrorStatus(err)
		if !ok {
			h.logger.Error("POST /sessions/{id}/suspend - Failed: session_id=%s, error=%v", sessionID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	handlers.RespondNoContent(w)
}
