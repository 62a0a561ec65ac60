package dispose_session

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

// Handle DELETE /api/v1/sessions/{sessionId} и POST /api/v1/sessions/{sessionId}/dispose
// Вкладка закрыта, черновик удаляется сразу. POST нужен для sendBeacon
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	if err := h.service.Dispose(r.Context(), sessionID); err != nil {
		status, message, ok := handlers.SessionErrorStatus(err)
		if !ok {
			h.logger.Error("%s /sessions/{id} - Failed: session_id=%s, error=%v", r.Method, sessionID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	handlers.RespondNoContent(w)
}
