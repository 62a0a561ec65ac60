package get_session

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

// Handle GET /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	view, err := h.service.Get(r.Context(), sessionID)
	if err != nil {
		status, message, ok := handlers.SessionErrorStatus(err)
		if !ok {
			h.logger.Error("GET /sessions/{id} - Failed to get session: session_id=%s, error=%v", sessionID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(view))
}
