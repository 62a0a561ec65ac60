package mount_session

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidTourID      = "некорректный ID тура"
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

// Handle POST /api/v1/sessions/{sessionId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req MountRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	if req.TourID <= 0 {
		h.logger.Warn("POST /sessions/{id} - Invalid tour ID: %d", req.TourID)
		handlers.RespondBadRequest(w, msgInvalidTourID)
		return
	}

	view, err := h.service.Mount(r.Context(), sessionID, req.TourID)
	if err != nil {
		status, message, ok := handlers.SessionErrorStatus(err)
		if ok {
			h.logger.Warn("POST /sessions/{id} - Mount rejected: session_id=%s, tour_id=%d, error=%v", sessionID, req.TourID, err)
		} else {
			h.logger.Error("POST /sessions/{id} - Failed to mount session: session_id=%s, tour_id=%d, error=%v", sessionID, req.TourID, err)
		}
		handlers.RespondError(w, status, message)
		return
	}

	h.logger.Info("POST /sessions/{id} - Session mounted: session_id=%s, tour_id=%d, phase=%s, restored=%t",
		sessionID, req.TourID, view.Phase, view.Restored)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromSessionView(view))
}
