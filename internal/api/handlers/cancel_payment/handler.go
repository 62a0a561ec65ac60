package cancel_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	completePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректные параметры отмены оплаты"
	msgSessionGone        = "сессия бронирования завершена или начата заново"
	msgWrongPhase         = "сессия не на шаге оплаты"
)

type Handler struct {
	useCase CompletePaymentUseCase
	logger  Logger
}

func NewHandler(useCase CompletePaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/payment/cancel
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req CancelPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/payment/cancel - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.CancelPayment(r.Context(), req.ToUseCaseRequest(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, completePayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, completePayment.ErrSessionGone):
			handlers.RespondGone(w, msgSessionGone)

		case errors.Is(err, completePayment.ErrWrongPhase):
			handlers.RespondConflict(w, msgWrongPhase)

		default:
			h.logger.Error("POST /sessions/{id}/payment/cancel - Failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
