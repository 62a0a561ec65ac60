package approve_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	completePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный идентификатор сессии"
	msgSessionGone        = "сессия бронирования завершена или начата заново"
	msgWrongPhase         = "сессия не на шаге оплаты"
	msgWidgetNotMounted   = "платеж не найден или уже обработан"
	msgPaymentFailed      = "оплата не прошла, попробуйте еще раз или выберите другой способ"
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

// Handle POST /api/v1/sessions/{sessionId}/payment/approve
// payment_succeeded_booking_pending тоже 200: деньги списаны, страница показывает контакт поддержки
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	sessionID := mux.Vars(r)["sessionId"]

	var req ApproveRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/payment/approve - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Approve(r.Context(), req.ToUseCaseRequest(sessionID))
	if err != nil {
		switch {
		case errors.Is(err, completePayment.ErrInvalidInput):
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, completePayment.ErrSessionGone):
			h.logger.Info("POST /sessions/{id}/payment/approve - Session gone: session_id=%s, attempt_id=%s", sessionID, req.AttemptID)
			handlers.RespondGone(w, msgSessionGone)

		case errors.Is(err, completePayment.ErrWrongPhase):
			h.logger.Warn("POST /sessions/{id}/payment/approve - Wrong phase: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgWrongPhase)

		case errors.Is(err, completePayment.ErrWidgetNotMounted):
			h.logger.Warn("POST /sessions/{id}/payment/approve - Widget not mounted: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgWidgetNotMounted)

		case errors.Is(err, completePayment.ErrPaymentFailed):
			h.logger.Warn("POST /sessions/{id}/payment/approve - Payment failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondRetryable(w, http.StatusPaymentRequired, msgPaymentFailed)

		default:
			h.logger.Error("POST /sessions/{id}/payment/approve - Failed to complete payment: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/payment/approve - Payment completed: session_id=%s, outcome=%s, transaction_id=%s",
		sessionID, result.Outcome, result.TransactionID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
