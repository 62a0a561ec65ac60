package render_payment

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	renderPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/render_payment"
)

const (
	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidInput       = "некорректный способ оплаты или идентификатор сессии"
	msgSessionGone        = "сессия бронирования завершена или начата заново"
	msgWrongPhase         = "оплата доступна только после заполнения данных бронирования"
	msgMethodUnavailable  = "способ оплаты недоступен"
	msgSDKUnavailable     = "не удалось загрузить платежную систему, попробуйте еще раз"
	msgRenderFailed       = "не удалось создать платеж, попробуйте еще раз"
)

type Handler struct {
	useCase RenderPaymentUseCase
	logger  Logger
}

func NewHandler(useCase RenderPaymentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/sessions/{sessionId}/payment
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, false)
}

// HandleRetry POST /api/v1/sessions/{sessionId}/payment/retry
// SDK перезагружается с нуля
func (h *Handler) HandleRetry(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, true)
}

func (h *Handler) render(w http.ResponseWriter, r *http.Request, retry bool) {
	sessionID := mux.Vars(r)["sessionId"]

	var req RenderPaymentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /sessions/{id}/payment - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(sessionID, retry))
	if err != nil {
		switch {
		case errors.Is(err, renderPayment.ErrInvalidInput):
			h.logger.Warn("POST /sessions/{id}/payment - Invalid input: session_id=%s, method=%s", sessionID, req.Method)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, renderPayment.ErrSessionGone):
			h.logger.Info("POST /sessions/{id}/payment - Session gone: session_id=%s", sessionID)
			handlers.RespondGone(w, msgSessionGone)

		case errors.Is(err, renderPayment.ErrWrongPhase):
			h.logger.Warn("POST /sessions/{id}/payment - Wrong phase: session_id=%s", sessionID)
			handlers.RespondConflict(w, msgWrongPhase)

		case errors.Is(err, renderPayment.ErrMethodUnavailable):
			h.logger.Warn("POST /sessions/{id}/payment - Method unavailable: session_id=%s, method=%s", sessionID, req.Method)
			handlers.RespondBadRequest(w, msgMethodUnavailable)

		case errors.Is(err, renderPayment.ErrSDKUnavailable):
			h.logger.Warn("POST /sessions/{id}/payment - SDK unavailable: session_id=%s, error=%v", sessionID, err)
			handlers.RespondRetryable(w, http.StatusServiceUnavailable, msgSDKUnavailable)

		case errors.Is(err, renderPayment.ErrRenderFailed):
			h.logger.Error("POST /sessions/{id}/payment - Render failed: session_id=%s, error=%v", sessionID, err)
			handlers.RespondRetryable(w, http.StatusBadGateway, msgRenderFailed)

		default:
			h.logger.Error("POST /sessions/{id}/payment - Failed to render payment: session_id=%s, error=%v", sessionID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /sessions/{id}/payment - Widget rendered: session_id=%s, provider=%s, total=%.2f %s, retry=%t",
		sessionID, result.Widget.Provider, result.Quote.Total, result.Quote.Currency, retry)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
