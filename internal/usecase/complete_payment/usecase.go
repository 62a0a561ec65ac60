package complete_payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TourBookingService/internal/payment"
	sessionService "github.com/m04kA/SMC-TourBookingService/internal/service/session"
)

// Метки исходов для метрик
const (
	outcomeCaptureFailed  = "capture_failed"
	outcomeSDKUnavailable = "sdk_unavailable"
	outcomeCancelled      = "cancelled"
	outcomeProviderError  = "provider_error"
)

// Options параметры usecase
type Options struct {
	SupportContact string
}

// UseCase завершение оплаты: capture у провайдера и отправка бронирования
type UseCase struct {
	sessions  SessionController
	mounts    WidgetMounts
	loaders   SDKLoaders
	bookings  BookingClient
	ledger    ReconciliationRepository // nil, если база выключена
	publisher EventPublisher
	metrics   MetricsCollector
	clock     TimeProvider
	logger    Logger
	opts      Options
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(
	sessions SessionController,
	mounts WidgetMounts,
	loaders SDKLoaders,
	bookings BookingClient,
	ledger ReconciliationRepository,
	publisher EventPublisher,
	metrics MetricsCollector,
	clock TimeProvider,
	logger Logger,
	opts Options,
) *UseCase {
	return &UseCase{
		sessions:  sessions,
		mounts:    mounts,
		loaders:   loaders,
		bookings:  bookings,
		ledger:    ledger,
		publisher: publisher,
		metrics:   metrics,
		clock:     clock,
		logger:    logger,
		opts:      opts,
	}
}

// Approve обрабатывает колбэк "approved"
//
// Ошибка capture возвращается как ErrPaymentFailed, бронирование при этом не отправляется
// и сессия остается на шаге оплаты. После успешного capture бронирование отправляется
// в любом случае, а сессия очищается и при успехе, и при ошибке API бронирований.
func (uc *UseCase) Approve(ctx context.Context, req *ApproveRequest) (*ApproveResponse, error) {
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}
	mountID := req.MountID
	if mountID == "" {
		mountID = payment.DefaultMountID
	}

	var (
		state  domain.SessionState
		result *domain.PaymentResult
	)

	err := uc.sessions.RunInPayment(ctx, req.SessionID, req.AttemptID, func(current *domain.SessionState) error {
		widget, provider, err := uc.mounts.Current(current.SessionID, mountID)
		if err != nil || widget.AttemptID != current.AttemptID {
			return ErrWidgetNotMounted
		}

		// SDK мог быть выгружен после отрисовки: истек токен или Retry из другой вкладки
		if err := uc.loaders.EnsureReady(ctx, widget.Method); err != nil {
			uc.observe(widget.Provider, outcomeSDKUnavailable)
			uc.logger.Warn("Approve: sdk %s not ready for session=%s: %v", widget.Provider, current.SessionID, err)
			return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}

		captured, err := provider.Capture(ctx, widget)
		if err != nil {
			uc.observe(widget.Provider, outcomeCaptureFailed)
			uc.logger.Warn("Approve: capture failed for session=%s, reference=%s: %v", current.SessionID, widget.Reference, err)
			return fmt.Errorf("%w: %v", ErrPaymentFailed, err)
		}

		uc.mounts.Release(current.SessionID, mountID)
		if captured.Method == "" {
			captured.Method = widget.Method
		}

		state = *current
		result = captured
		return nil
	})
	if err != nil {
		return nil, uc.approveError(req.SessionID, err)
	}

	uc.logger.Info("Approve: captured transaction=%s (%s) for session=%s", result.TransactionID, result.Provider, req.SessionID)

	// деньги списаны: отмена запроса клиентом не прерывает отправку бронирования
	ctx = context.WithoutCancel(ctx)

	body := buildBookingRequest(&state, result, req.Payer)
	booking, err := uc.bookings.CreateBooking(ctx, body)
	if err != nil {
		return uc.bookingPending(ctx, &state, result, body, err), nil
	}

	uc.publish(ctx, notifier.Event{
		Type:          notifier.EventBookingCompleted,
		SessionID:     state.SessionID,
		AttemptID:     state.AttemptID,
		TourID:        state.Tour.ID,
		Provider:      result.Provider,
		TransactionID: result.TransactionID,
		Amount:        result.Amount,
		Currency:      result.Currency,
		BookingID:     &booking.ID,
		OccurredAt:    uc.clock.Now(),
	})

	uc.finish(ctx, &state, domain.OutcomeCompleted)
	uc.observe(result.Provider, string(domain.OutcomeCompleted))
	uc.logger.Info("Approve: booking id=%d created for session=%s, transaction=%s", booking.ID, state.SessionID, result.TransactionID)

	return &ApproveResponse{
		SessionID:     state.SessionID,
		Outcome:       domain.OutcomeCompleted,
		TransactionID: result.TransactionID,
		BookingID:     &booking.ID,
		Message:       "Бронирование подтверждено.",
		Amount:        result.Amount,
		Currency:      result.Currency,
	}, nil
}

// CancelPayment обрабатывает колбэки "cancelled" и "error"
// Сессия остается на шаге оплаты, черновик не меняется, ошибки нет
func (uc *UseCase) CancelPayment(ctx context.Context, req *CancelRequest) (*CancelResponse, error) {
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidInput)
	}

	reason := req.Reason
	if reason == "" {
		reason = ReasonCancelled
	}
	if reason != ReasonCancelled && reason != ReasonError {
		return nil, fmt.Errorf("%w: unknown reason %q", ErrInvalidInput, req.Reason)
	}
	mountID := req.MountID
	if mountID == "" {
		mountID = payment.DefaultMountID
	}

	var resp *CancelResponse
	err := uc.sessions.RunInPayment(ctx, req.SessionID, req.AttemptID, func(state *domain.SessionState) error {
		provider := "unknown"
		if widget, _, err := uc.mounts.Current(state.SessionID, mountID); err == nil {
			provider = widget.Provider
		}

		if reason == ReasonError {
			uc.observe(provider, outcomeProviderError)
			uc.logger.Warn("CancelPayment: provider %s reported error for session=%s: %s", provider, state.SessionID, req.Message)
		} else {
			uc.observe(provider, outcomeCancelled)
			uc.logger.Info("CancelPayment: payment cancelled by user for session=%s", state.SessionID)
		}

		resp = &CancelResponse{
			SessionID: state.SessionID,
			Phase:     state.Phase,
			Draft:     state.Draft,
		}
		return nil
	})
	if err != nil {
		return nil, uc.approveError(req.SessionID, err)
	}

	return resp, nil
}

// bookingPending списание прошло, бронирование не создано: запись в журнал сверки,
// событие для поддержки и очистка черновика
func (uc *UseCase) bookingPending(
	ctx context.Context,
	state *domain.SessionState,
	result *domain.PaymentResult,
	body *bookingapi.CreateBookingRequest,
	cause error,
) *ApproveResponse {
	uc.logger.Error("Approve: booking submission failed after capture, session=%s, transaction=%s: %v",
		state.SessionID, result.TransactionID, cause)

	var reconciliationID *int64
	if uc.ledger != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			payload = []byte("{}")
		}

		rec, err := uc.ledger.Create(ctx, &domain.Reconciliation{
			SessionID:      state.SessionID,
			AttemptID:      state.AttemptID,
			TourID:         state.Tour.ID,
			Method:         result.Method,
			TransactionID:  result.TransactionID,
			PayerEmail:     body.Email,
			PayerName:      body.Name,
			Amount:         result.Amount,
			Currency:       result.Currency,
			BookingPayload: payload,
			FailureMessage: cause.Error(),
		})
		if err != nil {
			uc.logger.Error("Approve: failed to record reconciliation for transaction=%s: %v", result.TransactionID, err)
		} else {
			reconciliationID = &rec.ID
		}
	}

	uc.publish(ctx, notifier.Event{
		Type:             notifier.EventBookingReconciliationRequired,
		SessionID:        state.SessionID,
		AttemptID:        state.AttemptID,
		TourID:           state.Tour.ID,
		Provider:         result.Provider,
		TransactionID:    result.TransactionID,
		Amount:           result.Amount,
		Currency:         result.Currency,
		ReconciliationID: reconciliationID,
		Message:          cause.Error(),
		OccurredAt:       uc.clock.Now(),
	})

	uc.finish(ctx, state, domain.OutcomeBookingPending)
	uc.observe(result.Provider, string(domain.OutcomeBookingPending))

	return &ApproveResponse{
		SessionID:        state.SessionID,
		Outcome:          domain.OutcomeBookingPending,
		TransactionID:    result.TransactionID,
		ReconciliationID: reconciliationID,
		SupportContact:   uc.opts.SupportContact,
		Message: fmt.Sprintf(
			"Оплата получена, но бронирование пока не подтверждено. Обратитесь в %s и укажите номер платежа %s.",
			uc.opts.SupportContact, result.TransactionID,
		),
		Amount:   result.Amount,
		Currency: result.Currency,
	}
}

func buildBookingRequest(state *domain.SessionState, result *domain.PaymentResult, payer domain.Payer) *bookingapi.CreateBookingRequest {
	name := firstNonEmpty(result.PayerName, payer.Name)
	email := firstNonEmpty(result.PayerEmail, payer.Email)

	body := &bookingapi.CreateBookingRequest{
		TourID:        state.Tour.ID,
		Name:          name,
		Email:         email,
		DepartureDate: state.Draft.DepartureDate,
		ReturnDate:    state.Draft.EffectiveReturnDate(),
		Guests:        state.Draft.Guests,
		PaymentMethod: string(result.Method),
	}

	ref := &bookingapi.ProviderPayment{
		TransactionID: result.TransactionID,
		Email:         email,
	}
	if result.Method.ProviderName() == string(domain.PaymentMethodStripe) {
		body.Stripe = ref
	} else {
		body.PayPal = ref
	}

	return body
}

func (uc *UseCase) finish(ctx context.Context, state *domain.SessionState, outcome domain.Outcome) {
	if err := uc.sessions.Finish(ctx, state.SessionID, state.AttemptID, outcome); err != nil {
		uc.logger.Error("failed to clear session=%s after outcome=%s: %v", state.SessionID, outcome, err)
	}
}

func (uc *UseCase) publish(ctx context.Context, event notifier.Event) {
	if uc.publisher == nil {
		return
	}
	if err := uc.publisher.Publish(ctx, event); err != nil {
		uc.logger.Error("failed to publish %s for session=%s: %v", event.Type, event.SessionID, err)
	}
}

func (uc *UseCase) observe(provider, outcome string) {
	if uc.metrics != nil {
		uc.metrics.ObservePaymentOutcome(provider, outcome)
	}
}

func (uc *UseCase) approveError(sessionID string, err error) error {
	switch {
	case errors.Is(err, ErrWidgetNotMounted), errors.Is(err, ErrPaymentFailed):
		return err
	case errors.Is(err, sessionService.ErrSessionNotFound), errors.Is(err, sessionService.ErrStaleAttempt):
		uc.logger.Info("session=%s is gone, callback ignored: %v", sessionID, err)
		return ErrSessionGone
	case errors.Is(err, sessionService.ErrWrongPhase):
		return ErrWrongPhase
	case errors.Is(err, sessionService.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
