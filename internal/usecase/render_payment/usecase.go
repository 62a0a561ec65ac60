package render_payment

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/payment"
	sessionService "github.com/m04kA/SMC-TourBookingService/internal/service/session"
)

// UseCase отрисовка платежного виджета на шаге оплаты
type UseCase struct {
	sessions SessionController
	loaders  LoaderRegistry
	mounts   WidgetRenderer
	logger   Logger
}

// NewUseCase создает новый экземпляр usecase
func NewUseCase(sessions SessionController, loaders LoaderRegistry, mounts WidgetRenderer, logger Logger) *UseCase {
	return &UseCase{
		sessions: sessions,
		loaders:  loaders,
		mounts:   mounts,
		logger:   logger,
	}
}

// Execute дожидается SDK провайдера и отрисовывает виджет в точку монтирования
//
// Ожидание SDK идет без блокировки сессии. После ожидания сессия перечитывается:
// если ее отменили, вернули на шаг details или начали заново, виджет не рисуется.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	if !req.Method.IsValid() {
		return nil, fmt.Errorf("%w: unknown payment method %q", ErrInvalidInput, req.Method)
	}
	mountID := req.MountID
	if mountID == "" {
		mountID = payment.DefaultMountID
	}

	var attemptID string
	err := uc.sessions.RunInPayment(ctx, req.SessionID, "", func(state *domain.SessionState) error {
		attemptID = state.AttemptID
		return nil
	})
	if err != nil {
		return nil, uc.sessionError(req.SessionID, err)
	}

	loader, err := uc.loaders.ForMethod(req.Method)
	if err != nil {
		uc.logger.Warn("Execute: method=%s unavailable: %v", req.Method, err)
		return nil, fmt.Errorf("%w: %s", ErrMethodUnavailable, req.Method)
	}

	if req.Retry {
		err = loader.Retry(ctx)
	} else {
		err = loader.EnsureReady(ctx)
	}
	if err != nil {
		uc.logger.Warn("Execute: sdk for method=%s not ready, session=%s: %v", req.Method, req.SessionID, err)
		return nil, fmt.Errorf("%w: %v", ErrSDKUnavailable, err)
	}

	var resp *Response
	err = uc.sessions.RunInPayment(ctx, req.SessionID, attemptID, func(state *domain.SessionState) error {
		quote := uc.sessions.Quote(state)
		checkout := domain.Checkout{
			SessionID:   state.SessionID,
			AttemptID:   state.AttemptID,
			Method:      req.Method,
			Amount:      quote.Total,
			AmountCents: quote.AmountInCents(),
			Currency:    quote.Currency,
			Description: state.Tour.Title,
		}

		widget, err := uc.mounts.Render(ctx, state.SessionID, mountID, loader.Provider(), checkout)
		if err != nil {
			uc.logger.Error("Execute: render failed for session=%s, method=%s: %v", state.SessionID, req.Method, err)
			return fmt.Errorf("%w: %v", ErrRenderFailed, err)
		}

		resp = &Response{
			SessionID: state.SessionID,
			AttemptID: state.AttemptID,
			Widget:    *widget,
			Quote:     quote,
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, ErrRenderFailed) {
			return nil, err
		}
		return nil, uc.sessionError(req.SessionID, err)
	}

	uc.logger.Info("Execute: rendered %s widget %s for session=%s, total=%.2f %s",
		resp.Widget.Provider, resp.Widget.Reference, req.SessionID, resp.Quote.Total, resp.Quote.Currency)
	return resp, nil
}

func (uc *UseCase) sessionError(sessionID string, err error) error {
	switch {
	case errors.Is(err, sessionService.ErrSessionNotFound), errors.Is(err, sessionService.ErrStaleAttempt):
		uc.logger.Info("session=%s is gone, widget not rendered: %v", sessionID, err)
		return ErrSessionGone
	case errors.Is(err, sessionService.ErrWrongPhase):
		return ErrWrongPhase
	case errors.Is(err, sessionService.ErrInvalidInput):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	case errors.Is(err, payment.ErrProviderNotConfigured):
		return ErrMethodUnavailable
	default:
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}
}
