package render_payment

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/payment"
)

// SessionController интерфейс контроллера сессии
type SessionController interface {
	RunInPayment(ctx context.Context, sessionID, attemptID string, fn func(state *domain.SessionState) error) error
	Quote(state *domain.SessionState) domain.Quote
}

// LoaderRegistry загрузчики SDK по способу оплаты
type LoaderRegistry interface {
	ForMethod(method domain.PaymentMethod) (*payment.Loader, error)
}

// WidgetRenderer точки монтирования виджетов
type WidgetRenderer interface {
	Render(ctx context.Context, sessionID, mountID string, provider payment.Provider, checkout domain.Checkout) (*domain.Widget, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
