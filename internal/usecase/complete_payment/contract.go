package complete_payment

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/bookingapi"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/notifier"
	"github.com/m04kA/SMC-TourBookingService/internal/payment"
)

// SessionController интерфейс контроллера сессии
type SessionController interface {
	RunInPayment(ctx context.Context, sessionID, attemptID string, fn func(state *domain.SessionState) error) error
	Finish(ctx context.Context, sessionID, attemptID string, outcome domain.Outcome) error
}

// WidgetMounts точки монтирования виджетов
type WidgetMounts interface {
	Current(sessionID, mountID string) (*domain.Widget, payment.Provider, error)
	Release(sessionID, mountID string)
}

// SDKLoaders загрузчики SDK по способу оплаты
type SDKLoaders interface {
	EnsureReady(ctx context.Context, method domain.PaymentMethod) error
}

// BookingClient интерфейс клиента API приема бронирований
type BookingClient interface {
	CreateBooking(ctx context.Context, body *bookingapi.CreateBookingRequest) (*bookingapi.Booking, error)
}

// ReconciliationRepository журнал списаний без бронирования
type ReconciliationRepository interface {
	Create(ctx context.Context, rec *domain.Reconciliation) (*domain.Reconciliation, error)
}

// EventPublisher публикация событий об исходе оплаты
type EventPublisher interface {
	Publish(ctx context.Context, event notifier.Event) error
}

// MetricsCollector учет исходов оплаты
type MetricsCollector interface {
	ObservePaymentOutcome(provider, outcome string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
