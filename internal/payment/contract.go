package payment

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// Provider платежный провайдер с внешним SDK
type Provider interface {
	Name() string
	// Signature одинакова для загрузок одного и того же SDK
	Signature() string

	IsReady() bool
	Load(ctx context.Context) error
	Teardown()

	RenderInto(ctx context.Context, mountID string, checkout domain.Checkout) (*domain.Widget, error)
	Capture(ctx context.Context, widget *domain.Widget) (*domain.PaymentResult, error)
	Discard(ctx context.Context, widget *domain.Widget) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// MetricsCollector учет загрузок SDK
type MetricsCollector interface {
	ObserveSDKLoad(provider, result string)
}
