package render_payment

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// Request модель запроса на отрисовку платежного виджета
type Request struct {
	SessionID string
	Method    domain.PaymentMethod
	MountID   string // по умолчанию payment.DefaultMountID
	Retry     bool   // перезагрузить SDK перед отрисовкой
}

// Response модель ответа с виджетом
type Response struct {
	SessionID string
	AttemptID string
	Widget    domain.Widget
	Quote     domain.Quote
}
