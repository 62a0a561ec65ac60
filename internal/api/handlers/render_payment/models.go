package render_payment

import (
	"github.com/m04kA/SMC-TourBookingService/internal/api/handlers"
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	renderPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/render_payment"
)

// RenderPaymentRequest HTTP request model
type RenderPaymentRequest struct {
	Method  string `json:"method"`  // paypal | stripe | card
	MountID string `json:"mountId"` // по умолчанию "payment-widget"
}

// RenderPaymentResponse HTTP response model
type RenderPaymentResponse struct {
	SessionID string                  `json:"sessionId"`
	AttemptID string                  `json:"attemptId"`
	Widget    handlers.WidgetResponse `json:"widget"`
	Quote     handlers.QuoteResponse  `json:"quote"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *RenderPaymentRequest) ToUseCaseRequest(sessionID string, retry bool) *renderPayment.Request {
	method := domain.PaymentMethod(r.Method)
	if method == "" {
		method = domain.PaymentMethodPayPal
	}

	return &renderPayment.Request{
		SessionID: sessionID,
		Method:    method,
		MountID:   r.MountID,
		Retry:     retry,
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *renderPayment.Response) *RenderPaymentResponse {
	return &RenderPaymentResponse{
		SessionID: resp.SessionID,
		AttemptID: resp.AttemptID,
		Widget:    handlers.FromWidget(&resp.Widget),
		Quote:     handlers.FromQuote(resp.Quote),
	}
}
