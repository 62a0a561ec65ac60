package render_payment

import (
	"context"

	renderPayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/render_payment"
)

type RenderPaymentUseCase interface {
	Execute(ctx context.Context, req *renderPayment.Request) (*renderPayment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
