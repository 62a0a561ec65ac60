package cancel_payment

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	completePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
)

// CancelPaymentRequest HTTP request model, колбэки onCancel/onError виджета
type CancelPaymentRequest struct {
	AttemptID string `json:"attemptId"`
	MountID   string `json:"mountId"`
	Reason    string `json:"reason"` // cancelled | error
	Message   string `json:"message"`
}

// CancelPaymentResponse HTTP response model
type CancelPaymentResponse struct {
	SessionID string              `json:"sessionId"`
	Phase     string              `json:"phase"`
	Draft     domain.BookingDraft `json:"draft"`
}

func (r *CancelPaymentRequest) ToUseCaseRequest(sessionID string) *completePayment.CancelRequest {
	return &completePayment.CancelRequest{
		SessionID: sessionID,
		AttemptID: r.AttemptID,
		MountID:   r.MountID,
		Reason:    r.Reason,
		Message:   r.Message,
	}
}

func FromUseCaseResponse(resp *completePayment.CancelResponse) *CancelPaymentResponse {
	return &CancelPaymentResponse{
		SessionID: resp.SessionID,
		Phase:     string(resp.Phase),
		Draft:     resp.Draft,
	}
}
