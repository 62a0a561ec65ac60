package approve_payment

import (
	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	completePayment "github.com/m04kA/SMC-TourBookingService/internal/usecase/complete_payment"
)

// ApproveRequest HTTP request model, колбэк onApprove виджета
type ApproveRequest struct {
	AttemptID string `json:"attemptId"`
	MountID   string `json:"mountId"`
	Name      string `json:"name"`
	Email     string `json:"email"`
}

// ApproveResponse HTTP response model
type ApproveResponse struct {
	SessionID        string  `json:"sessionId"`
	Outcome          string  `json:"outcome"`
	TransactionID    string  `json:"transactionId"`
	BookingID        *int64  `json:"bookingId,omitempty"`
	ReconciliationID *int64  `json:"reconciliationId,omitempty"`
	SupportContact   string  `json:"supportContact,omitempty"`
	Message          string  `json:"message"`
	Amount           float64 `json:"amount"`
	Currency         string  `json:"currency"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *ApproveRequest) ToUseCaseRequest(sessionID string) *completePayment.ApproveRequest {
	return &completePayment.ApproveRequest{
		SessionID: sessionID,
		AttemptID: r.AttemptID,
		MountID:   r.MountID,
		Payer: domain.Payer{
			Name:  r.Name,
			Email: r.Email,
		},
	}
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *completePayment.ApproveResponse) *ApproveResponse {
	return &ApproveResponse{
		SessionID:        resp.SessionID,
		Outcome:          string(resp.Outcome),
		TransactionID:    resp.TransactionID,
		BookingID:        resp.BookingID,
		ReconciliationID: resp.ReconciliationID,
		SupportContact:   resp.SupportContact,
		Message:          resp.Message,
		Amount:           resp.Amount,
		Currency:         resp.Currency,
	}
}
