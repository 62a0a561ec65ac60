package complete_payment

import "github.com/m04kA/SMC-TourBookingService/internal/domain"

// Исходы колбэка отмены у провайдера
const (
	ReasonCancelled = "cancelled"
	ReasonError     = "error"
)

// ApproveRequest колбэк "approved" от платежного виджета
type ApproveRequest struct {
	SessionID string
	AttemptID string
	MountID   string
	Payer     domain.Payer // данные плательщика со страницы; данные провайдера в приоритете
}

// ApproveResponse исход оплаты
type ApproveResponse struct {
	SessionID        string
	Outcome          domain.Outcome
	TransactionID    string
	BookingID        *int64
	ReconciliationID *int64
	SupportContact   string // заполнен для OutcomeBookingPending
	Message          string
	Amount           float64
	Currency         string
}

// CancelRequest колбэк "cancelled" или "error" от платежного виджета
type CancelRequest struct {
	SessionID string
	AttemptID string
	MountID   string
	Reason    string
	Message   string
}

// CancelResponse сессия остается на шаге оплаты
type CancelResponse struct {
	SessionID string
	Phase     domain.Phase
	Draft     domain.BookingDraft
}
