package domain

import "time"

// ReconciliationStatus статус ручной сверки
type ReconciliationStatus string

const (
	ReconciliationPending  ReconciliationStatus = "pending"
	ReconciliationResolved ReconciliationStatus = "resolved"
)

// Reconciliation запись о списании без созданного бронирования
type Reconciliation struct {
	ID             int64
	SessionID      string
	AttemptID      string
	TourID         int64
	Method         PaymentMethod
	TransactionID  string
	PayerEmail     string
	PayerName      string
	Amount         float64
	Currency       string
	BookingPayload []byte // JSON заявки, которую не удалось отправить
	FailureMessage string
	Status         ReconciliationStatus
	ResolutionNote *string
	ResolvedAt     *time.Time
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// IsPending проверяет, что запись ещё не разобрана поддержкой
func (r *Reconciliation) IsPending() bool {
	return r.Status == ReconciliationPending
}
