package notifier

import "time"

// Типы событий
const (
	EventBookingCompleted              = "booking.completed"
	EventBookingReconciliationRequired = "booking.reconciliation_required"
)

// Event событие о завершении оплаты бронирования
type Event struct {
	ID               string    `json:"id"`
	Type             string    `json:"type"`
	SessionID        string    `json:"sessionId"`
	AttemptID        string    `json:"attemptId"`
	TourID           int64     `json:"tourId"`
	Provider         string    `json:"provider"`
	TransactionID    string    `json:"transactionId"`
	Amount           float64   `json:"amount"`
	Currency         string    `json:"currency"`
	BookingID        *int64    `json:"bookingId,omitempty"`
	ReconciliationID *int64    `json:"reconciliationId,omitempty"`
	Message          string    `json:"message,omitempty"`
	OccurredAt       time.Time `json:"occurredAt"`
}
