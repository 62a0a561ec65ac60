package domain

import "time"

// Phase шаг двухшагового сценария бронирования
type Phase string

const (
	PhaseDetails Phase = "details"
	PhasePayment Phase = "payment"
)

// IsValid проверяет, что шаг известен
func (p Phase) IsValid() bool {
	return p == PhaseDetails || p == PhasePayment
}

// Outcome терминальный исход сессии
type Outcome string

const (
	OutcomeCompleted Outcome = "completed"
	OutcomeCancelled Outcome = "cancelled"
	// OutcomeBookingPending деньги списаны, но бронирование не записано, нужна ручная сверка
	OutcomeBookingPending Outcome = "payment_succeeded_booking_pending"
)

// SessionState состояние сессии бронирования одной вкладки браузера
type SessionState struct {
	SessionID string
	AttemptID string // меняется при каждом новом старте, защищает от поздних колбэков
	Phase     Phase
	Draft     BookingDraft
	Tour      Tour
	UpdatedAt time.Time
}

// InPayment проверяет, что сессия на шаге оплаты
func (s *SessionState) InPayment() bool {
	return s.Phase == PhasePayment
}

// SameAttempt проверяет, что состояние относится к той же попытке бронирования
func (s *SessionState) SameAttempt(attemptID string) bool {
	return s.AttemptID == attemptID
}

// RecoveryNotice одноразовое уведомление о восстановлении сессии
type RecoveryNotice struct {
	Message      string
	DismissAfter time.Duration
}
