package models

import (
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// View текущее представление сессии для страницы
type View struct {
	SessionID  string
	AttemptID  string
	Phase      domain.Phase
	Draft      domain.BookingDraft
	Tour       domain.Tour
	Quote      domain.Quote
	CanProceed bool
	Blocker    string // почему переход к оплате недоступен; пусто, если доступен
	Restored   bool
	Notice     *domain.RecoveryNotice
	UpdatedAt  time.Time
}

// CancelResult результат отмены
type CancelResult struct {
	SessionID string
	Outcome   domain.Outcome
}
