package reconciliations

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// ReconciliationRepository интерфейс журнала сверок
type ReconciliationRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Reconciliation, error)
	List(ctx context.Context, status *domain.ReconciliationStatus, limit uint64) ([]*domain.Reconciliation, error)
	Resolve(ctx context.Context, id int64, note string) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
