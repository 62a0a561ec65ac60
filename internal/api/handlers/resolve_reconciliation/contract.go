package resolve_reconciliation

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations/models"
)

type ReconciliationService interface {
	Resolve(ctx context.Context, req *models.ResolveRequest) (*models.ReconciliationResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
