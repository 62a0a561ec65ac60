package list_reconciliations

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations/models"
)

type ReconciliationService interface {
	List(ctx context.Context, req *models.ListRequest) (*models.ReconciliationListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
