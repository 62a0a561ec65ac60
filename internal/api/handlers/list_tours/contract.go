package list_tours

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

type TourCatalog interface {
	ListTours(ctx context.Context) ([]domain.Tour, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
