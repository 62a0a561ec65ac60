package get_session

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/session/models"
)

type SessionService interface {
	Get(ctx context.Context, sessionID string) (*models.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
