package mount_session

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/service/session/models"
)

type SessionService interface {
	Mount(ctx context.Context, sessionID string, tourID int64) (*models.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
