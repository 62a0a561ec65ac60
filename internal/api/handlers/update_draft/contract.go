package update_draft

import (
	"context"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/service/session/models"
)

type SessionService interface {
	UpdateDraft(ctx context.Context, sessionID string, draft domain.BookingDraft) (*models.View, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
