package session

import (
	"context"
	"time"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// SessionRepository интерфейс репозитория сессий
type SessionRepository interface {
	Save(ctx context.Context, state *domain.SessionState) error
	Load(ctx context.Context, sessionID string) (*domain.SessionState, error)
	Clear(ctx context.Context, sessionID string) error
}

// TourCatalogClient интерфейс клиента каталога туров
type TourCatalogClient interface {
	GetTour(ctx context.Context, tourID int64) (*domain.Tour, error)
}

// WidgetUnmounter очищает точки монтирования платежных виджетов сессии
type WidgetUnmounter interface {
	Unmount(ctx context.Context, sessionID string)
}

// MetricsCollector учет переходов сессии
type MetricsCollector interface {
	ObserveTransition(from, to string)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
