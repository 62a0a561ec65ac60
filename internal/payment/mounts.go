package payment

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
)

// DefaultMountID точка монтирования, если страница не указала свою
const DefaultMountID = "payment-widget"

type slot struct {
	provider Provider
	widget   *domain.Widget
}

// MountRegistry точки монтирования виджетов по сессиям
// В одной точке монтирования живет не больше одного виджета
type MountRegistry struct {
	log Logger

	mu    sync.Mutex
	slots map[string]map[string]*slot // sessionID -> mountID -> slot
}

// NewMountRegistry создает пустой реестр
func NewMountRegistry(log Logger) *MountRegistry {
	return &MountRegistry{
		log:   log,
		slots: make(map[string]map[string]*slot),
	}
}

// Render очищает точку монтирования и отрисовывает в нее новый виджет
func (r *MountRegistry) Render(ctx context.Context, sessionID, mountID string, provider Provider, checkout domain.Checkout) (*domain.Widget, error) {
	if prev := r.take(sessionID, mountID); prev != nil {
		r.discard(ctx, sessionID, prev)
	}

	widget, err := provider.RenderInto(ctx, mountID, checkout)
	if err != nil {
		return nil, err
	}

	r.mu.Lock()
	mounts, ok := r.slots[sessionID]
	if !ok {
		mounts = make(map[string]*slot)
		r.slots[sessionID] = mounts
	}
	mounts[mountID] = &slot{provider: provider, widget: widget}
	r.mu.Unlock()

	return widget, nil
}

// Current возвращает виджет точки монтирования
func (r *MountRegistry) Current(sessionID, mountID string) (*domain.Widget, Provider, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	s, ok := r.slots[sessionID][mountID]
	if !ok {
		return nil, nil, ErrWidgetNotMounted
	}
	return s.widget, s.provider, nil
}

// Release освобождает точку монтирования без отмены у провайдера (после оплаты)
func (r *MountRegistry) Release(sessionID, mountID string) {
	r.take(sessionID, mountID)
}

// Unmount очищает все точки монтирования сессии
func (r *MountRegistry) Unmount(ctx context.Context, sessionID string) {
	r.mu.Lock()
	mounts := r.slots[sessionID]
	delete(r.slots, sessionID)
	r.mu.Unlock()

	for _, s := range mounts {
		r.discard(ctx, sessionID, s)
	}
}

// Count число виджетов сессии
func (r *MountRegistry) Count(sessionID string) int {
	r.mu.Lock()
	defer r.mu.Unlock()

	return len(r.slots[sessionID])
}

func (r *MountRegistry) take(sessionID, mountID string) *slot {
	r.mu.Lock()
	defer r.mu.Unlock()

	mounts, ok := r.slots[sessionID]
	if !ok {
		return nil
	}

	s, ok := mounts[mountID]
	if !ok {
		return nil
	}

	delete(mounts, mountID)
	if len(mounts) == 0 {
		delete(r.slots, sessionID)
	}
	return s
}

func (r *MountRegistry) discard(ctx context.Context, sessionID string, s *slot) {
	if err := s.provider.Discard(ctx, s.widget); err != nil {
		r.log.Warn("Failed to discard %s widget %s for session %s: %v", s.provider.Name(), s.widget.Reference, sessionID, err)
	}
}
