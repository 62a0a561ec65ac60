package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/internal/infra/storage/kv"
)

// Repository сериализует SessionState в хорошо известные ключи хранилища
// Формат ключей: <prefix><sessionID>:<booking_step|booking_data|selected_tour>
type Repository struct {
	store  Store
	prefix string
}

// NewRepository создает новый экземпляр репозитория сессий
func NewRepository(store Store, prefix string) *Repository {
	return &Repository{
		store:  store,
		prefix: prefix,
	}
}

func (r *Repository) key(sessionID, name string) string {
	return r.prefix + sessionID + ":" + name
}

// Save записывает все ключи сессии
func (r *Repository) Save(ctx context.Context, state *domain.SessionState) error {
	if err := validateSessionID(state.SessionID); err != nil {
		return err
	}

	data, err := json.Marshal(storedDraft{
		BookingDraft: state.Draft,
		AttemptID:    state.AttemptID,
		UpdatedAt:    state.UpdatedAt,
	})
	if err != nil {
		return fmt.Errorf("%w: Save - marshal draft: %v", ErrStorage, err)
	}

	tour, err := json.Marshal(toStoredTour(state.Tour))
	if err != nil {
		return fmt.Errorf("%w: Save - marshal tour: %v", ErrStorage, err)
	}

	values := []struct {
		name  string
		value string
	}{
		{domain.KeySelectedTour, string(tour)},
		{domain.KeyBookingData, string(data)},
		{domain.KeyBookingStep, string(state.Phase)},
	}

	for _, v := range values {
		if err := r.store.Set(ctx, r.key(state.SessionID, v.name), v.value); err != nil {
			return fmt.Errorf("%w: Save - set %s: %v", ErrStorage, v.name, err)
		}
	}

	return nil
}

// Load восстанавливает состояние сессии
// Если ни одного ключа нет, возвращает ErrSessionNotFound
// Если данные неполные или не разбираются, возвращает ErrMalformedState
func (r *Repository) Load(ctx context.Context, sessionID string) (*domain.SessionState, error) {
	if err := validateSessionID(sessionID); err != nil {
		return nil, err
	}

	raw := make(map[string]string, len(domain.SessionKeys))
	for _, name := range domain.SessionKeys {
		val, err := r.store.Get(ctx, r.key(sessionID, name))
		if err != nil {
			if errors.Is(err, kv.ErrKeyNotFound) {
				continue
			}
			return nil, fmt.Errorf("%w: Load - get %s: %v", ErrStorage, name, err)
		}
		raw[name] = val
	}

	if len(raw) == 0 {
		return nil, ErrSessionNotFound
	}

	return decodeState(sessionID, raw)
}

// Clear удаляет все ключи сессии
func (r *Repository) Clear(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	keys := make([]string, 0, len(domain.SessionKeys))
	for _, name := range domain.SessionKeys {
		keys = append(keys, r.key(sessionID, name))
	}

	if err := r.store.Remove(ctx, keys...); err != nil {
		return fmt.Errorf("%w: Clear: %v", ErrStorage, err)
	}
	return nil
}

func decodeState(sessionID string, raw map[string]string) (*domain.SessionState, error) {
	step, ok := raw[domain.KeyBookingStep]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedState, domain.KeyBookingStep)
	}

	phase := domain.Phase(step)
	if !phase.IsValid() {
		return nil, fmt.Errorf("%w: unknown phase %q", ErrMalformedState, step)
	}

	data, ok := raw[domain.KeyBookingData]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedState, domain.KeyBookingData)
	}

	var draft storedDraft
	if err := json.Unmarshal([]byte(data), &draft); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedState, domain.KeyBookingData, err)
	}

	draft.BookingDraft.Normalize()
	if err := draft.BookingDraft.CheckShape(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedState, domain.KeyBookingData, err)
	}

	if draft.AttemptID == "" {
		return nil, fmt.Errorf("%w: missing attempt id", ErrMalformedState)
	}

	rawTour, ok := raw[domain.KeySelectedTour]
	if !ok {
		return nil, fmt.Errorf("%w: missing %s", ErrMalformedState, domain.KeySelectedTour)
	}

	var tour storedTour
	if err := json.Unmarshal([]byte(rawTour), &tour); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrMalformedState, domain.KeySelectedTour, err)
	}

	if tour.ID <= 0 || tour.MaxGuests <= 0 {
		return nil, fmt.Errorf("%w: %s: incomplete tour snapshot", ErrMalformedState, domain.KeySelectedTour)
	}

	return &domain.SessionState{
		SessionID: sessionID,
		AttemptID: draft.AttemptID,
		Phase:     phase,
		Draft:     draft.BookingDraft,
		Tour:      tour.toDomain(),
		UpdatedAt: draft.UpdatedAt,
	}, nil
}

func validateSessionID(id string) error {
	if id == "" || len(id) > domain.MaxSessionIDLength {
		return ErrInvalidSessionID
	}
	return nil
}
