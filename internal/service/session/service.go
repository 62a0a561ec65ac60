package session

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	sessionRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/session"
	"github.com/m04kA/SMC-TourBookingService/internal/integrations/tourcatalog"
	"github.com/m04kA/SMC-TourBookingService/internal/service/session/models"
)

// метка в метриках для сессии, которой еще нет
const phaseNone = "none"

// Options параметры контроллера
type Options struct {
	TaxRate           float64
	Currency          string
	RecoveryNoticeTTL time.Duration
	SuspendGrace      time.Duration
}

// Service контроллер сессии бронирования
// Все операции над одной сессией выполняются последовательно
type Service struct {
	repo    SessionRepository
	catalog TourCatalogClient
	mounts  WidgetUnmounter
	clock   TimeProvider
	metrics MetricsCollector
	logger  Logger
	opts    Options

	locks *locks

	suspendMu sync.Mutex
	suspended map[string]*suspension
}

type suspension struct {
	timer *time.Timer
}

// NewService создает новый экземпляр контроллера
func NewService(
	repo SessionRepository,
	catalog TourCatalogClient,
	mounts WidgetUnmounter,
	clock TimeProvider,
	metrics MetricsCollector,
	logger Logger,
	opts Options,
) *Service {
	if opts.Currency == "" {
		opts.Currency = domain.DefaultCurrency
	}
	if opts.RecoveryNoticeTTL <= 0 {
		opts.RecoveryNoticeTTL = domain.DefaultRecoveryNoticeTTL
	}

	return &Service{
		repo:      repo,
		catalog:   catalog,
		mounts:    mounts,
		clock:     clock,
		metrics:   metrics,
		logger:    logger,
		opts:      opts,
		locks:     newLocks(),
		suspended: make(map[string]*suspension),
	}
}

// Mount начинает или восстанавливает сессию вкладки для тура
// Корректное сохраненное состояние того же тура восстанавливается вместе с шагом,
// поврежденное молча удаляется
func (s *Service) Mount(ctx context.Context, sessionID string, tourID int64) (*models.View, error) {
	if tourID <= 0 {
		return nil, fmt.Errorf("%w: tour id must be positive", ErrInvalidInput)
	}

	var view *models.View
	err := s.withLock(sessionID, func() error {
		state, err := s.repo.Load(ctx, sessionID)
		switch {
		case err == nil && state.Tour.ID == tourID:
			// за время отсутствия черновик мог устареть (дата отправления прошла)
			if state.InPayment() {
				if verr := state.Draft.Validate(&state.Tour, s.clock.Now()); verr != nil {
					s.logger.Info("Mount: restored draft of session=%s no longer valid (%v), back to details", sessionID, verr)
					s.mounts.Unmount(ctx, sessionID)
					if err := s.transition(ctx, state, domain.PhaseDetails); err != nil {
						return err
					}
				}
			}

			s.logger.Info("Mount: restored session=%s in phase=%s for tour=%d", sessionID, state.Phase, tourID)
			view = s.buildView(state)
			view.Restored = true
			view.Notice = &domain.RecoveryNotice{
				Message:      domain.RecoveryNoticeMessage,
				DismissAfter: s.opts.RecoveryNoticeTTL,
			}
			return nil

		case err == nil:
			s.logger.Info("Mount: session=%s switches from tour=%d to tour=%d, starting over", sessionID, state.Tour.ID, tourID)
			s.discard(ctx, sessionID)

		case errors.Is(err, sessionRepo.ErrSessionNotFound):

		case errors.Is(err, sessionRepo.ErrMalformedState):
			s.logger.Warn("Mount: ignoring malformed state of session=%s: %v", sessionID, err)
			s.discard(ctx, sessionID)

		default:
			return s.repoError("Mount", sessionID, err)
		}

		tour, err := s.catalog.GetTour(ctx, tourID)
		if err != nil {
			if errors.Is(err, tourcatalog.ErrTourNotFound) {
				return ErrTourNotFound
			}
			s.logger.Error("Mount: tour catalog error for tour=%d: %v", tourID, err)
			return fmt.Errorf("%w: %v", ErrCatalogUnavailable, err)
		}

		state = &domain.SessionState{
			SessionID: sessionID,
			AttemptID: uuid.NewString(),
			Phase:     domain.PhaseDetails,
			Draft:     domain.NewDraft(),
			Tour:      *tour,
			UpdatedAt: s.clock.Now(),
		}
		if err := s.repo.Save(ctx, state); err != nil {
			return s.repoError("Mount", sessionID, err)
		}

		s.observe(phaseNone, string(domain.PhaseDetails))
		s.logger.Info("Mount: started session=%s attempt=%s for tour=%d", sessionID, state.AttemptID, tourID)

		view = s.buildView(state)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Get возвращает текущее представление сессии
func (s *Service) Get(ctx context.Context, sessionID string) (*models.View, error) {
	var view *models.View
	err := s.withLock(sessionID, func() error {
		state, err := s.load(ctx, "Get", sessionID)
		if err != nil {
			return err
		}
		view = s.buildView(state)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// UpdateDraft заменяет черновик; доступно только на шаге details
func (s *Service) UpdateDraft(ctx context.Context, sessionID string, draft domain.BookingDraft) (*models.View, error) {
	draft.Normalize()
	if err := draft.CheckShape(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidDraft, err)
	}

	var view *models.View
	err := s.withLock(sessionID, func() error {
		state, err := s.load(ctx, "UpdateDraft", sessionID)
		if err != nil {
			return err
		}

		if state.Phase != domain.PhaseDetails {
			return fmt.Errorf("%w: draft is locked in phase %s", ErrWrongPhase, state.Phase)
		}

		state.Draft = draft
		state.UpdatedAt = s.clock.Now()
		if err := s.repo.Save(ctx, state); err != nil {
			return s.repoError("UpdateDraft", sessionID, err)
		}

		view = s.buildView(state)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Proceed переход details -> payment, если черновик проходит проверку
// Повторный вызов на шаге payment ничего не меняет
func (s *Service) Proceed(ctx context.Context, sessionID string) (*models.View, error) {
	var view *models.View
	err := s.withLock(sessionID, func() error {
		state, err := s.load(ctx, "Proceed", sessionID)
		if err != nil {
			return err
		}

		if state.InPayment() {
			view = s.buildView(state)
			return nil
		}

		if err := state.Draft.Validate(&state.Tour, s.clock.Now()); err != nil {
			return fmt.Errorf("%w: %v", ErrDraftIncomplete, err)
		}

		if err := s.transition(ctx, state, domain.PhasePayment); err != nil {
			return err
		}

		s.logger.Info("Proceed: session=%s moved to payment", sessionID)
		view = s.buildView(state)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Back переход payment -> details, черновик сохраняется
func (s *Service) Back(ctx context.Context, sessionID string) (*models.View, error) {
	var view *models.View
	err := s.withLock(sessionID, func() error {
		state, err := s.load(ctx, "Back", sessionID)
		if err != nil {
			return err
		}

		if state.InPayment() {
			s.mounts.Unmount(ctx, sessionID)
			if err := s.transition(ctx, state, domain.PhaseDetails); err != nil {
				return err
			}
		}

		view = s.buildView(state)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return view, nil
}

// Cancel отменяет бронирование с любого шага и очищает сохраненное состояние
// Отмена несуществующей сессии не ошибка
func (s *Service) Cancel(ctx context.Context, sessionID string) (*models.CancelResult, error) {
	err := s.withLock(sessionID, func() error {
		state, err := s.repo.Load(ctx, sessionID)
		from := phaseNone
		if err == nil {
			from = string(state.Phase)
		} else if errors.Is(err, sessionRepo.ErrInvalidSessionID) {
			return ErrInvalidInput
		}

		s.mounts.Unmount(ctx, sessionID)
		if err := s.repo.Clear(ctx, sessionID); err != nil {
			return s.repoError("Cancel", sessionID, err)
		}

		s.observe(from, string(domain.OutcomeCancelled))
		s.logger.Info("Cancel: session=%s cancelled from phase=%s", sessionID, from)
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &models.CancelResult{
		SessionID: sessionID,
		Outcome:   domain.OutcomeCancelled,
	}, nil
}

// Suspend вкладка скрыта: если она не вернется за SuspendGrace, сессия очищается
// Любая следующая операция над сессией отменяет очистку
func (s *Service) Suspend(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	if s.opts.SuspendGrace <= 0 {
		return s.Dispose(ctx, sessionID)
	}

	s.suspendMu.Lock()
	defer s.suspendMu.Unlock()

	if prev, ok := s.suspended[sessionID]; ok {
		prev.timer.Stop()
	}

	susp := &suspension{}
	s.suspended[sessionID] = susp
	susp.timer = time.AfterFunc(s.opts.SuspendGrace, func() {
		s.expire(sessionID, susp)
	})

	s.logger.Info("Suspend: session=%s will be cleared in %s", sessionID, s.opts.SuspendGrace)
	return nil
}

// Dispose вкладка закрыта: сессия очищается сразу, ошибки только логируются
func (s *Service) Dispose(ctx context.Context, sessionID string) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	return s.withLock(sessionID, func() error {
		s.mounts.Unmount(ctx, sessionID)
		if err := s.repo.Clear(ctx, sessionID); err != nil {
			s.logger.Warn("Dispose: failed to clear session=%s: %v", sessionID, err)
			return nil
		}
		s.logger.Info("Dispose: session=%s cleared", sessionID)
		return nil
	})
}

// Finish терминальная очистка после оплаты
// Очищает сессию, только если она все еще относится к попытке attemptID
func (s *Service) Finish(ctx context.Context, sessionID, attemptID string, outcome domain.Outcome) error {
	return s.withLock(sessionID, func() error {
		state, err := s.repo.Load(ctx, sessionID)
		if err != nil {
			if errors.Is(err, sessionRepo.ErrSessionNotFound) {
				return nil
			}
			if !errors.Is(err, sessionRepo.ErrMalformedState) {
				return s.repoError("Finish", sessionID, err)
			}
		} else if !state.SameAttempt(attemptID) {
			s.logger.Info("Finish: session=%s already moved to attempt=%s, keeping it", sessionID, state.AttemptID)
			return nil
		}

		from := phaseNone
		if state != nil {
			from = string(state.Phase)
		}

		s.mounts.Unmount(ctx, sessionID)
		if err := s.repo.Clear(ctx, sessionID); err != nil {
			return s.repoError("Finish", sessionID, err)
		}

		s.observe(from, string(outcome))
		s.logger.Info("Finish: session=%s attempt=%s finished with outcome=%s", sessionID, attemptID, outcome)
		return nil
	})
}

// RunInPayment выполняет fn под блокировкой сессии, если она на шаге payment
// Пустой attemptID принимает любую попытку
func (s *Service) RunInPayment(ctx context.Context, sessionID, attemptID string, fn func(state *domain.SessionState) error) error {
	return s.withLock(sessionID, func() error {
		state, err := s.load(ctx, "RunInPayment", sessionID)
		if err != nil {
			return err
		}

		if attemptID != "" && !state.SameAttempt(attemptID) {
			return fmt.Errorf("%w: expected %s, current %s", ErrStaleAttempt, attemptID, state.AttemptID)
		}

		if !state.InPayment() {
			return fmt.Errorf("%w: session is in phase %s", ErrWrongPhase, state.Phase)
		}

		return fn(state)
	})
}

// Quote считает сумму к оплате для состояния
func (s *Service) Quote(state *domain.SessionState) domain.Quote {
	return domain.CalculateQuote(&state.Tour, &state.Draft, s.opts.TaxRate, s.opts.Currency)
}

func (s *Service) withLock(sessionID string, fn func() error) error {
	if err := validateSessionID(sessionID); err != nil {
		return err
	}

	s.resume(sessionID)

	entry := s.locks.acquire(sessionID)
	defer s.locks.release(sessionID, entry)

	return fn()
}

// load читает состояние; поврежденное состояние удаляется и считается отсутствующим
func (s *Service) load(ctx context.Context, op, sessionID string) (*domain.SessionState, error) {
	state, err := s.repo.Load(ctx, sessionID)
	if err == nil {
		return state, nil
	}

	if errors.Is(err, sessionRepo.ErrMalformedState) {
		s.logger.Warn("%s: ignoring malformed state of session=%s: %v", op, sessionID, err)
		s.discard(ctx, sessionID)
		return nil, ErrSessionNotFound
	}

	return nil, s.repoError(op, sessionID, err)
}

func (s *Service) transition(ctx context.Context, state *domain.SessionState, to domain.Phase) error {
	from := state.Phase
	state.Phase = to
	state.UpdatedAt = s.clock.Now()

	if err := s.repo.Save(ctx, state); err != nil {
		state.Phase = from
		return s.repoError("transition", state.SessionID, err)
	}

	s.observe(string(from), string(to))
	return nil
}

func (s *Service) discard(ctx context.Context, sessionID string) {
	s.mounts.Unmount(ctx, sessionID)
	if err := s.repo.Clear(ctx, sessionID); err != nil {
		s.logger.Warn("failed to clear session=%s: %v", sessionID, err)
	}
}

func (s *Service) repoError(op, sessionID string, err error) error {
	switch {
	case errors.Is(err, sessionRepo.ErrSessionNotFound):
		return ErrSessionNotFound
	case errors.Is(err, sessionRepo.ErrInvalidSessionID):
		return ErrInvalidInput
	default:
		s.logger.Error("%s: repository error for session=%s: %v", op, sessionID, err)
		return fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
}

func (s *Service) buildView(state *domain.SessionState) *models.View {
	view := &models.View{
		SessionID: state.SessionID,
		AttemptID: state.AttemptID,
		Phase:     state.Phase,
		Draft:     state.Draft,
		Tour:      state.Tour,
		Quote:     s.Quote(state),
		UpdatedAt: state.UpdatedAt,
	}

	if err := state.Draft.Validate(&state.Tour, s.clock.Now()); err != nil {
		view.Blocker = err.Error()
	} else {
		view.CanProceed = true
	}

	return view
}

// resume отменяет отложенную очистку скрытой вкладки
func (s *Service) resume(sessionID string) {
	s.suspendMu.Lock()
	defer s.suspendMu.Unlock()

	if susp, ok := s.suspended[sessionID]; ok {
		susp.timer.Stop()
		delete(s.suspended, sessionID)
	}
}

func (s *Service) expire(sessionID string, susp *suspension) {
	s.suspendMu.Lock()
	current, ok := s.suspended[sessionID]
	if !ok || current != susp {
		s.suspendMu.Unlock()
		return
	}
	delete(s.suspended, sessionID)
	s.suspendMu.Unlock()

	ctx := context.Background()
	entry := s.locks.acquire(sessionID)
	defer s.locks.release(sessionID, entry)

	s.discard(ctx, sessionID)
	s.logger.Info("Suspend: session=%s stayed hidden, cleared", sessionID)
}

func (s *Service) observe(from, to string) {
	if s.metrics != nil {
		s.metrics.ObserveTransition(from, to)
	}
}

func validateSessionID(sessionID string) error {
	if sessionID == "" || len(sessionID) > domain.MaxSessionIDLength {
		return fmt.Errorf("%w: invalid session id", ErrInvalidInput)
	}
	return nil
}
