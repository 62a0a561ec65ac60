package reconciliations

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	reconciliationRepo "github.com/m04kA/SMC-TourBookingService/internal/infra/storage/reconciliation"
	"github.com/m04kA/SMC-TourBookingService/internal/service/reconciliations/models"
	"github.com/m04kA/SMC-TourBookingService/pkg/ptr"
)

const (
	defaultListLimit = 100
	maxListLimit     = 500
	maxNoteLength    = 2000
)

// Service сервис разбора списаний без бронирования
type Service struct {
	repo   ReconciliationRepository
	logger Logger
}

// NewService создает новый экземпляр сервиса
func NewService(repo ReconciliationRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// List получает записи сверки; по умолчанию только ожидающие разбора
func (s *Service) List(ctx context.Context, req *models.ListRequest) (*models.ReconciliationListResponse, error) {
	status := domain.ReconciliationPending
	statusFilter := &status

	if req.Status != nil {
		switch domain.ReconciliationStatus(*req.Status) {
		case domain.ReconciliationPending, domain.ReconciliationResolved:
			status = domain.ReconciliationStatus(*req.Status)
		case "all":
			statusFilter = nil
		default:
			return nil, fmt.Errorf("%w: unknown status %q", ErrInvalidInput, *req.Status)
		}
	}

	limit := req.Limit
	if limit == 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	recs, err := s.repo.List(ctx, statusFilter, limit)
	if err != nil {
		s.logger.Error("List: repository error: %v", err)
		return nil, fmt.Errorf("%w: List - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("List: fetched %d reconciliations", len(recs))
	return models.FromDomainList(recs), nil
}

// ListPending ожидающие разбора записи, старые первыми
func (s *Service) ListPending(ctx context.Context, limit uint64) (*models.ReconciliationListResponse, error) {
	return s.List(ctx, &models.ListRequest{
		Status: ptr.Ptr(string(domain.ReconciliationPending)),
		Limit:  limit,
	})
}

// Resolve помечает запись разобранной с заметкой поддержки
func (s *Service) Resolve(ctx context.Context, req *models.ResolveRequest) (*models.ReconciliationResponse, error) {
	note := strings.TrimSpace(req.Note)
	if req.ID <= 0 || note == "" || len(note) > maxNoteLength {
		return nil, fmt.Errorf("%w: id and a non-empty note are required", ErrInvalidInput)
	}

	rec, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		if errors.Is(err, reconciliationRepo.ErrReconciliationNotFound) {
			return nil, ErrReconciliationNotFound
		}
		s.logger.Error("Resolve: repository error for id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: Resolve - get: %v", ErrInternal, err)
	}

	if !rec.IsPending() {
		return nil, ErrAlreadyResolved
	}

	if err := s.repo.Resolve(ctx, req.ID, note); err != nil {
		// запись успели разобрать параллельно
		if errors.Is(err, reconciliationRepo.ErrReconciliationNotFound) {
			return nil, ErrAlreadyResolved
		}
		s.logger.Error("Resolve: repository error for id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: Resolve - update: %v", ErrInternal, err)
	}

	resolved, err := s.repo.GetByID(ctx, req.ID)
	if err != nil {
		s.logger.Error("Resolve: failed to reload id=%d: %v", req.ID, err)
		return nil, fmt.Errorf("%w: Resolve - reload: %v", ErrInternal, err)
	}

	s.logger.Info("Resolve: reconciliation id=%d for transaction=%s resolved", req.ID, rec.TransactionID)
	resp := models.FromDomain(resolved)
	return &resp, nil
}
