package reconciliation

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TourBookingService/internal/domain"
	"github.com/m04kA/SMC-TourBookingService/pkg/psqlbuilder"
)

const table = "payment_reconciliations"

var columns = []string{
	"id",
	"session_id",
	"attempt_id",
	"tour_id",
	"method",
	"transaction_id",
	"payer_email",
	"payer_name",
	"amount",
	"currency",
	"booking_payload",
	"failure_message",
	"status",
	"resolution_note",
	"resolved_at",
	"created_at",
	"updated_at",
}

// Repository журнал списаний, по которым не удалось создать бронирование
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create сохраняет запись о сверке
// Повторная запись того же платежа обновляет сообщение об ошибке, а не создает дубль
func (r *Repository) Create(ctx context.Context, rec *domain.Reconciliation) (*domain.Reconciliation, error) {
	query, args, err := psqlbuilder.Insert(table).
		Columns(
			"session_id",
			"attempt_id",
			"tour_id",
			"method",
			"transaction_id",
			"payer_email",
			"payer_name",
			"amount",
			"currency",
			"booking_payload",
			"failure_message",
			"status",
		).
		Values(
			rec.SessionID,
			rec.AttemptID,
			rec.TourID,
			rec.Method,
			rec.TransactionID,
			rec.PayerEmail,
			rec.PayerName,
			rec.Amount,
			rec.Currency,
			rec.BookingPayload,
			rec.FailureMessage,
			domain.ReconciliationPending,
		).
		Suffix("ON CONFLICT (method, transaction_id) DO UPDATE SET failure_message = EXCLUDED.failure_message, updated_at = NOW() RETURNING id, status, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&rec.ID,
		&rec.Status,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time

	return rec, nil
}

// GetByID получает запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Reconciliation, error) {
	query, args, err := psqlbuilder.Select(columns...).
		From(table).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	rec, err := scanReconciliation(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrReconciliationNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan reconciliation: %v", ErrScanRow, err)
	}

	return rec, nil
}

// List получает записи, опционально только с указанным статусом; старые первыми
func (r *Repository) List(ctx context.Context, status *domain.ReconciliationStatus, limit uint64) ([]*domain.Reconciliation, error) {
	builder := psqlbuilder.Select(columns...).
		From(table).
		OrderBy("created_at ASC", "id ASC")

	if status != nil {
		builder = builder.Where(squirrel.Eq{"status": *status})
	}
	if limit > 0 {
		builder = builder.Limit(limit)
	}

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: List - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: List - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	result := make([]*domain.Reconciliation, 0)
	for rows.Next() {
		rec, err := scanReconciliation(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: List - scan reconciliation: %v", ErrScanRow, err)
		}
		result = append(result, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: List - rows iteration: %v", ErrScanRow, err)
	}

	return result, nil
}

// Resolve помечает ожидающую запись разобранной
// Если записи нет или она уже разобрана, возвращает ErrReconciliationNotFound
func (r *Repository) Resolve(ctx context.Context, id int64, note string) error {
	query, args, err := psqlbuilder.Update(table).
		Set("status", domain.ReconciliationResolved).
		Set("resolution_note", note).
		Set("resolved_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": domain.ReconciliationPending}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Resolve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Resolve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Resolve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrReconciliationNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanReconciliation(row rowScanner) (*domain.Reconciliation, error) {
	var rec domain.Reconciliation
	var note sql.NullString
	var resolvedAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&rec.ID,
		&rec.SessionID,
		&rec.AttemptID,
		&rec.TourID,
		&rec.Method,
		&rec.TransactionID,
		&rec.PayerEmail,
		&rec.PayerName,
		&rec.Amount,
		&rec.Currency,
		&rec.BookingPayload,
		&rec.FailureMessage,
		&rec.Status,
		&note,
		&resolvedAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if note.Valid {
		rec.ResolutionNote = &note.String
	}
	if resolvedAt.Valid {
		t := resolvedAt.Time
		rec.ResolvedAt = &t
	}
	rec.CreatedAt = createdAt.Time
	rec.UpdatedAt = updatedAt.Time

	return &rec, nil
}
