package payment

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/pkg/dbmetrics"
	"github.com/guidely/GuideBookingService/pkg/psqlbuilder"
)

// pqUniqueViolation код ошибки PostgreSQL для нарушения уникальности
const pqUniqueViolation = "23505"

var recordColumns = []string{
	"id",
	"booking_id",
	"leg",
	"amount_cents",
	"refunded_cents",
	"intent_id",
	"status",
	"idempotency_key",
	"created_at",
	"updated_at",
}

// Repository репозиторий платежных записей.
// Уникальный индекс по idempotency_key закрывает двойную авторизацию
// одного и того же leg на уровне БД.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория платежей
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает платежную запись.
// Нарушение уникальности idempotency_key транслируется в ErrDuplicateKey,
// чтобы оркестратор мог перечитать существующую запись вместо второго списания.
func (r *Repository) Create(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("payment_records").
		Columns("booking_id", "leg", "amount_cents", "refunded_cents", "intent_id", "status", "idempotency_key").
		Values(record.BookingID, record.Leg, record.AmountCents, record.RefundedCents, record.IntentID, record.Status, record.IdempotencyKey).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&record.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == pqUniqueViolation {
			return nil, ErrDuplicateKey
		}
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return record, nil
}

// GetByID получает платежную запись по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.PaymentRecord, error) {
	return r.getOne(ctx, squirrel.Eq{"id": id}, "GetByID")
}

// GetByBookingAndLeg получает платежную запись по (бронирование, leg)
func (r *Repository) GetByBookingAndLeg(ctx context.Context, bookingID int64, leg domain.PaymentLeg) (*domain.PaymentRecord, error) {
	return r.getOne(ctx, squirrel.Eq{"booking_id": bookingID, "leg": leg}, "GetByBookingAndLeg")
}

// ListByBooking получает все платежные записи бронирования (депозит первым)
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64) ([]*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recordColumns...).
		From("payment_records").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("id ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	records := make([]*domain.PaymentRecord, 0)
	for rows.Next() {
		record, err := scanRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan row: %v", ErrScanRow, err)
		}
		records = append(records, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return records, nil
}

// MarkCaptured помечает запись как captured и сохраняет intent id процессора
func (r *Repository) MarkCaptured(ctx context.Context, id int64, intentID string) error {
	return r.updateStatus(ctx, id,
		psqlbuilder.Update("payment_records").
			Set("status", domain.PaymentCaptured).
			Set("intent_id", intentID).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id}),
		"MarkCaptured",
	)
}

// MarkFailed помечает запись как failed (отклоненная авторизация)
func (r *Repository) MarkFailed(ctx context.Context, id int64) error {
	return r.updateStatus(ctx, id,
		psqlbuilder.Update("payment_records").
			Set("status", domain.PaymentFailed).
			Set("updated_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id}),
		"MarkFailed",
	)
}

// AddRefund добавляет возврат к записи. Условие WHERE не дает вернуть
// больше, чем было списано; при полном возврате статус становится refunded.
func (r *Repository) AddRefund(ctx context.Context, id int64, amountCents int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("payment_records").
		Set("refunded_cents", squirrel.Expr("refunded_cents + ?", amountCents)).
		Set("status", squirrel.Expr(
			"CASE WHEN refunded_cents + ? >= amount_cents THEN 'refunded' ELSE status END", amountCents)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{"id": id, "status": []string{string(domain.PaymentCaptured), string(domain.PaymentRefunded)}}).
		Where(squirrel.Expr("refunded_cents + ? <= amount_cents", amountCents)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: AddRefund - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: AddRefund - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: AddRefund - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		if _, err := r.GetByID(ctx, id); err != nil {
			return err
		}
		return ErrRefundExceedsCaptured
	}

	return nil
}

func (r *Repository) getOne(ctx context.Context, where squirrel.Eq, op string) (*domain.PaymentRecord, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(recordColumns...).
		From("payment_records").
		Where(where).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: %s - build select query: %v", ErrBuildQuery, op, err)
	}

	record, err := scanRecord(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrRecordNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s - scan record: %v", ErrScanRow, op, err)
	}

	return record, nil
}

func (r *Repository) updateStatus(ctx context.Context, id int64, builder squirrel.UpdateBuilder, op string) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := builder.ToSql()
	if err != nil {
		return fmt.Errorf("%w: %s - build update query: %v", ErrBuildQuery, op, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: %s - execute update: %v", ErrExecQuery, op, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %s - get rows affected: %v", ErrExecQuery, op, err)
	}

	if rowsAffected == 0 {
		return ErrRecordNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanRecord(row rowScanner) (*domain.PaymentRecord, error) {
	var record domain.PaymentRecord
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&record.ID,
		&record.BookingID,
		&record.Leg,
		&record.AmountCents,
		&record.RefundedCents,
		&record.IntentID,
		&record.Status,
		&record.IdempotencyKey,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	record.CreatedAt = createdAt.Time
	record.UpdatedAt = updatedAt.Time

	return &record, nil
}
