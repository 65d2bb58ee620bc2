package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/pkg/dbmetrics"
	"github.com/guidely/GuideBookingService/pkg/psqlbuilder"
)

// bookingColumns полный список колонок таблицы bookings в порядке сканирования
var bookingColumns = []string{
	"id",
	"booking_number",
	"client_id",
	"guide_id",
	"service_id",
	"start_date",
	"start_time",
	"end_time",
	"participants",
	"total_price_cents",
	"deposit_cents",
	"amount_paid_cents",
	"amount_due_cents",
	"payment_type",
	"status",
	"client_name",
	"client_email",
	"client_phone",
	"cancellation_fee_cents",
	"refund_cents",
	"confirmed_at",
	"completed_at",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий для работы с бронированиями
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Create создает новое бронирование.
// Если в контексте передана активная транзакция, использует её - при создании
// бронирования вместе с резервированием мест это обязательно (см. usecase create_booking).
func (r *Repository) Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("bookings").
		Columns(
			"booking_number",
			"client_id",
			"guide_id",
			"service_id",
			"start_date",
			"start_time",
			"end_time",
			"participants",
			"total_price_cents",
			"deposit_cents",
			"amount_paid_cents",
			"amount_due_cents",
			"payment_type",
			"status",
			"client_name",
			"client_email",
			"client_phone",
		).
		Values(
			booking.BookingNumber,
			booking.ClientID,
			booking.GuideID,
			booking.ServiceID,
			booking.StartDate,
			booking.StartTime,
			booking.EndTime,
			booking.Participants,
			booking.TotalPriceCents,
			booking.DepositCents,
			booking.AmountPaidCents,
			booking.AmountDueCents,
			booking.PaymentType,
			booking.Status,
			booking.ClientName,
			booking.ClientEmail,
			booking.ClientPhone,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Create - build insert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&booking.ID,
		&createdAt,
		&updatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("%w: Create - execute insert: %v", ErrExecQuery, err)
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return booking, nil
}

// GetByID получает бронирование по ID
func (r *Repository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})

	// Внутри транзакции блокируем строку: переходы статуса дальше делаются через CAS,
	// но блокировка уменьшает число сериализационных конфликтов
	if dbmetrics.IsInTransaction(ctx) {
		selectBuilder = selectBuilder.Suffix("FOR UPDATE")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByID - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// GetByClientID получает список бронирований клиента
// Опционально фильтрует по статусу
func (r *Repository) GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"client_id": clientID}).
		OrderBy("start_date DESC, start_time DESC")

	if status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *status})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByClientID - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// GetByGuideWithFilter получает бронирования гида с гибкой фильтрацией:
// по услуге, периоду, статусу и включению отмененных бронирований
func (r *Repository) GetByGuideWithFilter(ctx context.Context, filter domain.GuideBookingsFilter) ([]*domain.Booking, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"guide_id": filter.GuideID})

	if filter.ServiceID != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"service_id": *filter.ServiceID})
	}

	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"start_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"start_date": *filter.EndDate})
	}

	if filter.Status != nil {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": *filter.Status})
	} else if !filter.IncludeInactive {
		inactiveStatusStrings := make([]string, len(domain.InactiveStatuses))
		for i, s := range domain.InactiveStatuses {
			inactiveStatusStrings[i] = string(s)
		}
		selectBuilder = selectBuilder.Where(squirrel.NotEq{"status": inactiveStatusStrings})
	}

	// Для одного дня сортируем по времени начала, для периода - сначала новые
	if filter.StartDate != nil && filter.EndDate != nil && filter.StartDate.Equal(*filter.EndDate) {
		selectBuilder = selectBuilder.OrderBy("start_time ASC")
	} else {
		selectBuilder = selectBuilder.OrderBy("start_date DESC, start_time DESC")
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuideWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuideWithFilter - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	return scanBookings(rows)
}

// Confirm переводит бронирование pending -> confirmed и ставит confirmed_at.
// CAS по статусу: если бронирование уже не pending, возвращает ErrStatusConflict.
func (r *Repository) Confirm(ctx context.Context, id int64) error {
	return r.transition(ctx, id,
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusConfirmed).
			Set("confirmed_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "status": domain.StatusPending}),
		"Confirm",
	)
}

// MarkInProgress переводит бронирование confirmed -> in_progress (заселение).
// Ровно один из конкурентных вызовов выигрывает CAS, остальные получают ErrStatusConflict.
func (r *Repository) MarkInProgress(ctx context.Context, id int64) error {
	return r.transition(ctx, id,
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusInProgress).
			Where(squirrel.Eq{"id": id, "status": domain.StatusConfirmed}),
		"MarkInProgress",
	)
}

// RevertToConfirmed компенсирующий переход in_progress -> confirmed.
// Используется, когда списание остатка после заселения не прошло.
func (r *Repository) RevertToConfirmed(ctx context.Context, id int64) error {
	return r.transition(ctx, id,
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusConfirmed).
			Where(squirrel.Eq{"id": id, "status": domain.StatusInProgress}),
		"RevertToConfirmed",
	)
}

// Complete переводит бронирование in_progress -> completed и ставит completed_at
func (r *Repository) Complete(ctx context.Context, id int64) error {
	return r.transition(ctx, id,
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusCompleted).
			Set("completed_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{"id": id, "status": domain.StatusInProgress}),
		"Complete",
	)
}

// Dispute переводит бронирование в disputed из любого активного нефинального статуса
func (r *Repository) Dispute(ctx context.Context, id int64) error {
	return r.transition(ctx, id,
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusDisputed).
			Where(squirrel.Eq{
				"id":     id,
				"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed), string(domain.StatusInProgress)},
			}),
		"Dispute",
	)
}

// Cancel переводит бронирование pending/confirmed -> cancelled, фиксируя
// комиссию за отмену и сумму возврата
func (r *Repository) Cancel(ctx context.Context, id int64, feeCents, refundCents int64) error {
	return r.transition(ctx, id,
		psqlbuilder.Update("bookings").
			Set("status", domain.StatusCancelled).
			Set("cancellation_fee_cents", feeCents).
			Set("refund_cents", refundCents).
			Set("cancelled_at", squirrel.Expr("NOW()")).
			Where(squirrel.Eq{
				"id":     id,
				"status": []string{string(domain.StatusPending), string(domain.StatusConfirmed)},
			}),
		"Cancel",
	)
}

// UpdatePaymentAmounts обновляет amount_paid/amount_due после успешного платежа.
// Суммы меняются только здесь и только оркестратором платежей.
func (r *Repository) UpdatePaymentAmounts(ctx context.Context, id int64, paidCents, dueCents int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("bookings").
		Set("amount_paid_cents", paidCents).
		Set("amount_due_cents", dueCents).
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentAmounts - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentAmounts - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: UpdatePaymentAmounts - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// Delete физически удаляет бронирование.
// Единственное допустимое применение - компенсирующее удаление pending-строки,
// по которой не прошла авторизация депозита. Оплаченные бронирования не удаляются.
func (r *Repository) Delete(ctx context.Context, id int64) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Delete - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Delete - execute delete: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Delete - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrBookingNotFound
	}

	return nil
}

// transition выполняет CAS-переход статуса.
// 0 обновленных строк означает либо отсутствие бронирования (ErrBookingNotFound),
// либо проигранную гонку переходов (ErrStatusConflict).
func (r *Repository) transition(ctx context.Context, id int64, builder squirrel.UpdateBuilder, op string) error {
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
		if exists, err := r.exists(ctx, id); err == nil && !exists {
			return ErrBookingNotFound
		}
		return ErrStatusConflict
	}

	return nil
}

func (r *Repository) exists(ctx context.Context, id int64) (bool, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select("1").
		From("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return false, fmt.Errorf("%w: exists - build select query: %v", ErrBuildQuery, err)
	}

	var one int
	err = executor.QueryRowContext(ctx, query, args...).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("%w: exists - scan: %v", ErrScanRow, err)
	}

	return true, nil
}

// rowScanner общий интерфейс *sql.Row и *sql.Rows
type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.BookingNumber,
		&booking.ClientID,
		&booking.GuideID,
		&booking.ServiceID,
		&booking.StartDate,
		&booking.StartTime,
		&booking.EndTime,
		&booking.Participants,
		&booking.TotalPriceCents,
		&booking.DepositCents,
		&booking.AmountPaidCents,
		&booking.AmountDueCents,
		&booking.PaymentType,
		&booking.Status,
		&booking.ClientName,
		&booking.ClientEmail,
		&booking.ClientPhone,
		&booking.CancellationFeeCents,
		&booking.RefundCents,
		&booking.ConfirmedAt,
		&booking.CompletedAt,
		&booking.CancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

// scanBookings сканирует результаты запроса в слайс бронирований
func scanBookings(rows *sql.Rows) ([]*domain.Booking, error) {
	bookings := make([]*domain.Booking, 0)

	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: scanBookings - scan row: %v", ErrScanRow, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: scanBookings - rows error: %v", ErrScanRow, err)
	}

	return bookings, nil
}
