package availability

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/pkg/dbmetrics"
	"github.com/guidely/GuideBookingService/pkg/psqlbuilder"
)

var slotColumns = []string{
	"id",
	"guide_id",
	"service_id",
	"slot_date",
	"total_capacity",
	"reserved_count",
	"blocked",
	"price_override_cents",
	"created_at",
	"updated_at",
}

// Repository репозиторий счетчиков вместимости (гид, услуга, дата).
// Единственное разделяемое изменяемое состояние сервиса: все изменения
// reserved_count выполняются условными UPDATE, закрывающими гонку
// одновременных резервирований на уровне БД.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория доступности
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByDate получает слот по ключу (гид, услуга, дата)
func (r *Repository) GetByDate(ctx context.Context, guideID, serviceID int64, date string) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{
			"guide_id":   guideID,
			"service_id": serviceID,
			"slot_date":  date,
		}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - build select query: %v", ErrBuildQuery, err)
	}

	slot, err := scanSlot(executor.QueryRowContext(ctx, query, args...))
	if err == sql.ErrNoRows {
		return nil, ErrSlotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByDate - scan slot: %v", ErrScanRow, err)
	}

	return slot, nil
}

// GetRange получает все слоты (гид, услуга) в диапазоне дат включительно
func (r *Repository) GetRange(ctx context.Context, guideID, serviceID int64, from, to string) ([]*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Select(slotColumns...).
		From("availability_slots").
		Where(squirrel.Eq{
			"guide_id":   guideID,
			"service_id": serviceID,
		}).
		Where(squirrel.GtOrEq{"slot_date": from}).
		Where(squirrel.LtOrEq{"slot_date": to}).
		OrderBy("slot_date ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetRange - execute query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	slots := make([]*domain.AvailabilitySlot, 0)
	for rows.Next() {
		slot, err := scanSlot(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: GetRange - scan row: %v", ErrScanRow, err)
		}
		slots = append(slots, slot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetRange - rows error: %v", ErrScanRow, err)
	}

	return slots, nil
}

// EnsureDefault создает слот с дефолтной вместимостью, если его еще нет.
// ON CONFLICT DO NOTHING: конкурентное создание того же слота безопасно.
func (r *Repository) EnsureDefault(ctx context.Context, guideID, serviceID int64, date string, capacity int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns("guide_id", "service_id", "slot_date", "total_capacity", "reserved_count", "blocked").
		Values(guideID, serviceID, date, capacity, 0, false).
		Suffix("ON CONFLICT (guide_id, service_id, slot_date) DO NOTHING").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: EnsureDefault - build insert query: %v", ErrBuildQuery, err)
	}

	if _, err := executor.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: EnsureDefault - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// Upsert создает или обновляет параметры слота, задаваемые гидом:
// вместимость, блокировку даты и переопределение цены.
// reserved_count при этом не трогается; понижение вместимости ниже
// зарезервированного отклоняется условием WHERE.
func (r *Repository) Upsert(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	date := slot.Date.Format(domain.DateFormat)

	query, args, err := psqlbuilder.Insert("availability_slots").
		Columns("guide_id", "service_id", "slot_date", "total_capacity", "reserved_count", "blocked", "price_override_cents").
		Values(slot.GuideID, slot.ServiceID, date, slot.TotalCapacity, 0, slot.Blocked, slot.PriceOverrideCents).
		Suffix(`ON CONFLICT (guide_id, service_id, slot_date) DO UPDATE
			SET total_capacity = EXCLUDED.total_capacity,
			    blocked = EXCLUDED.blocked,
			    price_override_cents = EXCLUDED.price_override_cents,
			    updated_at = NOW()
			WHERE availability_slots.reserved_count <= EXCLUDED.total_capacity
			RETURNING id, reserved_count, created_at, updated_at`).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - build upsert query: %v", ErrBuildQuery, err)
	}

	var createdAt, updatedAt sql.NullTime
	err = executor.QueryRowContext(ctx, query, args...).Scan(
		&slot.ID,
		&slot.ReservedCount,
		&createdAt,
		&updatedAt,
	)

	if err == sql.ErrNoRows {
		// Условие WHERE не прошло: гид пытается сузить вместимость ниже
		// уже занятых мест
		return nil, ErrCapacityBelowReserved
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Upsert - execute upsert: %v", ErrExecQuery, err)
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return slot, nil
}

// Reserve атомарно резервирует participants мест в слоте.
// Условный UPDATE гарантирует, что два конкурентных резервирования
// последнего места не пройдут оба: проигравший получит 0 строк.
// По нулевому результату отличаем отсутствие слота, блокировку даты
// и нехватку мест отдельным SELECT.
func (r *Repository) Reserve(ctx context.Context, guideID, serviceID int64, date string, participants int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("reserved_count", squirrel.Expr("reserved_count + ?", participants)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"guide_id":   guideID,
			"service_id": serviceID,
			"slot_date":  date,
			"blocked":    false,
		}).
		Where(squirrel.Expr("reserved_count + ? <= total_capacity", participants)).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Reserve - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Reserve - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Reserve - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		slot, err := r.GetByDate(ctx, guideID, serviceID, date)
		if err != nil {
			return err
		}
		if slot.Blocked {
			return ErrDateBlocked
		}
		return ErrInsufficientCapacity
	}

	return nil
}

// Release возвращает participants мест в слот (отмена, компенсация
// после неуспешной авторизации платежа). GREATEST не дает счетчику
// уйти ниже нуля, так что повторный Release безопасен для инварианта
// 0 <= reserved <= total.
func (r *Repository) Release(ctx context.Context, guideID, serviceID int64, date string, participants int) error {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	query, args, err := psqlbuilder.Update("availability_slots").
		Set("reserved_count", squirrel.Expr("GREATEST(reserved_count - ?, 0)", participants)).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(squirrel.Eq{
			"guide_id":   guideID,
			"service_id": serviceID,
			"slot_date":  date,
		}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: Release - build update query: %v", ErrBuildQuery, err)
	}

	result, err := executor.ExecContext(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("%w: Release - execute update: %v", ErrExecQuery, err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: Release - get rows affected: %v", ErrExecQuery, err)
	}

	if rowsAffected == 0 {
		return ErrSlotNotFound
	}

	return nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanSlot(row rowScanner) (*domain.AvailabilitySlot, error) {
	var slot domain.AvailabilitySlot
	var createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&slot.ID,
		&slot.GuideID,
		&slot.ServiceID,
		&slot.Date,
		&slot.TotalCapacity,
		&slot.ReservedCount,
		&slot.Blocked,
		&slot.PriceOverrideCents,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	slot.CreatedAt = createdAt.Time
	slot.UpdatedAt = updatedAt.Time

	return &slot, nil
}
