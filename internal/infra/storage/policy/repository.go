package policy

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/pkg/dbmetrics"
	"github.com/guidely/GuideBookingService/pkg/psqlbuilder"
)

// Repository репозиторий политик отмены гидов.
// Кастомные ярусы хранятся по одному на строку; если у гида нет
// настроенной политики, вызывающий код берет стандартную по kind.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория политик
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// GetByGuide получает политику отмены гида вместе с ярусами возврата.
// Ярусы возвращаются отсортированными по убыванию порога часов.
func (r *Repository) GetByGuide(ctx context.Context, guideID int64) (*domain.CancellationPolicy, error) {
	executor := dbmetrics.GetExecutor(ctx, r.db)

	kindQuery, kindArgs, err := psqlbuilder.Select("policy_kind").
		From("guide_cancellation_policies").
		Where(squirrel.Eq{"guide_id": guideID}).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuide - build kind query: %v", ErrBuildQuery, err)
	}

	var kind domain.PolicyKind
	err = executor.QueryRowContext(ctx, kindQuery, kindArgs...).Scan(&kind)
	if err == sql.ErrNoRows {
		return nil, ErrPolicyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuide - scan kind: %v", ErrScanRow, err)
	}

	tiersQuery, tiersArgs, err := psqlbuilder.Select("min_hours_before", "refund_percent").
		From("guide_cancellation_policy_tiers").
		Where(squirrel.Eq{"guide_id": guideID}).
		OrderBy("min_hours_before DESC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuide - build tiers query: %v", ErrBuildQuery, err)
	}

	rows, err := executor.QueryContext(ctx, tiersQuery, tiersArgs...)
	if err != nil {
		return nil, fmt.Errorf("%w: GetByGuide - execute tiers query: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	tiers := make([]domain.PolicyTier, 0)
	for rows.Next() {
		var tier domain.PolicyTier
		if err := rows.Scan(&tier.MinHoursBefore, &tier.RefundPercent); err != nil {
			return nil, fmt.Errorf("%w: GetByGuide - scan tier: %v", ErrScanRow, err)
		}
		tiers = append(tiers, tier)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: GetByGuide - rows error: %v", ErrScanRow, err)
	}

	return &domain.CancellationPolicy{
		Kind:  kind,
		Tiers: tiers,
	}, nil
}
