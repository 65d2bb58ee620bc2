// Package policy калькулятор возвратов при отмене бронирования.
// Чистая функция над таблицей тарифов: никакого состояния и I/O,
// одни и те же входы всегда дают один и тот же результат.
package policy

import (
	"errors"
	"fmt"
	"sort"

	"github.com/guidely/GuideBookingService/internal/domain"
)

var (
	// ErrUnknownPolicy возвращается для нераспознанного вида политики.
	// Намеренно не подставляем процент по умолчанию: молчаливый дефолт
	// при отмене - это чужие деньги.
	ErrUnknownPolicy = errors.New("policy: unknown cancellation policy")

	// ErrInvalidAmount возвращается для отрицательной суммы
	ErrInvalidAmount = errors.New("policy: amount paid must not be negative")
)

// Refund результат расчета возврата.
// Инвариант: RefundCents + FeeCents == amountPaidCents.
type Refund struct {
	RefundCents int64
	FeeCents    int64
}

// ComputeRefund вычисляет возврат и комиссию за отмену по таблице тарифов.
// Берется первый тариф (по убыванию MinHoursBefore), порог которого
// не превышает hoursUntilStart. Отрицательные hoursUntilStart (слот уже
// начался) попадают в последний тариф.
func ComputeRefund(p domain.CancellationPolicy, hoursUntilStart float64, amountPaidCents int64) (Refund, error) {
	if amountPaidCents < 0 {
		return Refund{}, ErrInvalidAmount
	}

	if _, known := domain.DefaultPolicyTiers[p.Kind]; !known {
		return Refund{}, fmt.Errorf("%w: %q", ErrUnknownPolicy, p.Kind)
	}

	tiers := p.Tiers
	if len(tiers) == 0 {
		// Политика без явных тарифов - берем стоковую таблицу её вида
		tiers = domain.DefaultPolicyTiers[p.Kind]
	}

	// Тарифы должны идти по убыванию порога; сортируем копию на случай,
	// если хранилище вернуло их в другом порядке
	sorted := make([]domain.PolicyTier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool {
		return sorted[i].MinHoursBefore > sorted[j].MinHoursBefore
	})

	// Слот уже начался - считаем как отмену в последний момент
	if hoursUntilStart < 0 {
		hoursUntilStart = 0
	}

	percent := 0
	for _, tier := range sorted {
		if hoursUntilStart >= tier.MinHoursBefore {
			percent = tier.RefundPercent
			break
		}
	}

	refund := amountPaidCents * int64(percent) / 100
	return Refund{
		RefundCents: refund,
		FeeCents:    amountPaidCents - refund,
	}, nil
}
