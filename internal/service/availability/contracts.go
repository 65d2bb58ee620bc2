package availability

import (
	"context"

	"github.com/guidely/GuideBookingService/internal/domain"
)

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetRange(ctx context.Context, guideID, serviceID int64, from, to string) ([]*domain.AvailabilitySlot, error)
	Upsert(ctx context.Context, slot *domain.AvailabilitySlot) (*domain.AvailabilitySlot, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
