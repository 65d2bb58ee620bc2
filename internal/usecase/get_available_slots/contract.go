package get_available_slots

import (
	"context"
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/internal/integrations/guideservice"
)

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	GetRange(ctx context.Context, guideID, serviceID int64, from, to string) ([]*domain.AvailabilitySlot, error)
}

// GuideServiceClient интерфейс клиента для GuideService
type GuideServiceClient interface {
	GetService(ctx context.Context, serviceID int64) (*guideservice.Service, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
