package cancel_booking

import (
	"context"
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/internal/integrations/guideservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Cancel(ctx context.Context, id int64, feeCents, refundCents int64) error
}

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	Release(ctx context.Context, guideID, serviceID int64, date string, participants int) error
}

// PolicyRepository интерфейс репозитория политик отмены
type PolicyRepository interface {
	GetByGuide(ctx context.Context, guideID int64) (*domain.CancellationPolicy, error)
}

// GuideServiceClient интерфейс клиента для GuideService
type GuideServiceClient interface {
	GetGuide(ctx context.Context, guideID int64) (*guideservice.Guide, error)
}

// PaymentOrchestrator интерфейс платежного сервиса
type PaymentOrchestrator interface {
	Refund(ctx context.Context, booking *domain.Booking, amountCents int64) (int64, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
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
