package create_booking

import (
	"context"
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/internal/integrations/guideservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	Delete(ctx context.Context, id int64) error
}

// AvailabilityRepository интерфейс репозитория доступности
type AvailabilityRepository interface {
	EnsureDefault(ctx context.Context, guideID, serviceID int64, date string, capacity int) error
	GetByDate(ctx context.Context, guideID, serviceID int64, date string) (*domain.AvailabilitySlot, error)
	Reserve(ctx context.Context, guideID, serviceID int64, date string, participants int) error
	Release(ctx context.Context, guideID, serviceID int64, date string, participants int) error
}

// GuideServiceClient интерфейс клиента для GuideService
type GuideServiceClient interface {
	GetGuide(ctx context.Context, guideID int64) (*guideservice.Guide, error)
	GetService(ctx context.Context, serviceID int64) (*guideservice.Service, error)
}

// PaymentOrchestrator интерфейс платежного сервиса
type PaymentOrchestrator interface {
	AuthorizeDeposit(ctx context.Context, booking *domain.Booking) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
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
