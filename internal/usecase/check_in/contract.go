package check_in

import (
	"context"

	"github.com/guidely/GuideBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	MarkInProgress(ctx context.Context, id int64) error
	RevertToConfirmed(ctx context.Context, id int64) error
}

// CodeVerifier проверяет код check-in бронирования
type CodeVerifier interface {
	Verify(submitted string, bookingID int64) bool
}

// PaymentOrchestrator интерфейс платежного сервиса
type PaymentOrchestrator interface {
	CaptureRemainder(ctx context.Context, booking *domain.Booking) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
