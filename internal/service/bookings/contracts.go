package bookings

import (
	"context"

	"github.com/guidely/GuideBookingService/internal/domain"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	GetByClientID(ctx context.Context, clientID int64, status *domain.BookingStatus) ([]*domain.Booking, error)
	GetByGuideWithFilter(ctx context.Context, filter domain.GuideBookingsFilter) ([]*domain.Booking, error)
	Confirm(ctx context.Context, id int64) error
	Complete(ctx context.Context, id int64) error
	Dispute(ctx context.Context, id int64) error
}

// CheckInCoder выдает код check-in бронирования
type CheckInCoder interface {
	Code(bookingID int64) string
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
