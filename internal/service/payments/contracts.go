package payments

import (
	"context"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/internal/integrations/processor"
)

// PaymentRepository интерфейс репозитория платежных записей
type PaymentRepository interface {
	Create(ctx context.Context, record *domain.PaymentRecord) (*domain.PaymentRecord, error)
	GetByBookingAndLeg(ctx context.Context, bookingID int64, leg domain.PaymentLeg) (*domain.PaymentRecord, error)
	ListByBooking(ctx context.Context, bookingID int64) ([]*domain.PaymentRecord, error)
	MarkCaptured(ctx context.Context, id int64, intentID string) error
	MarkFailed(ctx context.Context, id int64) error
	AddRefund(ctx context.Context, id int64, amountCents int64) error
}

// BookingRepository интерфейс репозитория бронирований (платежные суммы)
type BookingRepository interface {
	UpdatePaymentAmounts(ctx context.Context, id int64, paidCents, dueCents int64) error
}

// ProcessorClient интерфейс клиента платежного процессора
type ProcessorClient interface {
	CreateIntent(ctx context.Context, req *processor.IntentRequest) (*processor.Intent, error)
	Refund(ctx context.Context, req *processor.RefundRequest) (*processor.RefundResult, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
