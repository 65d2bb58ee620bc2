package check_in

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/guidely/GuideBookingService/internal/domain"
	bookingRepo "github.com/guidely/GuideBookingService/internal/infra/storage/booking"
	"github.com/guidely/GuideBookingService/internal/service/payments"
)

// UseCase use case для check-in клиента в начале услуги.
// CAS-переход confirmed → in_progress выбирает победителя среди
// конкурентных check-in; остаток оплаты списывается после перехода,
// при неуспехе статус компенсируется обратно в confirmed
type UseCase struct {
	bookingRepo BookingRepository
	verifier    CodeVerifier
	payments    PaymentOrchestrator
	logger      Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	verifier CodeVerifier,
	paymentOrchestrator PaymentOrchestrator,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo: bookingRepository,
		verifier:    verifier,
		payments:    paymentOrchestrator,
		logger:      logger,
	}
}

// Execute выполняет use case check-in
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckIn: booking id=%d by user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 || req.UserID <= 0 {
		uc.logger.Warn("CheckIn: invalid input booking=%d user=%d", req.BookingID, req.UserID)
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}
	if strings.TrimSpace(req.Code) == "" {
		uc.logger.Warn("CheckIn: empty code for booking id=%d", req.BookingID)
		return nil, fmt.Errorf("%w: code is required", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CheckIn: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CheckIn: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 3. Check-in проводит только гид бронирования
	if booking.GuideID != req.UserID {
		uc.logger.Warn("CheckIn: user=%d is not the guide of booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 4. Повторный check-in отсекаем до любых действий с оплатой,
	// иначе остаток можно было бы списать дважды
	if booking.IsCheckedIn() {
		uc.logger.Info("CheckIn: booking id=%d is already checked in, status=%s",
			req.BookingID, booking.Status)
		return nil, ErrAlreadyCheckedIn
	}

	// 5. Из остальных статусов check-in недоступен
	if !booking.CanCheckIn() {
		uc.logger.Warn("CheckIn: booking id=%d is not confirmed, status=%s", req.BookingID, booking.Status)
		return nil, ErrNotConfirmed
	}

	// 6. Проверяем код
	if !uc.verifier.Verify(req.Code, booking.ID) {
		uc.logger.Warn("CheckIn: invalid code for booking id=%d", req.BookingID)
		return nil, ErrInvalidCode
	}

	// 7. CAS-переход confirmed → in_progress. Из двух конкурентных
	// check-in переход пройдет только у одного
	if err := uc.bookingRepo.MarkInProgress(ctx, req.BookingID); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			uc.logger.Warn("CheckIn: concurrent status change for booking id=%d", req.BookingID)
			return nil, ErrNotConfirmed
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			return nil, ErrBookingNotFound
		default:
			uc.logger.Error("CheckIn: transition failed for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: transition failed: %v", ErrInternal, err)
		}
	}

	// 8. Списываем остаток. При неуспехе компенсируем статус обратно:
	// клиент сможет повторить check-in после решения проблемы с оплатой
	if err := uc.payments.CaptureRemainder(ctx, booking); err != nil {
		if revertErr := uc.bookingRepo.RevertToConfirmed(ctx, req.BookingID); revertErr != nil {
			uc.logger.Error("CheckIn: failed to revert booking id=%d to confirmed: %v",
				req.BookingID, revertErr)
		}

		switch {
		case errors.Is(err, payments.ErrPaymentDeclined):
			uc.logger.Warn("CheckIn: remainder declined for booking id=%d", req.BookingID)
			return nil, ErrPaymentDeclined
		case errors.Is(err, payments.ErrProcessorUnavailable):
			uc.logger.Warn("CheckIn: processor unavailable for booking id=%d", req.BookingID)
			return nil, ErrPaymentUnavailable
		default:
			uc.logger.Error("CheckIn: remainder capture failed for booking id=%d: %v", req.BookingID, err)
			return nil, fmt.Errorf("%w: remainder capture failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CheckIn: successfully checked in booking id=%d, paid=%d due=%d",
		req.BookingID, booking.AmountPaidCents, booking.AmountDueCents)

	return &Response{
		BookingID:       booking.ID,
		Status:          string(domain.StatusInProgress),
		AmountPaidCents: booking.AmountPaidCents,
		AmountDueCents:  booking.AmountDueCents,
	}, nil
}
