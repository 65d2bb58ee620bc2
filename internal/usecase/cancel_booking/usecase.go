package cancel_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/guidely/GuideBookingService/internal/domain"
	bookingRepo "github.com/guidely/GuideBookingService/internal/infra/storage/booking"
	policyRepo "github.com/guidely/GuideBookingService/internal/infra/storage/policy"
	guideClient "github.com/guidely/GuideBookingService/internal/integrations/guideservice"
	"github.com/guidely/GuideBookingService/internal/policy"
)

// UseCase use case для отмены бронирования.
// Порядок шагов фиксированный: расчет возврата по политике → CAS-переход
// в cancelled (одновременно фиксирует fee/refund) → возврат мест →
// возврат средств. Ошибка возврата средств эскалируется, но статус
// бронирования уже отменен и места возвращены
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	policyRepo       PolicyRepository
	guideClient      GuideServiceClient
	payments         PaymentOrchestrator
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepository BookingRepository,
	availabilityRepository AvailabilityRepository,
	policyRepository PolicyRepository,
	guideServiceClient GuideServiceClient,
	paymentOrchestrator PaymentOrchestrator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepository,
		availabilityRepo: availabilityRepository,
		policyRepo:       policyRepository,
		guideClient:      guideServiceClient,
		payments:         paymentOrchestrator,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case отмены бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CancelBooking: booking id=%d by user=%d", req.BookingID, req.UserID)

	// 1. Валидация входных данных
	if req.BookingID <= 0 || req.UserID <= 0 {
		uc.logger.Warn("CancelBooking: invalid input booking=%d user=%d", req.BookingID, req.UserID)
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}

	// 2. Получаем бронирование
	booking, err := uc.bookingRepo.GetByID(ctx, req.BookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			uc.logger.Warn("CancelBooking: booking id=%d not found", req.BookingID)
			return nil, ErrBookingNotFound
		}
		uc.logger.Error("CancelBooking: repository error for booking id=%d: %v", req.BookingID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	// 3. Отменить может клиент-владелец или гид бронирования
	if booking.ClientID != req.UserID && booking.GuideID != req.UserID {
		uc.logger.Warn("CancelBooking: access denied for user=%d to booking id=%d", req.UserID, req.BookingID)
		return nil, ErrAccessDenied
	}

	// 4. Проверяем допустимость отмены
	if booking.Status == domain.StatusCancelled || booking.Status == domain.StatusRefunded {
		uc.logger.Warn("CancelBooking: booking id=%d is already cancelled", req.BookingID)
		return nil, ErrAlreadyCancelled
	}
	if !booking.CanBeCancelled() {
		uc.logger.Warn("CancelBooking: booking id=%d cannot be cancelled, status=%s",
			req.BookingID, booking.Status)
		return nil, ErrCannotCancel
	}

	// 5. Считаем возврат
	now := uc.timeProvider.Now()
	hours := booking.HoursUntilStart(now)

	var refundCents, feeCents int64
	if booking.GuideID == req.UserID {
		// Отмена гидом: клиент получает все оплаченное назад,
		// политика отмены не применяется
		refundCents = booking.AmountPaidCents
		feeCents = 0
		uc.logger.Info("CancelBooking: guide-initiated cancel of booking id=%d, full refund %d cents",
			req.BookingID, refundCents)
	} else {
		refund, err := uc.computePolicyRefund(ctx, booking, hours)
		if err != nil {
			return nil, err
		}
		refundCents = refund.RefundCents
		feeCents = refund.FeeCents
		uc.logger.Info("CancelBooking: booking id=%d, %.1fh before start, refund=%d fee=%d",
			req.BookingID, hours, refundCents, feeCents)
	}

	// 6. CAS-переход в cancelled и возврат мест в одной транзакции.
	// Проигравший конкурентную отмену получает ErrAlreadyCancelled
	date := booking.StartDate.Format(domain.DateFormat)
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		if err := uc.bookingRepo.Cancel(txCtx, req.BookingID, feeCents, refundCents); err != nil {
			switch {
			case errors.Is(err, bookingRepo.ErrStatusConflict):
				return ErrAlreadyCancelled
			case errors.Is(err, bookingRepo.ErrBookingNotFound):
				return ErrBookingNotFound
			default:
				return fmt.Errorf("%w: cancel transition: %v", ErrInternal, err)
			}
		}

		if err := uc.availabilityRepo.Release(txCtx, booking.GuideID, booking.ServiceID, date, booking.Participants); err != nil {
			return fmt.Errorf("%w: release spots: %v", ErrInternal, err)
		}

		return nil
	})
	if err != nil {
		uc.logger.Warn("CancelBooking: cancel failed for booking id=%d: %v", req.BookingID, err)
		return nil, err
	}

	// 7. Возврат средств. Неуспех эскалируем: отмена уже состоялась,
	// но клиент должен узнать, что деньги не вернулись автоматически
	if refundCents > 0 {
		refunded, err := uc.payments.Refund(ctx, booking, refundCents)
		if err != nil {
			uc.logger.Error("CancelBooking: refund failed for booking id=%d, refunded %d of %d: %v",
				req.BookingID, refunded, refundCents, err)
			return nil, fmt.Errorf("%w: refunded %d of %d cents: %v", ErrRefundFailed, refunded, refundCents, err)
		}
	}

	uc.logger.Info("CancelBooking: successfully cancelled booking id=%d, refund=%d fee=%d",
		req.BookingID, refundCents, feeCents)

	return &Response{
		BookingID:       req.BookingID,
		Status:          string(domain.StatusCancelled),
		HoursBeforeTrip: hours,
		AmountPaidCents: booking.AmountPaidCents,
		RefundCents:     refundCents,
		FeeCents:        feeCents,
	}, nil
}

// computePolicyRefund считает возврат по политике отмены гида.
// Кастомная политика из хранилища имеет приоритет; при ее отсутствии
// берется стандартная по виду политики из профиля гида
func (uc *UseCase) computePolicyRefund(ctx context.Context, booking *domain.Booking, hours float64) (policy.Refund, error) {
	cancellationPolicy, err := uc.policyRepo.GetByGuide(ctx, booking.GuideID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPolicyNotFound) {
			uc.logger.Error("CancelBooking: failed to get policy for guide=%d: %v", booking.GuideID, err)
			return policy.Refund{}, fmt.Errorf("%w: failed to get policy: %v", ErrInternal, err)
		}

		guide, err := uc.guideClient.GetGuide(ctx, booking.GuideID)
		if err != nil {
			if errors.Is(err, guideClient.ErrGuideNotFound) {
				uc.logger.Error("CancelBooking: guide id=%d not found for policy lookup", booking.GuideID)
				return policy.Refund{}, ErrUnknownPolicy
			}
			uc.logger.Error("CancelBooking: failed to get guide id=%d: %v", booking.GuideID, err)
			return policy.Refund{}, fmt.Errorf("%w: failed to get guide: %v", ErrInternal, err)
		}

		cancellationPolicy = &domain.CancellationPolicy{Kind: domain.PolicyKind(guide.PolicyKind)}
	}

	refund, err := policy.ComputeRefund(*cancellationPolicy, hours, booking.AmountPaidCents)
	if err != nil {
		if errors.Is(err, policy.ErrUnknownPolicy) {
			uc.logger.Error("CancelBooking: unknown policy kind=%s for guide=%d",
				cancellationPolicy.Kind, booking.GuideID)
			return policy.Refund{}, ErrUnknownPolicy
		}
		uc.logger.Error("CancelBooking: refund computation failed for booking id=%d: %v", booking.ID, err)
		return policy.Refund{}, fmt.Errorf("%w: refund computation: %v", ErrInternal, err)
	}

	return refund, nil
}
