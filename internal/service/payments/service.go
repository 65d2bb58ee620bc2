package payments

import (
	"context"
	"errors"
	"fmt"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/internal/infra/storage/payment"
	"github.com/guidely/GuideBookingService/internal/integrations/processor"
)

const defaultCurrency = "USD"

// Service оркестратор двухэтапной оплаты бронирования: депозит при
// создании, остаток при check-in. Каждая нога платежа имеет стабильный
// idempotency key, поэтому повтор любой операции не приводит ко второму
// списанию ни на стороне процессора, ни в локальных записях.
type Service struct {
	paymentRepo PaymentRepository
	bookingRepo BookingRepository
	processor   ProcessorClient
	logger      Logger
}

// NewService создает новый экземпляр платежного сервиса
func NewService(
	paymentRepo PaymentRepository,
	bookingRepo BookingRepository,
	processorClient ProcessorClient,
	logger Logger,
) *Service {
	return &Service{
		paymentRepo: paymentRepo,
		bookingRepo: bookingRepo,
		processor:   processorClient,
		logger:      logger,
	}
}

// AuthorizeDeposit списывает депозит за бронирование.
// Повторный вызов для уже списанного депозита — no-op.
// При отклонении платежа запись помечается failed, суммы бронирования
// не меняются; вызывающий код откатывает резервирование мест.
func (s *Service) AuthorizeDeposit(ctx context.Context, booking *domain.Booking) error {
	if booking.DepositCents <= 0 {
		s.logger.Info("AuthorizeDeposit: booking id=%d has no deposit, skipping", booking.ID)
		return nil
	}
	return s.captureLeg(ctx, booking, domain.LegDeposit, booking.DepositCents,
		fmt.Sprintf("Deposit for booking %s", booking.BookingNumber))
}

// CaptureRemainder списывает остаток стоимости при check-in.
// Повторный вызов для уже списанного остатка — no-op.
func (s *Service) CaptureRemainder(ctx context.Context, booking *domain.Booking) error {
	if booking.AmountDueCents <= 0 {
		s.logger.Info("CaptureRemainder: booking id=%d has nothing due, skipping", booking.ID)
		return nil
	}
	return s.captureLeg(ctx, booking, domain.LegRemainder, booking.AmountDueCents,
		fmt.Sprintf("Remainder for booking %s", booking.BookingNumber))
}

// Refund возвращает amountCents по списанным платежам бронирования.
// Возврат никогда не превышает фактически списанное: сумма клампится
// по RefundableCents каждой записи. Возвращает фактически возвращенную сумму.
func (s *Service) Refund(ctx context.Context, booking *domain.Booking, amountCents int64) (int64, error) {
	if amountCents <= 0 {
		return 0, nil
	}

	s.logger.Info("Refund: refunding up to %d cents for booking id=%d", amountCents, booking.ID)

	records, err := s.paymentRepo.ListByBooking(ctx, booking.ID)
	if err != nil {
		s.logger.Error("Refund: repository error for booking id=%d: %v", booking.ID, err)
		return 0, fmt.Errorf("%w: Refund - repository error: %v", ErrInternal, err)
	}

	// Возвращаем в обратном порядке: сначала остаток, потом депозит
	var refunded int64
	for i := len(records) - 1; i >= 0 && refunded < amountCents; i-- {
		record := records[i]

		portion := record.RefundableCents()
		if portion <= 0 {
			continue
		}
		if remaining := amountCents - refunded; portion > remaining {
			portion = remaining
		}

		result, err := s.processor.Refund(ctx, &processor.RefundRequest{
			IntentID:       record.IntentID,
			AmountCents:    portion,
			IdempotencyKey: fmt.Sprintf("%s-refund", record.IdempotencyKey),
		})
		if err != nil {
			s.logger.Error("Refund: processor refund failed for booking id=%d leg=%s: %v",
				booking.ID, record.Leg, err)
			if errors.Is(err, processor.ErrProcessorUnavailable) {
				return refunded, ErrProcessorUnavailable
			}
			return refunded, fmt.Errorf("%w: leg=%s: %v", ErrRefundFailed, record.Leg, err)
		}

		if err := s.paymentRepo.AddRefund(ctx, record.ID, portion); err != nil {
			s.logger.Error("Refund: failed to record refund for booking id=%d leg=%s: %v",
				booking.ID, record.Leg, err)
			return refunded, fmt.Errorf("%w: Refund - record refund: %v", ErrInternal, err)
		}

		s.logger.Info("Refund: refunded %d cents for booking id=%d leg=%s refund_id=%s",
			portion, booking.ID, record.Leg, result.ID)
		refunded += portion
	}

	if refunded == 0 {
		s.logger.Warn("Refund: booking id=%d has no captured payments to refund", booking.ID)
		return 0, ErrNothingCaptured
	}

	return refunded, nil
}

// captureLeg выполняет списание одной ноги платежа с защитой от повтора
func (s *Service) captureLeg(ctx context.Context, booking *domain.Booking, leg domain.PaymentLeg, amountCents int64, description string) error {
	record, err := s.ensureRecord(ctx, booking.ID, leg, amountCents)
	if err != nil {
		return err
	}

	// Нога уже списана ранее: повтор ничего не делает
	if record.IsCaptured() {
		s.logger.Info("captureLeg: booking id=%d leg=%s already captured, skipping", booking.ID, leg)
		return nil
	}

	intent, err := s.processor.CreateIntent(ctx, &processor.IntentRequest{
		AmountCents:    amountCents,
		Currency:       defaultCurrency,
		Description:    description,
		IdempotencyKey: record.IdempotencyKey,
	})
	if err != nil {
		if errors.Is(err, processor.ErrAuthorizationDeclined) {
			s.logger.Warn("captureLeg: payment declined for booking id=%d leg=%s", booking.ID, leg)
			if markErr := s.paymentRepo.MarkFailed(ctx, record.ID); markErr != nil {
				s.logger.Error("captureLeg: failed to mark record failed id=%d: %v", record.ID, markErr)
			}
			return ErrPaymentDeclined
		}
		s.logger.Error("captureLeg: processor error for booking id=%d leg=%s: %v", booking.ID, leg, err)
		return ErrProcessorUnavailable
	}

	if err := s.paymentRepo.MarkCaptured(ctx, record.ID, intent.ID); err != nil {
		s.logger.Error("captureLeg: failed to mark record captured id=%d: %v", record.ID, err)
		return fmt.Errorf("%w: captureLeg - mark captured: %v", ErrInternal, err)
	}

	paid := booking.AmountPaidCents + amountCents
	due := booking.TotalPriceCents - paid
	if due < 0 {
		due = 0
	}
	if err := s.bookingRepo.UpdatePaymentAmounts(ctx, booking.ID, paid, due); err != nil {
		s.logger.Error("captureLeg: failed to update booking amounts id=%d: %v", booking.ID, err)
		return fmt.Errorf("%w: captureLeg - update amounts: %v", ErrInternal, err)
	}
	booking.AmountPaidCents = paid
	booking.AmountDueCents = due

	s.logger.Info("captureLeg: captured %d cents for booking id=%d leg=%s intent=%s",
		amountCents, booking.ID, leg, intent.ID)
	return nil
}

// ensureRecord находит или создает платежную запись ноги.
// Гонка двух конкурентных вызовов разрешается уникальным idempotency key:
// проигравший Create перечитывает запись победителя.
func (s *Service) ensureRecord(ctx context.Context, bookingID int64, leg domain.PaymentLeg, amountCents int64) (*domain.PaymentRecord, error) {
	record, err := s.paymentRepo.GetByBookingAndLeg(ctx, bookingID, leg)
	if err == nil {
		return record, nil
	}
	if !errors.Is(err, payment.ErrRecordNotFound) {
		s.logger.Error("ensureRecord: repository error for booking id=%d leg=%s: %v", bookingID, leg, err)
		return nil, fmt.Errorf("%w: ensureRecord - repository error: %v", ErrInternal, err)
	}

	record, err = s.paymentRepo.Create(ctx, &domain.PaymentRecord{
		BookingID:      bookingID,
		Leg:            leg,
		AmountCents:    amountCents,
		Status:         domain.PaymentInitiated,
		IdempotencyKey: domain.PaymentIdempotencyKey(bookingID, leg),
	})
	if err != nil {
		if errors.Is(err, payment.ErrDuplicateKey) {
			return s.paymentRepo.GetByBookingAndLeg(ctx, bookingID, leg)
		}
		s.logger.Error("ensureRecord: failed to create record for booking id=%d leg=%s: %v", bookingID, leg, err)
		return nil, fmt.Errorf("%w: ensureRecord - create record: %v", ErrInternal, err)
	}

	return record, nil
}
