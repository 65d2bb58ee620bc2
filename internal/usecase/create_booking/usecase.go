package create_booking

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/guidely/GuideBookingService/internal/domain"
	availabilityRepo "github.com/guidely/GuideBookingService/internal/infra/storage/availability"
	guideClient "github.com/guidely/GuideBookingService/internal/integrations/guideservice"
	"github.com/guidely/GuideBookingService/internal/service/payments"
	"github.com/guidely/GuideBookingService/pkg/types"
)

// UseCase use case для создания бронирования.
// Резервирование мест и вставка pending-бронирования идут в сериализуемой
// транзакции; списание депозита — уже вне транзакции, с компенсацией
// (возврат мест + удаление записи) при неуспехе
type UseCase struct {
	bookingRepo      BookingRepository
	availabilityRepo AvailabilityRepository
	guideClient      GuideServiceClient
	payments         PaymentOrchestrator
	txManager        TransactionManager
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	availabilityRepository AvailabilityRepository,
	guideServiceClient GuideServiceClient,
	paymentOrchestrator PaymentOrchestrator,
	txManager TransactionManager,
	logger Logger,
) *UseCase {
	return &UseCase{
		bookingRepo:      bookingRepo,
		availabilityRepo: availabilityRepository,
		guideClient:      guideServiceClient,
		payments:         paymentOrchestrator,
		txManager:        txManager,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, guide=%d, service=%d, date=%s, participants=%d",
		req.UserID, req.GuideID, req.ServiceID, req.Date.Format(domain.DateFormat), req.Participants)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Валидация даты
	if err := validateDate(req.Date, now); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 4. Получаем профиль гида
	guide, err := uc.guideClient.GetGuide(ctx, req.GuideID)
	if err != nil {
		if errors.Is(err, guideClient.ErrGuideNotFound) {
			uc.logger.Warn("CreateBooking: guide id=%d not found", req.GuideID)
			return nil, ErrGuideNotFound
		}
		uc.logger.Error("CreateBooking: failed to get guide id=%d: %v", req.GuideID, err)
		return nil, fmt.Errorf("%w: failed to get guide: %v", ErrInternal, err)
	}
	if !guide.IsActive {
		uc.logger.Warn("CreateBooking: guide id=%d is not active", req.GuideID)
		return nil, ErrGuideInactive
	}

	// 5. Получаем услугу
	service, err := uc.guideClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, guideClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 6. Услуга должна принадлежать гиду и быть активной
	if service.GuideID != req.GuideID {
		uc.logger.Warn("CreateBooking: service id=%d belongs to guide=%d, not guide=%d",
			req.ServiceID, service.GuideID, req.GuideID)
		return nil, ErrServiceNotOwnedByGuide
	}
	if !service.IsActive {
		uc.logger.Warn("CreateBooking: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	date := req.Date.Format(domain.DateFormat)

	defaultCapacity := service.DefaultCapacity
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultSlotCapacity
	}

	// Переменная для хранения результата
	var result *domain.Booking

	// 7. Резервируем места и создаем pending-бронирование в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Создаем слот с дефолтной вместимостью, если гид его не настраивал
		if err := uc.availabilityRepo.EnsureDefault(txCtx, req.GuideID, req.ServiceID, date, defaultCapacity); err != nil {
			uc.logger.Error("CreateBooking: failed to ensure slot: %v", err)
			return fmt.Errorf("%w: failed to ensure slot: %v", ErrInternal, err)
		}

		// 7.2. Атомарно резервируем места: условный UPDATE закрывает гонку
		// конкурентных бронирований последнего места
		if err := uc.availabilityRepo.Reserve(txCtx, req.GuideID, req.ServiceID, date, req.Participants); err != nil {
			switch {
			case errors.Is(err, availabilityRepo.ErrDateBlocked):
				uc.logger.Warn("CreateBooking: date %s is blocked for guide=%d", date, req.GuideID)
				return ErrDateBlocked
			case errors.Is(err, availabilityRepo.ErrInsufficientCapacity):
				uc.logger.Warn("CreateBooking: not enough spots on %s for guide=%d", date, req.GuideID)
				return ErrInsufficientCapacity
			default:
				uc.logger.Error("CreateBooking: failed to reserve spots: %v", err)
				return fmt.Errorf("%w: failed to reserve spots: %v", ErrInternal, err)
			}
		}

		// 7.3. Читаем слот ради переопределения цены на дату
		slot, err := uc.availabilityRepo.GetByDate(txCtx, req.GuideID, req.ServiceID, date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get slot: %v", err)
			return fmt.Errorf("%w: failed to get slot: %v", ErrInternal, err)
		}

		// 7.4. Считаем стоимость и депозит
		pricePerParticipant := slot.PricePerParticipantCents(service.PriceCents)
		totalCents := pricePerParticipant * int64(req.Participants)

		var depositCents int64
		if domain.PaymentType(req.PaymentType) == domain.PaymentTypeFull {
			depositCents = totalCents
		} else {
			depositCents = depositFor(totalCents, guide.DepositPercent)
		}

		endTime, err := req.StartTime.AddMinutes(service.DurationMinutes)
		if err != nil {
			// Услуга уходит за полночь: ограничиваем конец последней минутой дня
			endTime = types.TimeString("23:59")
		}

		// 7.5. Создаем pending-бронирование
		booking := &domain.Booking{
			BookingNumber:   newBookingNumber(date),
			ClientID:        req.UserID,
			GuideID:         req.GuideID,
			ServiceID:       req.ServiceID,
			StartDate:       req.Date,
			StartTime:       req.StartTime,
			EndTime:         endTime,
			Participants:    req.Participants,
			TotalPriceCents: totalCents,
			DepositCents:    depositCents,
			AmountPaidCents: 0,
			AmountDueCents:  totalCents,
			PaymentType:     domain.PaymentType(req.PaymentType),
			Status:          domain.StatusPending,
			ClientName:      strings.TrimSpace(req.ClientName),
			ClientEmail:     req.ClientEmail,
			ClientPhone:     req.ClientPhone,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})

	if err != nil {
		return nil, err
	}

	// 8. Списываем депозит вне транзакции: внешний вызов не должен
	// держать сериализуемую транзакцию открытой
	if err := uc.payments.AuthorizeDeposit(ctx, result); err != nil {
		uc.compensate(ctx, result, date)

		switch {
		case errors.Is(err, payments.ErrPaymentDeclined):
			uc.logger.Warn("CreateBooking: deposit declined for booking id=%d", result.ID)
			return nil, ErrPaymentDeclined
		case errors.Is(err, payments.ErrProcessorUnavailable):
			uc.logger.Warn("CreateBooking: processor unavailable for booking id=%d", result.ID)
			return nil, ErrPaymentUnavailable
		default:
			uc.logger.Error("CreateBooking: deposit authorization failed for booking id=%d: %v", result.ID, err)
			return nil, fmt.Errorf("%w: deposit authorization failed: %v", ErrInternal, err)
		}
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d number=%s",
		result.ID, result.BookingNumber)

	// Конвертируем в response
	return &Response{
		ID:              result.ID,
		BookingNumber:   result.BookingNumber,
		ClientID:        result.ClientID,
		GuideID:         result.GuideID,
		ServiceID:       result.ServiceID,
		Date:            result.StartDate,
		StartTime:       result.StartTime,
		EndTime:         result.EndTime,
		Participants:    result.Participants,
		Status:          string(result.Status),
		TotalPriceCents: result.TotalPriceCents,
		DepositCents:    result.DepositCents,
		AmountPaidCents: result.AmountPaidCents,
		AmountDueCents:  result.AmountDueCents,
		PaymentType:     string(result.PaymentType),
		CreatedAt:       result.CreatedAt,
		UpdatedAt:       result.UpdatedAt,
	}, nil
}

// compensate откатывает резервирование после неуспешного депозита:
// возвращает места в слот и удаляет неоплаченную pending-запись
func (uc *UseCase) compensate(ctx context.Context, booking *domain.Booking, date string) {
	if err := uc.availabilityRepo.Release(ctx, booking.GuideID, booking.ServiceID, date, booking.Participants); err != nil {
		uc.logger.Error("CreateBooking: compensation release failed for booking id=%d: %v", booking.ID, err)
	}
	if err := uc.bookingRepo.Delete(ctx, booking.ID); err != nil {
		uc.logger.Error("CreateBooking: compensation delete failed for booking id=%d: %v", booking.ID, err)
	}
}

// newBookingNumber генерирует человекочитаемый номер бронирования:
// GB-<дата>-<фрагмент uuid в верхнем регистре>
func newBookingNumber(date string) string {
	fragment := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", domain.BookingNumberPrefix, strings.ReplaceAll(date, "-", ""), fragment)
}
