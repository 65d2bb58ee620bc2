package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
	guideClient "github.com/guidely/GuideBookingService/internal/integrations/guideservice"
)

// UseCase use case для получения доступности услуги гида по дням.
// Публичная проекция: даты без настроенного слота показываются
// с дефолтной вместимостью услуги, заблокированные — с нулем мест
type UseCase struct {
	availabilityRepo AvailabilityRepository
	guideClient      GuideServiceClient
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	availabilityRepository AvailabilityRepository,
	guideServiceClient GuideServiceClient,
	logger Logger,
) *UseCase {
	return &UseCase{
		availabilityRepo: availabilityRepository,
		guideClient:      guideServiceClient,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступности
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: guide=%d, service=%d, from=%s, to=%s",
		req.GuideID, req.ServiceID,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if req.GuideID <= 0 || req.ServiceID <= 0 {
		uc.logger.Warn("GetAvailableSlots: invalid ids guide=%d service=%d", req.GuideID, req.ServiceID)
		return nil, fmt.Errorf("%w: ids must be positive", ErrInvalidInput)
	}
	if err := validateRange(req.From, req.To); err != nil {
		uc.logger.Warn("GetAvailableSlots: range validation failed: %v", err)
		return nil, err
	}

	// 2. Получаем услугу: дефолтная вместимость и базовая цена
	service, err := uc.guideClient.GetService(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, guideClient.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}
	if service.GuideID != req.GuideID {
		uc.logger.Warn("GetAvailableSlots: service id=%d belongs to guide=%d, not guide=%d",
			req.ServiceID, service.GuideID, req.GuideID)
		return nil, ErrServiceNotOwnedByGuide
	}
	if !service.IsActive {
		uc.logger.Warn("GetAvailableSlots: service id=%d is not active", req.ServiceID)
		return nil, ErrServiceNotFound
	}

	defaultCapacity := service.DefaultCapacity
	if defaultCapacity <= 0 {
		defaultCapacity = domain.DefaultSlotCapacity
	}

	// 3. Получаем настроенные слоты диапазона
	slots, err := uc.availabilityRepo.GetRange(ctx, req.GuideID, req.ServiceID,
		req.From.Format(domain.DateFormat), req.To.Format(domain.DateFormat))
	if err != nil {
		uc.logger.Error("GetAvailableSlots: repository error for guide=%d: %v", req.GuideID, err)
		return nil, fmt.Errorf("%w: repository error: %v", ErrInternal, err)
	}

	byDate := make(map[string]*domain.AvailabilitySlot, len(slots))
	for _, slot := range slots {
		byDate[slot.Date.Format(domain.DateFormat)] = slot
	}

	// 4. Собираем проекцию по каждой дате диапазона
	days := make([]Day, 0)
	for d := dateOnly(req.From); !d.After(dateOnly(req.To)); d = d.AddDate(0, 0, 1) {
		key := d.Format(domain.DateFormat)

		if slot, ok := byDate[key]; ok {
			days = append(days, Day{
				Date:                     key,
				TotalSpots:               slot.TotalCapacity,
				AvailableSpots:           slot.AvailableSpots(),
				Blocked:                  slot.Blocked,
				PricePerParticipantCents: slot.PricePerParticipantCents(service.PriceCents),
			})
			continue
		}

		// Дата без настроенного слота: полная дефолтная вместимость
		days = append(days, Day{
			Date:                     key,
			TotalSpots:               defaultCapacity,
			AvailableSpots:           defaultCapacity,
			Blocked:                  false,
			PricePerParticipantCents: service.PriceCents,
		})
	}

	uc.logger.Info("GetAvailableSlots: returning %d days for guide=%d, service=%d",
		len(days), req.GuideID, req.ServiceID)

	return &Response{
		GuideID:   req.GuideID,
		ServiceID: req.ServiceID,
		Days:      days,
	}, nil
}

// validateRange проверяет корректность диапазона дат
func validateRange(from, to time.Time) error {
	if from.IsZero() || to.IsZero() {
		return ErrInvalidRange
	}
	if to.Before(from) {
		return ErrInvalidRange
	}
	if to.Sub(from) > time.Duration(domain.MaxQueryRangeDays)*24*time.Hour {
		return ErrRangeTooWide
	}
	return nil
}

// dateOnly обрезает время, оставляя только дату в UTC
func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
