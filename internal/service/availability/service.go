package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
	availabilityRepo "github.com/guidely/GuideBookingService/internal/infra/storage/availability"
	"github.com/guidely/GuideBookingService/internal/service/availability/models"
)

// Service сервис управления доступностью слотов гида
type Service struct {
	availabilityRepo AvailabilityRepository
	logger           Logger
}

// NewService создает новый экземпляр сервиса доступности
func NewService(availabilityRepository AvailabilityRepository, logger Logger) *Service {
	return &Service{
		availabilityRepo: availabilityRepository,
		logger:           logger,
	}
}

// SetSlot создает или обновляет слот доступности: вместимость, блокировку
// даты и переопределение цены. Доступно только самому гиду.
// Понижение вместимости ниже уже зарезервированных мест отклоняется
func (s *Service) SetSlot(ctx context.Context, req *models.SetSlotRequest) (*models.SlotResponse, error) {
	s.logger.Info("SetSlot: setting slot for guide=%d, service=%d, date=%s by user=%d",
		req.GuideID, req.ServiceID, req.Date, req.UserID)

	// Слот настраивает только сам гид
	if req.UserID != req.GuideID {
		s.logger.Warn("SetSlot: access denied for user=%d to guide=%d slots", req.UserID, req.GuideID)
		return nil, ErrAccessDenied
	}

	date, err := time.Parse(domain.DateFormat, req.Date)
	if err != nil {
		s.logger.Warn("SetSlot: invalid date=%s for guide=%d", req.Date, req.GuideID)
		return nil, fmt.Errorf("%w: invalid date format", ErrInvalidInput)
	}

	if req.TotalCapacity < domain.MinSlotCapacity || req.TotalCapacity > domain.MaxSlotCapacity {
		s.logger.Warn("SetSlot: invalid capacity=%d for guide=%d", req.TotalCapacity, req.GuideID)
		return nil, fmt.Errorf("%w: capacity must be between %d and %d",
			ErrInvalidInput, domain.MinSlotCapacity, domain.MaxSlotCapacity)
	}

	if req.PriceOverrideCents != nil && *req.PriceOverrideCents < 0 {
		s.logger.Warn("SetSlot: negative price override for guide=%d", req.GuideID)
		return nil, fmt.Errorf("%w: price override must not be negative", ErrInvalidInput)
	}

	slot, err := s.availabilityRepo.Upsert(ctx, req.ToDomainSlot(date))
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrCapacityBelowReserved) {
			s.logger.Warn("SetSlot: capacity=%d below reserved for guide=%d, date=%s",
				req.TotalCapacity, req.GuideID, req.Date)
			return nil, ErrCapacityBelowReserved
		}
		s.logger.Error("SetSlot: repository error for guide=%d, date=%s: %v", req.GuideID, req.Date, err)
		return nil, fmt.Errorf("%w: SetSlot - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("SetSlot: successfully set slot for guide=%d, service=%d, date=%s",
		req.GuideID, req.ServiceID, req.Date)
	return models.FromDomainSlot(slot), nil
}

// GetGuideSlots получает слоты гида за период, включая заблокированные.
// Доступно только самому гиду: ростер содержит счетчики резервирований
func (s *Service) GetGuideSlots(ctx context.Context, userID, guideID, serviceID int64, from, to time.Time) (*models.SlotListResponse, error) {
	s.logger.Info("GetGuideSlots: fetching slots for guide=%d, service=%d by user=%d", guideID, serviceID, userID)

	if userID != guideID {
		s.logger.Warn("GetGuideSlots: access denied for user=%d to guide=%d slots", userID, guideID)
		return nil, ErrAccessDenied
	}

	slots, err := s.availabilityRepo.GetRange(ctx, guideID, serviceID,
		from.Format(domain.DateFormat), to.Format(domain.DateFormat))
	if err != nil {
		s.logger.Error("GetGuideSlots: repository error for guide=%d: %v", guideID, err)
		return nil, fmt.Errorf("%w: GetGuideSlots - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuideSlots: successfully fetched %d slots for guide=%d", len(slots), guideID)
	return models.FromDomainSlotList(slots), nil
}
