package bookings

import (
	"context"
	"errors"
	"fmt"

	"github.com/guidely/GuideBookingService/internal/domain"
	bookingRepo "github.com/guidely/GuideBookingService/internal/infra/storage/booking"
	"github.com/guidely/GuideBookingService/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo BookingRepository
	checkInCode CheckInCoder
	logger      Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepository BookingRepository,
	checkInCode CheckInCoder,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo: bookingRepository,
		checkInCode: checkInCode,
		logger:      logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - бронирование видят только клиент-владелец и гид.
// Код check-in включается в ответ только для клиента-владельца
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	// Проверяем права доступа
	if booking.ClientID != userID && booking.GuideID != userID {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, ErrAccessDenied
	}

	resp := models.FromDomainBooking(booking)

	// Код check-in показываем только клиенту и только пока он актуален
	if booking.ClientID == userID && booking.CanCheckIn() {
		code := s.checkInCode.Code(booking.ID)
		resp.CheckInCode = &code
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return resp, nil
}

// GetUserBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	// Конвертируем статус из строки в domain.BookingStatus
	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetGuideBookings получает бронирования гида с гибкой фильтрацией
// Поддерживает фильтрацию по услуге, периоду, статусу и включению
// неактивных бронирований. Доступно только самому гиду
//
// Примеры использования:
// - Все активные бронирования: GetGuideBookings(ctx, &GetGuideBookingsRequest{GuideID: 123, UserID: 123})
// - Бронирования по конкретной услуге: указать ServiceID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Бронирования за период: StartDate и EndDate указывают на разные даты
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отмененные: IncludeInactive = true
func (s *Service) GetGuideBookings(ctx context.Context, req *models.GetGuideBookingsRequest) (*models.BookingListResponse, error) {
	// Логируем запрос с деталями фильтрации
	logMsg := fmt.Sprintf("GetGuideBookings: fetching bookings for guide=%d, user=%d", req.GuideID, req.UserID)
	if req.ServiceID != nil {
		logMsg += fmt.Sprintf(", service=%d", *req.ServiceID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s",
			req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	// Ростер бронирований видит только сам гид
	if req.UserID != req.GuideID {
		s.logger.Warn("GetGuideBookings: access denied for user=%d to guide=%d roster", req.UserID, req.GuideID)
		return nil, ErrAccessDenied
	}

	// Конвертируем request в domain фильтр
	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetGuideBookings: invalid filter for guide=%d: %v", req.GuideID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	// Получаем бронирования с фильтрацией
	bookings, err := s.bookingRepo.GetByGuideWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetGuideBookings: repository error for guide=%d: %v", req.GuideID, err)
		return nil, fmt.Errorf("%w: GetGuideBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetGuideBookings: successfully fetched %d bookings for guide=%d", len(bookings), req.GuideID)
	return models.FromDomainBookingList(bookings), nil
}

// Confirm подтверждает бронирование. Доступно только гиду бронирования.
// Переход разрешен только из pending
func (s *Service) Confirm(ctx context.Context, bookingID int64, userID int64) error {
	return s.transition(ctx, bookingID, userID, domain.EventConfirm)
}

// Complete завершает бронирование после оказания услуги.
// Доступно только гиду; переход разрешен только из in_progress
func (s *Service) Complete(ctx context.Context, bookingID int64, userID int64) error {
	return s.transition(ctx, bookingID, userID, domain.EventComplete)
}

// Dispute открывает спор по бронированию. Доступно клиенту и гиду.
// Спор замораживает финансовые операции до ручного разбора
func (s *Service) Dispute(ctx context.Context, bookingID int64, userID int64) error {
	return s.transition(ctx, bookingID, userID, domain.EventDispute)
}

// transition выполняет именованный переход состояния с проверкой прав.
// Ошибка CAS в репозитории транслируется в ErrInvalidTransition:
// статус уже изменился конкурентным запросом
func (s *Service) transition(ctx context.Context, bookingID int64, userID int64, event domain.BookingEvent) error {
	s.logger.Info("transition: %s booking id=%d by user=%d", event, bookingID, userID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("transition: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("transition: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
	}

	var allowed bool
	var apply func(context.Context, int64) error

	switch event {
	case domain.EventConfirm:
		// Подтверждает только гид
		if booking.GuideID != userID {
			s.logger.Warn("transition: user=%d is not the guide of booking id=%d", userID, bookingID)
			return ErrAccessDenied
		}
		allowed = booking.CanBeConfirmed()
		apply = s.bookingRepo.Confirm
	case domain.EventComplete:
		if booking.GuideID != userID {
			s.logger.Warn("transition: user=%d is not the guide of booking id=%d", userID, bookingID)
			return ErrAccessDenied
		}
		allowed = booking.CanBeCompleted()
		apply = s.bookingRepo.Complete
	case domain.EventDispute:
		// Спор может открыть любая из сторон
		if booking.ClientID != userID && booking.GuideID != userID {
			s.logger.Warn("transition: access denied for user=%d to booking id=%d", userID, bookingID)
			return ErrAccessDenied
		}
		allowed = booking.CanBeDisputed()
		apply = s.bookingRepo.Dispute
	default:
		return fmt.Errorf("%w: unsupported event %s", ErrInvalidInput, event)
	}

	if !allowed {
		s.logger.Warn("transition: %s not allowed for booking id=%d, status=%s", event, bookingID, booking.Status)
		return ErrInvalidTransition
	}

	if err := apply(ctx, bookingID); err != nil {
		switch {
		case errors.Is(err, bookingRepo.ErrBookingNotFound):
			s.logger.Warn("transition: booking id=%d disappeared during %s", bookingID, event)
			return ErrBookingNotFound
		case errors.Is(err, bookingRepo.ErrStatusConflict):
			s.logger.Warn("transition: concurrent status change for booking id=%d during %s", bookingID, event)
			return ErrInvalidTransition
		default:
			s.logger.Error("transition: repository error for booking id=%d: %v", bookingID, err)
			return fmt.Errorf("%w: transition - repository error: %v", ErrInternal, err)
		}
	}

	s.logger.Info("transition: successfully applied %s to booking id=%d", event, bookingID)
	return nil
}
