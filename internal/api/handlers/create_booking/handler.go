package create_booking

import (
	"errors"
	"net/http"

	"github.com/guidely/GuideBookingService/internal/api/handlers"
	"github.com/guidely/GuideBookingService/internal/api/middleware"
	createBooking "github.com/guidely/GuideBookingService/internal/usecase/create_booking"
)

const (
	msgInvalidRequestBody     = "некорректное тело запроса"
	msgInvalidDate            = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID          = "отсутствует ID пользователя"
	msgGuideNotFound          = "гид не найден"
	msgGuideInactive          = "гид приостановил прием бронирований"
	msgServiceNotFound        = "услуга не найдена"
	msgDateBlocked            = "выбранная дата закрыта для бронирования"
	msgNotEnoughSpots         = "недостаточно свободных мест на выбранную дату"
	msgDateInPast             = "дата бронирования уже прошла"
	msgPaymentDeclined        = "платеж отклонен, бронирование не создано"
	msgPaymentUnavailable     = "платежный сервис временно недоступен, попробуйте позже"
	msgServiceNotOwnedByGuide = "услуга не принадлежит выбранному гиду"
)

type Handler struct {
	useCase CreateBookingUseCase
	logger  Logger
}

func NewHandler(useCase CreateBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /bookings - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	// Вызываем use case
	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		// Обработка ошибок use case
		switch {
		case errors.Is(err, createBooking.ErrInsufficientCapacity):
			h.logger.Warn("POST /bookings - Not enough spots: user_id=%d, guide_id=%d", userID, req.GuideID)
			handlers.RespondConflict(w, msgNotEnoughSpots)

		case errors.Is(err, createBooking.ErrDateBlocked):
			h.logger.Warn("POST /bookings - Date blocked: user_id=%d, guide_id=%d", userID, req.GuideID)
			handlers.RespondConflict(w, msgDateBlocked)

		case errors.Is(err, createBooking.ErrGuideNotFound):
			h.logger.Warn("POST /bookings - Guide not found: guide_id=%d", req.GuideID)
			handlers.RespondNotFound(w, msgGuideNotFound)

		case errors.Is(err, createBooking.ErrGuideInactive):
			h.logger.Warn("POST /bookings - Guide inactive: guide_id=%d", req.GuideID)
			handlers.RespondConflict(w, msgGuideInactive)

		case errors.Is(err, createBooking.ErrServiceNotFound):
			h.logger.Warn("POST /bookings - Service not found: service_id=%d", req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, createBooking.ErrServiceNotOwnedByGuide):
			h.logger.Warn("POST /bookings - Service not owned by guide: service_id=%d, guide_id=%d",
				req.ServiceID, req.GuideID)
			handlers.RespondBadRequest(w, msgServiceNotOwnedByGuide)

		case errors.Is(err, createBooking.ErrDateInPast):
			h.logger.Warn("POST /bookings - Date in past: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, createBooking.ErrInvalidDate):
			h.logger.Warn("POST /bookings - Invalid date: user_id=%d, date=%s", userID, req.Date)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createBooking.ErrPaymentDeclined):
			h.logger.Warn("POST /bookings - Payment declined: user_id=%d, guide_id=%d", userID, req.GuideID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)

		case errors.Is(err, createBooking.ErrPaymentUnavailable):
			h.logger.Warn("POST /bookings - Payment unavailable: user_id=%d, guide_id=%d", userID, req.GuideID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentUnavailable)

		case errors.Is(err, createBooking.ErrInvalidInput):
			h.logger.Warn("POST /bookings - Invalid input: user_id=%d: %v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings - Failed to create booking: user_id=%d, guide_id=%d, error=%v",
				userID, req.GuideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	// Формируем HTTP ответ
	response := FromUseCaseResponse(result)

	h.logger.Info("POST /bookings - Booking created successfully: booking_id=%d, number=%s, user_id=%d",
		result.ID, result.BookingNumber, userID)
	handlers.RespondJSON(w, http.StatusCreated, response)
}
