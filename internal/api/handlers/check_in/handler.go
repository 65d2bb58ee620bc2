package check_in

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/guidely/GuideBookingService/internal/api/handlers"
	"github.com/guidely/GuideBookingService/internal/api/middleware"
	checkIn "github.com/guidely/GuideBookingService/internal/usecase/check_in"
)

const (
	msgInvalidBookingID   = "некорректный ID бронирования"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgNotFound           = "бронирование не найдено"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgForbidden          = "check-in проводит только гид бронирования"
	msgInvalidCode        = "код check-in не подошел"
	msgNotConfirmed       = "check-in доступен только для подтвержденного бронирования"
	msgAlreadyCheckedIn   = "клиент уже отмечен на этом бронировании"
	msgPaymentDeclined    = "остаток оплаты отклонен, check-in не выполнен"
	msgPaymentUnavailable = "платежный сервис временно недоступен, попробуйте позже"
)

type Handler struct {
	useCase CheckInUseCase
	logger  Logger
}

func NewHandler(useCase CheckInUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/bookings/{bookingId}/check-in
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	bookingID, err := strconv.ParseInt(vars["bookingId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid booking ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBookingID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /bookings/{id}/check-in - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CheckInRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /bookings/{id}/check-in - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &checkIn.Request{
		UserID:    userID,
		BookingID: bookingID,
		Code:      req.Code,
	})
	if err != nil {
		switch {
		case errors.Is(err, checkIn.ErrBookingNotFound):
			h.logger.Warn("POST /bookings/{id}/check-in - Booking not found: booking_id=%d", bookingID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, checkIn.ErrAccessDenied):
			h.logger.Warn("POST /bookings/{id}/check-in - Access denied: booking_id=%d, user_id=%d",
				bookingID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, checkIn.ErrInvalidCode):
			h.logger.Warn("POST /bookings/{id}/check-in - Invalid code: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusUnprocessableEntity, msgInvalidCode)

		case errors.Is(err, checkIn.ErrAlreadyCheckedIn):
			h.logger.Warn("POST /bookings/{id}/check-in - Already checked in: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgAlreadyCheckedIn)

		case errors.Is(err, checkIn.ErrNotConfirmed):
			h.logger.Warn("POST /bookings/{id}/check-in - Not confirmed: booking_id=%d", bookingID)
			handlers.RespondConflict(w, msgNotConfirmed)

		case errors.Is(err, checkIn.ErrPaymentDeclined):
			h.logger.Warn("POST /bookings/{id}/check-in - Payment declined: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusPaymentRequired, msgPaymentDeclined)

		case errors.Is(err, checkIn.ErrPaymentUnavailable):
			h.logger.Warn("POST /bookings/{id}/check-in - Payment unavailable: booking_id=%d", bookingID)
			handlers.RespondError(w, http.StatusServiceUnavailable, msgPaymentUnavailable)

		case errors.Is(err, checkIn.ErrInvalidInput):
			h.logger.Warn("POST /bookings/{id}/check-in - Invalid input: booking_id=%d: %v", bookingID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /bookings/{id}/check-in - Failed: booking_id=%d, error=%v", bookingID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /bookings/{id}/check-in - Check-in done: booking_id=%d, status=%s",
		bookingID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
