package get_guide_bookings

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/guidely/GuideBookingService/internal/api/handlers"
	"github.com/guidely/GuideBookingService/internal/api/middleware"
	"github.com/guidely/GuideBookingService/internal/service/bookings"
)

const (
	msgInvalidGuideID = "некорректный ID гида"
	msgMissingUserID  = "отсутствует ID пользователя"
	msgInvalidParams  = "некорректные параметры запроса"
	msgForbidden      = "ростер бронирований доступен только самому гиду"
)

type Handler struct {
	service BookingService
	logger  Logger
}

func NewHandler(service BookingService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/guides/{guideId}/bookings
// Query params: serviceId, from, to, status, includeInactive (все опциональны)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	guideID, err := strconv.ParseInt(vars["guideId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /guides/{guideId}/bookings - Invalid guide ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuideID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /guides/{guideId}/bookings - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	serviceReq, err := ToServiceRequest(userID, guideID, r.URL.Query())
	if err != nil {
		h.logger.Warn("GET /guides/{guideId}/bookings - Invalid query params: guide_id=%d: %v", guideID, err)
		handlers.RespondBadRequest(w, msgInvalidParams)
		return
	}

	result, err := h.service.GetGuideBookings(r.Context(), serviceReq)
	if err != nil {
		switch {
		case errors.Is(err, bookings.ErrAccessDenied):
			h.logger.Warn("GET /guides/{guideId}/bookings - Access denied: guide_id=%d, user_id=%d",
				guideID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, bookings.ErrInvalidInput):
			h.logger.Warn("GET /guides/{guideId}/bookings - Invalid params: guide_id=%d: %v", guideID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /guides/{guideId}/bookings - Failed to get bookings: guide_id=%d, error=%v",
				guideID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /guides/{guideId}/bookings - Bookings retrieved successfully: guide_id=%d, count=%d",
		guideID, len(result.Bookings))
	handlers.RespondJSON(w, http.StatusOK, result.Bookings)
}
