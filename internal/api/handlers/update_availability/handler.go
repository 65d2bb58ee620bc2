package update_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/guidely/GuideBookingService/internal/api/handlers"
	"github.com/guidely/GuideBookingService/internal/api/middleware"
	"github.com/guidely/GuideBookingService/internal/service/availability"
)

const (
	msgInvalidGuideID       = "некорректный ID гида"
	msgInvalidServiceID     = "некорректный ID услуги"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgForbidden            = "настраивать доступность может только сам гид"
	msgCapacityBelowReserve = "вместимость меньше уже забронированных мест"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/guides/{guideId}/services/{serviceId}/availability/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	guideID, err := strconv.ParseInt(vars["guideId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT availability - Invalid guide ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuideID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	date := vars["date"]

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req UpdateAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT availability - Invalid request body: guide_id=%d: %v", guideID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SetSlot(r.Context(), req.ToServiceRequest(userID, guideID, serviceID, date))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT availability - Access denied: guide_id=%d, user_id=%d", guideID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, availability.ErrCapacityBelowReserved):
			h.logger.Warn("PUT availability - Capacity below reserved: guide_id=%d, date=%s, capacity=%d",
				guideID, date, req.TotalCapacity)
			handlers.RespondConflict(w, msgCapacityBelowReserve)

		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT availability - Invalid input: guide_id=%d, date=%s: %v", guideID, date, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PUT availability - Failed: guide_id=%d, service_id=%d, date=%s, error=%v",
				guideID, serviceID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT availability - Slot updated successfully: guide_id=%d, service_id=%d, date=%s",
		guideID, serviceID, date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
