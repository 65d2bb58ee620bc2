package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/guidely/GuideBookingService/internal/api/handlers"
	"github.com/guidely/GuideBookingService/internal/domain"
	getAvailableSlots "github.com/guidely/GuideBookingService/internal/usecase/get_available_slots"
)

const (
	msgInvalidGuideID   = "некорректный ID гида"
	msgInvalidServiceID = "некорректный ID услуги"
	msgInvalidDates     = "некорректные даты диапазона"
	msgInvalidRange     = "некорректный диапазон дат"
	msgRangeTooWide     = "слишком широкий диапазон дат"
	msgServiceNotFound  = "услуга не найдена"
	msgNotOwnedByGuide  = "услуга не принадлежит этому гиду"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/guides/{guideId}/services/{serviceId}/availability
// Query params: from, to (обязательны, формат "2006-01-02")
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	guideID, err := strconv.ParseInt(vars["guideId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET availability - Invalid guide ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidGuideID)
		return
	}

	serviceID, err := strconv.ParseInt(vars["serviceId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET availability - Invalid service ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidServiceID)
		return
	}

	from, err := time.Parse(domain.DateFormat, r.URL.Query().Get("from"))
	if err != nil {
		h.logger.Warn("GET availability - Invalid from date: guide_id=%d: %v", guideID, err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	to, err := time.Parse(domain.DateFormat, r.URL.Query().Get("to"))
	if err != nil {
		h.logger.Warn("GET availability - Invalid to date: guide_id=%d: %v", guideID, err)
		handlers.RespondBadRequest(w, msgInvalidDates)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		GuideID:   guideID,
		ServiceID: serviceID,
		From:      from,
		To:        to,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrServiceNotFound):
			h.logger.Warn("GET availability - Service not found: guide_id=%d, service_id=%d",
				guideID, serviceID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, getAvailableSlots.ErrServiceNotOwnedByGuide):
			h.logger.Warn("GET availability - Service not owned by guide: guide_id=%d, service_id=%d",
				guideID, serviceID)
			handlers.RespondNotFound(w, msgNotOwnedByGuide)

		case errors.Is(err, getAvailableSlots.ErrRangeTooWide):
			h.logger.Warn("GET availability - Range too wide: guide_id=%d, from=%s, to=%s",
				guideID, r.URL.Query().Get("from"), r.URL.Query().Get("to"))
			handlers.RespondBadRequest(w, msgRangeTooWide)

		case errors.Is(err, getAvailableSlots.ErrInvalidRange),
			errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET availability - Invalid range: guide_id=%d: %v", guideID, err)
			handlers.RespondBadRequest(w, msgInvalidRange)

		default:
			h.logger.Error("GET availability - Failed: guide_id=%d, service_id=%d, error=%v",
				guideID, serviceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET availability - Availability retrieved successfully: guide_id=%d, service_id=%d, days=%d",
		guideID, serviceID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
