package get_guide_bookings

import (
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
	"github.com/guidely/GuideBookingService/internal/service/bookings/models"
)

// ToServiceRequest собирает запрос к сервису из path и query параметров.
// Поддерживаемые query параметры: serviceId, from, to, status, includeInactive
func ToServiceRequest(userID, guideID int64, query url.Values) (*models.GetGuideBookingsRequest, error) {
	req := &models.GetGuideBookingsRequest{
		UserID:  userID,
		GuideID: guideID,
	}

	if raw := query.Get("serviceId"); raw != "" {
		serviceID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || serviceID <= 0 {
			return nil, fmt.Errorf("invalid serviceId: %q", raw)
		}
		req.ServiceID = &serviceID
	}

	if raw := query.Get("from"); raw != "" {
		from, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid from date: %q", raw)
		}
		req.StartDate = &from
	}

	if raw := query.Get("to"); raw != "" {
		to, err := time.Parse(domain.DateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("invalid to date: %q", raw)
		}
		req.EndDate = &to
	}

	if raw := query.Get("status"); raw != "" {
		status := raw
		req.Status = &status
	}

	if raw := query.Get("includeInactive"); raw != "" {
		includeInactive, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid includeInactive: %q", raw)
		}
		req.IncludeInactive = includeInactive
	}

	return req, nil
}
