package update_availability

import (
	"github.com/guidely/GuideBookingService/internal/service/availability/models"
)

// UpdateAvailabilityRequest HTTP request model
type UpdateAvailabilityRequest struct {
	TotalCapacity      int    `json:"totalCapacity"`
	Blocked            bool   `json:"blocked,omitempty"`
	PriceOverrideCents *int64 `json:"priceOverrideCents,omitempty"`
}

// ToServiceRequest конвертирует HTTP request в запрос к сервису
func (r *UpdateAvailabilityRequest) ToServiceRequest(userID, guideID, serviceID int64, date string) *models.SetSlotRequest {
	return &models.SetSlotRequest{
		UserID:             userID,
		GuideID:            guideID,
		ServiceID:          serviceID,
		Date:               date,
		TotalCapacity:      r.TotalCapacity,
		Blocked:            r.Blocked,
		PriceOverrideCents: r.PriceOverrideCents,
	}
}
