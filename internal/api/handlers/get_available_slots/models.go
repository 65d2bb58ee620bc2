package get_available_slots

import (
	getAvailableSlots "github.com/guidely/GuideBookingService/internal/usecase/get_available_slots"
)

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	GuideID   int64         `json:"guideId"`
	ServiceID int64         `json:"serviceId"`
	Days      []DayResponse `json:"days"`
}

// DayResponse доступность одной даты диапазона
type DayResponse struct {
	Date                     string `json:"date"`
	TotalSpots               int    `json:"totalSpots"`
	AvailableSpots           int    `json:"availableSpots"`
	Blocked                  bool   `json:"blocked"`
	PricePerParticipantCents int64  `json:"pricePerParticipantCents"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *AvailabilityResponse {
	days := make([]DayResponse, 0, len(resp.Days))
	for _, d := range resp.Days {
		days = append(days, DayResponse{
			Date:                     d.Date,
			TotalSpots:               d.TotalSpots,
			AvailableSpots:           d.AvailableSpots,
			Blocked:                  d.Blocked,
			PricePerParticipantCents: d.PricePerParticipantCents,
		})
	}

	return &AvailabilityResponse{
		GuideID:   resp.GuideID,
		ServiceID: resp.ServiceID,
		Days:      days,
	}
}
