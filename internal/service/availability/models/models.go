package models

import (
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
)

// Request модели

// SetSlotRequest запрос гида на настройку слота доступности
type SetSlotRequest struct {
	UserID             int64  `json:"userId"`
	GuideID            int64  `json:"guideId"`
	ServiceID          int64  `json:"serviceId"`
	Date               string `json:"date"` // "2026-09-15"
	TotalCapacity      int    `json:"totalCapacity"`
	Blocked            bool   `json:"blocked,omitempty"`
	PriceOverrideCents *int64 `json:"priceOverrideCents,omitempty"`
}

// ToDomainSlot конвертирует request в domain модель
func (r *SetSlotRequest) ToDomainSlot(date time.Time) *domain.AvailabilitySlot {
	return &domain.AvailabilitySlot{
		GuideID:            r.GuideID,
		ServiceID:          r.ServiceID,
		Date:               date,
		TotalCapacity:      r.TotalCapacity,
		Blocked:            r.Blocked,
		PriceOverrideCents: r.PriceOverrideCents,
	}
}

// Response модели

// SlotResponse ответ с данными слота доступности
type SlotResponse struct {
	GuideID            int64  `json:"guideId"`
	ServiceID          int64  `json:"serviceId"`
	Date               string `json:"date"`
	TotalCapacity      int    `json:"totalCapacity"`
	ReservedCount      int    `json:"reservedCount"`
	AvailableSpots     int    `json:"availableSpots"`
	Blocked            bool   `json:"blocked"`
	PriceOverrideCents *int64 `json:"priceOverrideCents,omitempty"`
}

// SlotListResponse ответ со списком слотов
type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

// FromDomainSlot конвертирует domain модель в DTO
func FromDomainSlot(s *domain.AvailabilitySlot) *SlotResponse {
	if s == nil {
		return nil
	}

	return &SlotResponse{
		GuideID:            s.GuideID,
		ServiceID:          s.ServiceID,
		Date:               s.Date.Format(domain.DateFormat),
		TotalCapacity:      s.TotalCapacity,
		ReservedCount:      s.ReservedCount,
		AvailableSpots:     s.AvailableSpots(),
		Blocked:            s.Blocked,
		PriceOverrideCents: s.PriceOverrideCents,
	}
}

// FromDomainSlotList конвертирует список domain моделей в DTO
func FromDomainSlotList(slots []*domain.AvailabilitySlot) *SlotListResponse {
	if slots == nil {
		return &SlotListResponse{
			Slots: []SlotResponse{},
		}
	}

	resp := &SlotListResponse{
		Slots: make([]SlotResponse, 0, len(slots)),
	}
	for _, s := range slots {
		resp.Slots = append(resp.Slots, *FromDomainSlot(s))
	}

	return resp
}
