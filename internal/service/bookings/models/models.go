package models

import (
	"errors"
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid booking status")
)

// Request модели

// GetUserBookingsRequest запрос на получение бронирований клиента
type GetUserBookingsRequest struct {
	UserID int64   `json:"userId"`
	Status *string `json:"status,omitempty"`
}

// GetGuideBookingsRequest запрос на получение бронирований гида
type GetGuideBookingsRequest struct {
	UserID          int64      `json:"userId"`
	GuideID         int64      `json:"guideId"`
	ServiceID       *int64     `json:"serviceId,omitempty"`       // Фильтр по услуге (опционально)
	StartDate       *time.Time `json:"startDate,omitempty"`       // Начало периода (опционально)
	EndDate         *time.Time `json:"endDate,omitempty"`         // Конец периода (опционально)
	Status          *string    `json:"status,omitempty"`          // Фильтр по статусу (опционально)
	IncludeInactive bool       `json:"includeInactive,omitempty"` // Включить отмененные бронирования
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *GetGuideBookingsRequest) ToDomainFilter() (domain.GuideBookingsFilter, error) {
	filter := domain.GuideBookingsFilter{
		GuideID:         r.GuideID,
		ServiceID:       r.ServiceID,
		StartDate:       r.StartDate,
		EndDate:         r.EndDate,
		IncludeInactive: r.IncludeInactive,
	}

	// Конвертируем статус если указан
	if r.Status != nil {
		status, err := ToDomainBookingStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// Response модели

// BookingResponse ответ с данными бронирования
type BookingResponse struct {
	ID            int64  `json:"id"`
	BookingNumber string `json:"bookingNumber"`
	ClientID      int64  `json:"clientId"`
	GuideID       int64  `json:"guideId"`
	ServiceID     int64  `json:"serviceId"`

	StartDate    string `json:"startDate"` // "2026-09-15"
	StartTime    string `json:"startTime"` // "10:00"
	EndTime      string `json:"endTime"`   // "14:00"
	Participants int    `json:"participants"`

	TotalPriceCents int64  `json:"totalPriceCents"`
	DepositCents    int64  `json:"depositCents"`
	AmountPaidCents int64  `json:"amountPaidCents"`
	AmountDueCents  int64  `json:"amountDueCents"`
	PaymentType     string `json:"paymentType"`
	Status          string `json:"status"`

	ClientName  string `json:"clientName"`
	ClientEmail string `json:"clientEmail"`
	ClientPhone string `json:"clientPhone"`

	CancellationFeeCents int64 `json:"cancellationFeeCents"`
	RefundCents          int64 `json:"refundCents"`

	// Код check-in виден только владельцу бронирования
	CheckInCode *string `json:"checkInCode,omitempty"`

	ConfirmedAt *string `json:"confirmedAt,omitempty"` // ISO 8601 format
	CompletedAt *string `json:"completedAt,omitempty"` // ISO 8601 format
	CancelledAt *string `json:"cancelledAt,omitempty"` // ISO 8601 format

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// BookingListResponse ответ со списком бронирований
type BookingListResponse struct {
	Bookings []BookingResponse `json:"bookings"`
}

// Методы конвертации

// FromDomainBooking конвертирует domain модель в DTO
func FromDomainBooking(b *domain.Booking) *BookingResponse {
	if b == nil {
		return nil
	}

	resp := &BookingResponse{
		ID:                   b.ID,
		BookingNumber:        b.BookingNumber,
		ClientID:             b.ClientID,
		GuideID:              b.GuideID,
		ServiceID:            b.ServiceID,
		StartDate:            b.StartDate.Format(domain.DateFormat),
		StartTime:            b.StartTime.String(),
		EndTime:              b.EndTime.String(),
		Participants:         b.Participants,
		TotalPriceCents:      b.TotalPriceCents,
		DepositCents:         b.DepositCents,
		AmountPaidCents:      b.AmountPaidCents,
		AmountDueCents:       b.AmountDueCents,
		PaymentType:          string(b.PaymentType),
		Status:               string(b.Status),
		ClientName:           b.ClientName,
		ClientEmail:          b.ClientEmail,
		ClientPhone:          b.ClientPhone,
		CancellationFeeCents: b.CancellationFeeCents,
		RefundCents:          b.RefundCents,
		CreatedAt:            b.CreatedAt,
		UpdatedAt:            b.UpdatedAt,
	}

	// Конвертируем временные метки в строки ISO 8601
	if b.ConfirmedAt != nil {
		confirmedStr := b.ConfirmedAt.Format(time.RFC3339)
		resp.ConfirmedAt = &confirmedStr
	}
	if b.CompletedAt != nil {
		completedStr := b.CompletedAt.Format(time.RFC3339)
		resp.CompletedAt = &completedStr
	}
	if b.CancelledAt != nil {
		cancelledStr := b.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainBookingList конвертирует список domain моделей в DTO
func FromDomainBookingList(bookings []*domain.Booking) *BookingListResponse {
	if bookings == nil {
		return &BookingListResponse{
			Bookings: []BookingResponse{},
		}
	}

	resp := &BookingListResponse{
		Bookings: make([]BookingResponse, 0, len(bookings)),
	}
	for _, b := range bookings {
		resp.Bookings = append(resp.Bookings, *FromDomainBooking(b))
	}

	return resp
}

// ToDomainBookingStatus конвертирует строку в domain статус
func ToDomainBookingStatus(status string) (domain.BookingStatus, error) {
	switch domain.BookingStatus(status) {
	case domain.StatusPending,
		domain.StatusConfirmed,
		domain.StatusInProgress,
		domain.StatusCompleted,
		domain.StatusCancelled,
		domain.StatusDisputed,
		domain.StatusRefunded:
		return domain.BookingStatus(status), nil
	default:
		return "", ErrInvalidStatus
	}
}
