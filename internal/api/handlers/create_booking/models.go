package create_booking

import (
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
	createBooking "github.com/guidely/GuideBookingService/internal/usecase/create_booking"
	"github.com/guidely/GuideBookingService/pkg/types"
)

// CreateBookingRequest HTTP request model
type CreateBookingRequest struct {
	GuideID      int64  `json:"guideId"`
	ServiceID    int64  `json:"serviceId"`
	Date         string `json:"date"`      // "2026-09-15"
	StartTime    string `json:"startTime"` // "10:00"
	Participants int    `json:"participants"`
	PaymentType  string `json:"paymentType"` // "full" | "deposit" | "installment"
	ClientName   string `json:"clientName"`
	ClientEmail  string `json:"clientEmail"`
	ClientPhone  string `json:"clientPhone,omitempty"`
}

// BookingResponse HTTP response model
type BookingResponse struct {
	ID              int64  `json:"id"`
	BookingNumber   string `json:"bookingNumber"`
	ClientID        int64  `json:"clientId"`
	GuideID         int64  `json:"guideId"`
	ServiceID       int64  `json:"serviceId"`
	Date            string `json:"date"`
	StartTime       string `json:"startTime"`
	EndTime         string `json:"endTime"`
	Participants    int    `json:"participants"`
	Status          string `json:"status"`
	TotalPriceCents int64  `json:"totalPriceCents"`
	DepositCents    int64  `json:"depositCents"`
	AmountPaidCents int64  `json:"amountPaidCents"`
	AmountDueCents  int64  `json:"amountDueCents"`
	PaymentType     string `json:"paymentType"`
	CreatedAt       string `json:"createdAt"`
	UpdatedAt       string `json:"updatedAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateBookingRequest) ToUseCaseRequest(userID int64) (*createBooking.Request, error) {
	// Парсим дату
	date, err := time.Parse(domain.DateFormat, r.Date)
	if err != nil {
		return nil, err
	}

	// Парсим время
	startTime, err := types.NewTimeStringFromString(r.StartTime)
	if err != nil {
		return nil, err
	}

	return &createBooking.Request{
		UserID:       userID,
		GuideID:      r.GuideID,
		ServiceID:    r.ServiceID,
		Date:         date,
		StartTime:    startTime,
		Participants: r.Participants,
		PaymentType:  r.PaymentType,
		ClientName:   r.ClientName,
		ClientEmail:  r.ClientEmail,
		ClientPhone:  r.ClientPhone,
	}, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createBooking.Response) *BookingResponse {
	return &BookingResponse{
		ID:              resp.ID,
		BookingNumber:   resp.BookingNumber,
		ClientID:        resp.ClientID,
		GuideID:         resp.GuideID,
		ServiceID:       resp.ServiceID,
		Date:            resp.Date.Format(domain.DateFormat),
		StartTime:       resp.StartTime.String(),
		EndTime:         resp.EndTime.String(),
		Participants:    resp.Participants,
		Status:          resp.Status,
		TotalPriceCents: resp.TotalPriceCents,
		DepositCents:    resp.DepositCents,
		AmountPaidCents: resp.AmountPaidCents,
		AmountDueCents:  resp.AmountDueCents,
		PaymentType:     resp.PaymentType,
		CreatedAt:       resp.CreatedAt.Format(time.RFC3339),
		UpdatedAt:       resp.UpdatedAt.Format(time.RFC3339),
	}
}
