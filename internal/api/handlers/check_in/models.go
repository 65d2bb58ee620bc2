package check_in

import (
	checkIn "github.com/guidely/GuideBookingService/internal/usecase/check_in"
)

// CheckInRequest HTTP request model
type CheckInRequest struct {
	Code string `json:"code"`
}

// CheckInResponse HTTP response model
type CheckInResponse struct {
	BookingID       int64  `json:"bookingId"`
	Status          string `json:"status"`
	AmountPaidCents int64  `json:"amountPaidCents"`
	AmountDueCents  int64  `json:"amountDueCents"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *checkIn.Response) *CheckInResponse {
	return &CheckInResponse{
		BookingID:       resp.BookingID,
		Status:          resp.Status,
		AmountPaidCents: resp.AmountPaidCents,
		AmountDueCents:  resp.AmountDueCents,
	}
}
