package cancel_booking

import (
	cancelBooking "github.com/guidely/GuideBookingService/internal/usecase/cancel_booking"
)

// CancelBookingResponse HTTP response model
type CancelBookingResponse struct {
	BookingID       int64  `json:"bookingId"`
	Status          string `json:"status"`
	AmountPaidCents int64  `json:"amountPaidCents"`
	RefundCents     int64  `json:"refundCents"`
	FeeCents        int64  `json:"feeCents"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *cancelBooking.Response) *CancelBookingResponse {
	return &CancelBookingResponse{
		BookingID:       resp.BookingID,
		Status:          resp.Status,
		AmountPaidCents: resp.AmountPaidCents,
		RefundCents:     resp.RefundCents,
		FeeCents:        resp.FeeCents,
	}
}
