package get_guide_bookings

import (
	"context"

	"github.com/guidely/GuideBookingService/internal/service/bookings/models"
)

type BookingService interface {
	GetGuideBookings(ctx context.Context, req *models.GetGuideBookingsRequest) (*models.BookingListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
