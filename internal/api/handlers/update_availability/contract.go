package update_availability

import (
	"context"

	"github.com/guidely/GuideBookingService/internal/service/availability/models"
)

type AvailabilityService interface {
	SetSlot(ctx context.Context, req *models.SetSlotRequest) (*models.SlotResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
