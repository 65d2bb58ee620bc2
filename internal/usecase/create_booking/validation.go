package create_booking

import (
	"fmt"
	"strings"
	"time"

	"github.com/guidely/GuideBookingService/internal/domain"
)

// validateRequest проверяет входные данные запроса
func validateRequest(req *Request) error {
	if req.UserID <= 0 {
		return fmt.Errorf("%w: user id must be positive", ErrInvalidInput)
	}
	if req.GuideID <= 0 {
		return fmt.Errorf("%w: guide id must be positive", ErrInvalidInput)
	}
	if req.ServiceID <= 0 {
		return fmt.Errorf("%w: service id must be positive", ErrInvalidInput)
	}

	if req.Participants < domain.MinParticipants || req.Participants > domain.MaxParticipants {
		return fmt.Errorf("%w: participants must be between %d and %d",
			ErrInvalidInput, domain.MinParticipants, domain.MaxParticipants)
	}

	if err := req.StartTime.Validate(); err != nil {
		return fmt.Errorf("%w: invalid start time: %v", ErrInvalidInput, err)
	}

	switch domain.PaymentType(req.PaymentType) {
	// installment оплачивается по депозитной схеме: депозит сейчас,
	// остаток на check-in
	case domain.PaymentTypeFull, domain.PaymentTypeDeposit, domain.PaymentTypeInstallment:
	default:
		return fmt.Errorf("%w: payment type must be full, deposit or installment", ErrInvalidInput)
	}

	name := strings.TrimSpace(req.ClientName)
	if name == "" || len(name) > domain.MaxClientNameLength {
		return fmt.Errorf("%w: client name is required", ErrInvalidInput)
	}
	if !strings.Contains(req.ClientEmail, "@") {
		return fmt.Errorf("%w: client email is invalid", ErrInvalidInput)
	}

	return nil
}

// validateDate проверяет, что дата бронирования не в прошлом
func validateDate(date time.Time, now time.Time) error {
	if date.IsZero() {
		return ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	bookingDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)

	if bookingDay.Before(today) {
		return ErrDateInPast
	}

	return nil
}

// depositFor вычисляет размер депозита в центах.
// Целочисленное деление: остаток уходит во вторую ногу платежа,
// поэтому paid + due == total соблюдается точно.
func depositFor(totalCents int64, percent int) int64 {
	if percent < domain.MinDepositPercent || percent > domain.MaxDepositPercent {
		percent = domain.DefaultDepositPercent
	}
	return totalCents * int64(percent) / 100
}
