package domain

import (
	"time"

	"github.com/guidely/GuideBookingService/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPending    BookingStatus = "pending"
	StatusConfirmed  BookingStatus = "confirmed"
	StatusInProgress BookingStatus = "in_progress"
	StatusCompleted  BookingStatus = "completed"
	StatusCancelled  BookingStatus = "cancelled"
	StatusDisputed   BookingStatus = "disputed"
	StatusRefunded   BookingStatus = "refunded"
)

// BookingEvent named transition of the booking state machine
type BookingEvent string

const (
	EventConfirm  BookingEvent = "confirm"
	EventCancel   BookingEvent = "cancel"
	EventCheckIn  BookingEvent = "check_in"
	EventComplete BookingEvent = "complete"
	EventDispute  BookingEvent = "dispute"
)

// PaymentType how the client pays for the booking
type PaymentType string

const (
	PaymentTypeFull        PaymentType = "full"
	PaymentTypeDeposit     PaymentType = "deposit"
	PaymentTypeInstallment PaymentType = "installment"
)

// Booking represents a reservation of a guide's service slot.
// All money fields are integer cents; AmountPaidCents + AmountDueCents
// must equal TotalPriceCents at all times.
type Booking struct {
	ID            int64
	BookingNumber string
	ClientID      int64
	GuideID       int64
	ServiceID     int64

	StartDate    time.Time
	StartTime    types.TimeString
	EndTime      types.TimeString
	Participants int

	TotalPriceCents int64
	DepositCents    int64
	AmountPaidCents int64
	AmountDueCents  int64
	PaymentType     PaymentType
	Status          BookingStatus

	// Denormalized client contact details for the guide's roster
	ClientName  string
	ClientEmail string
	ClientPhone string

	CancellationFeeCents int64
	RefundCents          int64

	ConfirmedAt *time.Time
	CompletedAt *time.Time
	CancelledAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsTerminal returns true if no further transition is defined for the booking
func (b *Booking) IsTerminal() bool {
	return b.Status == StatusCompleted || b.Status == StatusCancelled || b.Status == StatusRefunded
}

// IsActive returns true if the booking still holds capacity on its slot
func (b *Booking) IsActive() bool {
	return b.Status != StatusCancelled && b.Status != StatusRefunded
}

// CanBeConfirmed returns true if the confirm transition is allowed
func (b *Booking) CanBeConfirmed() bool {
	return b.Status == StatusPending
}

// CanBeCancelled returns true if the cancel transition is allowed
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed
}

// CanCheckIn returns true if the check-in transition is allowed
func (b *Booking) CanCheckIn() bool {
	return b.Status == StatusConfirmed
}

// IsCheckedIn returns true if check-in already happened
func (b *Booking) IsCheckedIn() bool {
	return b.Status == StatusInProgress || b.Status == StatusCompleted
}

// CanBeCompleted returns true if the complete transition is allowed
func (b *Booking) CanBeCompleted() bool {
	return b.Status == StatusInProgress
}

// CanBeDisputed returns true if the dispute transition is allowed
func (b *Booking) CanBeDisputed() bool {
	return b.Status == StatusPending || b.Status == StatusConfirmed || b.Status == StatusInProgress
}

// StartsAt combines StartDate and StartTime into a single point in time
func (b *Booking) StartsAt() time.Time {
	return b.StartTime.At(b.StartDate)
}

// HoursUntilStart returns the number of hours between now and the start
// of the booked slot. Negative once the slot has started.
func (b *Booking) HoursUntilStart(now time.Time) float64 {
	return b.StartsAt().Sub(now).Hours()
}

// GuideBookingsFilter фильтр для получения бронирований гида
type GuideBookingsFilter struct {
	GuideID         int64          // Обязательный параметр
	ServiceID       *int64         // Фильтр по услуге (опционально)
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные/возвращенные бронирования
}
