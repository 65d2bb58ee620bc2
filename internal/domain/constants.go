package domain

// Default values
const (
	DefaultSlotCapacity   = 8  // участников на (гид, услуга, дата), если гид не задал явно
	DefaultDepositPercent = 25 // процент депозита, если профиль гида не задал явно
)

// Business validation constants
const (
	MinParticipants = 1
	MaxParticipants = 50

	MinSlotCapacity = 1
	MaxSlotCapacity = 500

	MinDepositPercent = 5
	MaxDepositPercent = 100

	MaxClientNameLength = 200
	MaxQueryRangeDays   = 90
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// BookingNumberPrefix префикс человекочитаемого номера бронирования
const BookingNumberPrefix = "GB"

// InactiveStatuses статусы, не удерживающие места в слоте.
// Используются при фильтрации активных бронирований.
var InactiveStatuses = []BookingStatus{
	StatusCancelled,
	StatusRefunded,
}

// ActiveStatuses статусы бронирований, удерживающих места в слоте
var ActiveStatuses = []BookingStatus{
	StatusPending,
	StatusConfirmed,
	StatusInProgress,
	StatusCompleted,
	StatusDisputed,
}
