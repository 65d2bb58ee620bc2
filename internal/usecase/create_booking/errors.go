package create_booking

import "errors"

var (
	// ErrGuideNotFound возвращается, когда гид не найден
	ErrGuideNotFound = errors.New("create_booking: guide not found")

	// ErrGuideInactive возвращается, когда гид приостановил работу
	ErrGuideInactive = errors.New("create_booking: guide is not active")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("create_booking: service not found")

	// ErrServiceNotOwnedByGuide возвращается, когда услуга принадлежит другому гиду
	ErrServiceNotOwnedByGuide = errors.New("create_booking: service does not belong to this guide")

	// ErrInvalidDate возвращается при некорректной дате бронирования
	ErrInvalidDate = errors.New("create_booking: invalid booking date")

	// ErrDateInPast возвращается, когда дата бронирования уже прошла
	ErrDateInPast = errors.New("create_booking: booking date is in the past")

	// ErrDateBlocked возвращается, когда дата закрыта гидом для бронирования
	ErrDateBlocked = errors.New("create_booking: date is blocked by the guide")

	// ErrInsufficientCapacity возвращается, когда в слоте не хватает мест
	ErrInsufficientCapacity = errors.New("create_booking: not enough spots available")

	// ErrPaymentDeclined возвращается, когда процессор отклонил депозит.
	// Резервирование мест к этому моменту уже откачено
	ErrPaymentDeclined = errors.New("create_booking: payment declined")

	// ErrPaymentUnavailable возвращается, когда платежный процессор недоступен.
	// Резервирование мест к этому моменту уже откачено
	ErrPaymentUnavailable = errors.New("create_booking: payment processor unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("create_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("create_booking: internal error")
)
