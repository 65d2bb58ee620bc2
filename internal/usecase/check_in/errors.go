package check_in

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("check_in: booking not found")

	// ErrAccessDenied возвращается, когда check-in выполняет не гид бронирования
	ErrAccessDenied = errors.New("check_in: access denied")

	// ErrInvalidCode возвращается, когда код check-in не подошел
	ErrInvalidCode = errors.New("check_in: invalid check-in code")

	// ErrAlreadyCheckedIn возвращается при повторном check-in.
	// Возвращается до любых действий с оплатой: остаток уже списан
	ErrAlreadyCheckedIn = errors.New("check_in: booking is already checked in")

	// ErrNotConfirmed возвращается, когда бронирование не в статусе confirmed
	ErrNotConfirmed = errors.New("check_in: booking is not confirmed")

	// ErrPaymentDeclined возвращается, когда процессор отклонил остаток оплаты.
	// Статус бронирования к этому моменту откачен обратно в confirmed
	ErrPaymentDeclined = errors.New("check_in: remainder payment declined")

	// ErrPaymentUnavailable возвращается, когда платежный процессор недоступен.
	// Статус бронирования к этому моменту откачен обратно в confirmed
	ErrPaymentUnavailable = errors.New("check_in: payment processor unavailable")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("check_in: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("check_in: internal error")
)
