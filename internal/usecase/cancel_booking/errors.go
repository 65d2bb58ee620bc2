package cancel_booking

import "errors"

var (
	// ErrBookingNotFound возвращается, когда бронирование не найдено
	ErrBookingNotFound = errors.New("cancel_booking: booking not found")

	// ErrAccessDenied возвращается, когда пользователь не участник бронирования
	ErrAccessDenied = errors.New("cancel_booking: access denied")

	// ErrAlreadyCancelled возвращается при повторной отмене
	ErrAlreadyCancelled = errors.New("cancel_booking: booking is already cancelled")

	// ErrCannotCancel возвращается, когда отмена недопустима из текущего статуса
	ErrCannotCancel = errors.New("cancel_booking: booking cannot be cancelled")

	// ErrUnknownPolicy возвращается, когда вид политики отмены не распознан.
	// Отмена в этом случае не выполняется
	ErrUnknownPolicy = errors.New("cancel_booking: unknown cancellation policy")

	// ErrRefundFailed возвращается, когда возврат средств не прошел.
	// Бронирование к этому моменту уже отменено, места возвращены
	ErrRefundFailed = errors.New("cancel_booking: refund failed")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("cancel_booking: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("cancel_booking: internal error")
)
