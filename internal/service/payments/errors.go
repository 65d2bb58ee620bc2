package payments

import "errors"

var (
	// ErrPaymentDeclined возвращается, когда процессор отклонил платеж
	ErrPaymentDeclined = errors.New("payment declined by processor")

	// ErrProcessorUnavailable возвращается, когда процессор недоступен
	ErrProcessorUnavailable = errors.New("payment processor unavailable")

	// ErrRefundFailed возвращается, когда возврат средств не прошел
	ErrRefundFailed = errors.New("refund failed")

	// ErrNothingCaptured возвращается при попытке возврата без списанных средств
	ErrNothingCaptured = errors.New("nothing captured to refund")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
