package processor

import "errors"

var (
	// ErrProcessorUnavailable возвращается, когда платежный процессор недоступен
	// (сетевые ошибки, timeout, открытый circuit breaker, статусы 5xx)
	ErrProcessorUnavailable = errors.New("processor client: payment processor unavailable")

	// ErrAuthorizationDeclined возвращается, когда процессор отклонил платеж
	ErrAuthorizationDeclined = errors.New("processor client: authorization declined")

	// ErrRefundFailed возвращается, когда процессор не смог выполнить возврат
	ErrRefundFailed = errors.New("processor client: refund failed")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("processor client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от процессора
	ErrInvalidResponse = errors.New("processor client: invalid response")
)
