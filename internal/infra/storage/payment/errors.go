package payment

import "errors"

var (
	// ErrRecordNotFound возвращается, когда платежная запись не найдена
	ErrRecordNotFound = errors.New("payment.repository: payment record not found")

	// ErrDuplicateKey возвращается при попытке создать вторую запись
	// с тем же idempotency key (повторная авторизация того же leg)
	ErrDuplicateKey = errors.New("payment.repository: duplicate idempotency key")

	// ErrRefundExceedsCaptured возвращается, когда возврат превышает списанную сумму
	ErrRefundExceedsCaptured = errors.New("payment.repository: refund exceeds captured amount")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("payment.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("payment.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("payment.repository: failed to scan row")
)
