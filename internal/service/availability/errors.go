package availability

import "errors"

var (
	// ErrAccessDenied возвращается, когда пользователь не является гидом слота
	ErrAccessDenied = errors.New("access denied")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("invalid input data")

	// ErrCapacityBelowReserved возвращается при попытке установить вместимость
	// меньше уже зарезервированного количества мест
	ErrCapacityBelowReserved = errors.New("capacity below reserved count")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("service: internal error")
)
