package availability

import "errors"

var (
	// ErrSlotNotFound возвращается, когда слот (гид, услуга, дата) не найден
	ErrSlotNotFound = errors.New("availability.repository: slot not found")

	// ErrInsufficientCapacity возвращается, когда в слоте не хватает свободных мест
	ErrInsufficientCapacity = errors.New("availability.repository: insufficient capacity")

	// ErrDateBlocked возвращается, когда дата закрыта гидом для бронирования
	ErrDateBlocked = errors.New("availability.repository: date is blocked")

	// ErrCapacityBelowReserved возвращается при попытке установить вместимость
	// меньше уже зарезервированного количества мест
	ErrCapacityBelowReserved = errors.New("availability.repository: capacity below reserved count")

	// ErrBuildQuery возвращается при ошибке построения SQL запроса
	ErrBuildQuery = errors.New("availability.repository: failed to build query")

	// ErrExecQuery возвращается при ошибке выполнения SQL запроса
	ErrExecQuery = errors.New("availability.repository: failed to execute query")

	// ErrScanRow возвращается при ошибке сканирования результата запроса
	ErrScanRow = errors.New("availability.repository: failed to scan row")
)
