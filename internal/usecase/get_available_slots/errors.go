package get_available_slots

import "errors"

var (
	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("get_available_slots: service not found")

	// ErrServiceNotOwnedByGuide возвращается, когда услуга принадлежит другому гиду
	ErrServiceNotOwnedByGuide = errors.New("get_available_slots: service does not belong to this guide")

	// ErrInvalidRange возвращается при некорректном диапазоне дат
	ErrInvalidRange = errors.New("get_available_slots: invalid date range")

	// ErrRangeTooWide возвращается, когда диапазон превышает допустимый лимит
	ErrRangeTooWide = errors.New("get_available_slots: date range is too wide")

	// ErrInvalidInput возвращается при некорректных входных данных
	ErrInvalidInput = errors.New("get_available_slots: invalid input data")

	// ErrInternal возвращается при внутренних ошибках usecase
	ErrInternal = errors.New("get_available_slots: internal error")
)
