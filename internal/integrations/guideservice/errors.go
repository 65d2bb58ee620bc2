package guideservice

import "errors"

var (
	// ErrGuideNotFound возвращается, когда гид не найден
	ErrGuideNotFound = errors.New("guideservice client: guide not found")

	// ErrServiceNotFound возвращается, когда услуга не найдена
	ErrServiceNotFound = errors.New("guideservice client: service not found")

	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("guideservice client: internal error")

	// ErrInvalidResponse возвращается при некорректном ответе от сервиса
	ErrInvalidResponse = errors.New("guideservice client: invalid response")
)
