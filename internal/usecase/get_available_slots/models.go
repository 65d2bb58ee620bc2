package get_available_slots

import "time"

// Request модель запроса на получение доступности
type Request struct {
	GuideID   int64     // ID гида
	ServiceID int64     // ID услуги
	From      time.Time // Начало диапазона (включительно)
	To        time.Time // Конец диапазона (включительно)
}

// Response модель ответа с доступностью по дням
type Response struct {
	GuideID   int64 // ID гида
	ServiceID int64 // ID услуги
	Days      []Day // Доступность по дням диапазона
}

// Day доступность одной даты
type Day struct {
	Date                     string // "2026-09-15"
	TotalSpots               int    // Общая вместимость
	AvailableSpots           int    // Свободные места (0 для заблокированной даты)
	Blocked                  bool   // Дата закрыта гидом
	PricePerParticipantCents int64  // Цена за участника с учетом переопределения
}
