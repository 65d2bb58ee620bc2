package create_booking

import (
	"time"

	"github.com/guidely/GuideBookingService/pkg/types"
)

// Request модель запроса на создание бронирования
type Request struct {
	UserID       int64            // ID клиента
	GuideID      int64            // ID гида
	ServiceID    int64            // ID услуги
	Date         time.Time        // Дата бронирования (без времени)
	StartTime    types.TimeString // Время начала (например, "10:00")
	Participants int              // Количество участников
	PaymentType  string           // "full", "deposit" или "installment"

	// Контактные данные клиента для ростера гида
	ClientName  string
	ClientEmail string
	ClientPhone string
}

// Response модель ответа с созданным бронированием
type Response struct {
	ID            int64            // ID созданного бронирования
	BookingNumber string           // Человекочитаемый номер
	ClientID      int64            // ID клиента
	GuideID       int64            // ID гида
	ServiceID     int64            // ID услуги
	Date          time.Time        // Дата бронирования
	StartTime     types.TimeString // Время начала
	EndTime       types.TimeString // Время окончания
	Participants  int              // Количество участников
	Status        string           // Статус бронирования

	TotalPriceCents int64  // Полная стоимость
	DepositCents    int64  // Размер депозита
	AmountPaidCents int64  // Фактически оплачено
	AmountDueCents  int64  // Осталось оплатить
	PaymentType     string // Тип оплаты

	CreatedAt time.Time // Время создания
	UpdatedAt time.Time // Время обновления
}
