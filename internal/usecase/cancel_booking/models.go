package cancel_booking

// Request модель запроса на отмену бронирования
type Request struct {
	UserID    int64 // ID инициатора отмены (клиент или гид)
	BookingID int64 // ID бронирования
}

// Response модель ответа с результатом отмены
type Response struct {
	BookingID       int64  // ID бронирования
	Status          string // Новый статус (cancelled)
	HoursBeforeTrip float64
	AmountPaidCents int64 // Сколько было оплачено
	RefundCents     int64 // Сумма возврата
	FeeCents        int64 // Удержанная комиссия
}
