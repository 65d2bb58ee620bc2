package check_in

// Request модель запроса на check-in
type Request struct {
	UserID    int64  // ID гида, проводящего check-in
	BookingID int64  // ID бронирования
	Code      string // Код, предъявленный клиентом
}

// Response модель ответа на check-in
type Response struct {
	BookingID       int64  // ID бронирования
	Status          string // Статус после check-in
	AmountPaidCents int64  // Оплачено после списания остатка
	AmountDueCents  int64  // Осталось оплатить (0 после успешного списания)
}
