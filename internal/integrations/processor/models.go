package processor

// IntentRequest запрос на создание платежного намерения
type IntentRequest struct {
	AmountCents    int64  `json:"amount_cents"`
	Currency       string `json:"currency"`
	Description    string `json:"description"`
	IdempotencyKey string `json:"idempotency_key"`
}

// Intent платежное намерение, созданное процессором.
// Процессор исторически отдает секрет то в snake_case, то в camelCase,
// поэтому при декодировании принимаем оба варианта.
type Intent struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	ClientSecret string `json:"client_secret"`
	// Альтернативное написание того же поля в старом API процессора
	ClientSecretCamel string `json:"clientSecret,omitempty"`
}

// Secret возвращает client secret независимо от написания поля в ответе
func (i *Intent) Secret() string {
	if i.ClientSecret != "" {
		return i.ClientSecret
	}
	return i.ClientSecretCamel
}

// RefundRequest запрос на возврат средств
type RefundRequest struct {
	IntentID       string `json:"intent_id"`
	AmountCents    int64  `json:"amount_cents"`
	IdempotencyKey string `json:"idempotency_key"`
}

// RefundResult результат возврата средств
type RefundResult struct {
	ID          string `json:"id"`
	IntentID    string `json:"intent_id"`
	AmountCents int64  `json:"amount_cents"`
	Status      string `json:"status"`
}

// ErrorResponse модель ошибки от процессора
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// Статусы платежного намерения на стороне процессора
const (
	IntentStatusSucceeded = "succeeded"
	IntentStatusDeclined  = "declined"
	RefundStatusSucceeded = "succeeded"
)
