package processor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	circuit "github.com/rubyist/circuitbreaker"
)

// Client клиент платежного процессора. Все запросы идут через circuit
// breaker: при открытом breaker запрос падает сразу, без похода в сеть.
// Идемпотентность обеспечивается ключом в теле запроса: процессор
// возвращает уже созданный intent при повторе того же ключа.
type Client struct {
	baseURL    string
	httpClient *circuit.HTTPClient
	log        Logger
}

// NewClient создает новый экземпляр клиента процессора
func NewClient(baseURL string, httpClient *circuit.HTTPClient, log Logger) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		log:        log,
	}
}

// CreateIntent создает платежное намерение на указанную сумму.
// Повтор с тем же idempotency key возвращает существующий intent,
// второго списания не происходит.
func (c *Client) CreateIntent(ctx context.Context, req *IntentRequest) (*Intent, error) {
	var intent Intent
	if err := c.post(ctx, "/v1/intents", req, &intent); err != nil {
		return nil, err
	}

	if intent.Status == IntentStatusDeclined {
		c.log.Warn("CreateIntent: authorization declined intent_id=%s", intent.ID)
		return nil, ErrAuthorizationDeclined
	}

	if intent.ID == "" {
		return nil, fmt.Errorf("%w: intent id is empty", ErrInvalidResponse)
	}

	return &intent, nil
}

// ConfirmIntent подтверждает платежное намерение (списание средств)
func (c *Client) ConfirmIntent(ctx context.Context, intentID string) (*Intent, error) {
	var intent Intent
	path := fmt.Sprintf("/v1/intents/%s/confirm", intentID)
	if err := c.post(ctx, path, struct{}{}, &intent); err != nil {
		return nil, err
	}

	if intent.Status == IntentStatusDeclined {
		c.log.Warn("ConfirmIntent: confirmation declined intent_id=%s", intentID)
		return nil, ErrAuthorizationDeclined
	}

	return &intent, nil
}

// Refund возвращает средства по ранее списанному intent.
// Сумма не может превышать списанную; это проверяет и процессор,
// и вызывающий код до обращения сюда.
func (c *Client) Refund(ctx context.Context, req *RefundRequest) (*RefundResult, error) {
	var result RefundResult
	if err := c.post(ctx, "/v1/refunds", req, &result); err != nil {
		if err == ErrAuthorizationDeclined {
			return nil, ErrRefundFailed
		}
		return nil, err
	}

	if result.Status != RefundStatusSucceeded {
		c.log.Error("Refund: refund not succeeded intent_id=%s status=%s", req.IntentID, result.Status)
		return nil, fmt.Errorf("%w: status=%s", ErrRefundFailed, result.Status)
	}

	return &result, nil
}

func (c *Client) post(ctx context.Context, path string, payload, out interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: failed to marshal request: %v", ErrInternal, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		// Сюда попадают и сетевые ошибки, и отказ открытого breaker
		c.log.Error("post: processor request failed path=%s: %v", path, err)
		return fmt.Errorf("%w: %v", ErrProcessorUnavailable, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		// Продолжаем обработку
	case resp.StatusCode == http.StatusPaymentRequired || resp.StatusCode == http.StatusUnprocessableEntity:
		return ErrAuthorizationDeclined
	case resp.StatusCode >= http.StatusInternalServerError:
		return fmt.Errorf("%w: status code %d", ErrProcessorUnavailable, resp.StatusCode)
	default:
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(respBody))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return nil
}
