package paymentprovider

import "fmt"

// CreatePaymentRequest — тело запроса на создание платежа в PayHero.
type CreatePaymentRequest struct {
	Amount        int            `json:"amount"`
	Currency      string         `json:"currency"`
	PaymentMethod string         `json:"payment_method"`
	Description   string         `json:"description"`
	Metadata      map[string]any `json:"metadata"`
	Customer      map[string]any `json:"customer"`
	WebhookURL    string         `json:"webhook_url"`
}

// CreatePaymentResult — разобранный ответ шлюза вместе с HTTP-статусом.
// Body хранит тело ответа как есть; при неразбираемом JSON исходный текст
// кладётся под ключ "raw".
type CreatePaymentResult struct {
	Status int
	Body   map[string]any
}

// GatewayError — ответ шлюза с неуспешным HTTP-статусом.
type GatewayError struct {
	StatusCode int
	Details    map[string]any
}

func (e *GatewayError) Error() string {
	return fmt.Sprintf("PayHero API error: %d", e.StatusCode)
}

// NetworkError — транспортный сбой при обращении к шлюзу (DNS, соединение,
// таймаут).
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "Network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}
