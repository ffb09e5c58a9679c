// Package paymentprovider реализует HTTP-клиент платёжного шлюза PayHero.
package paymentprovider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Client — клиент PayHero. Авторизация идёт по Basic-учётке, при её
// отсутствии — по Bearer-ключу.
type Client struct {
	apiURL     string
	basicAuth  string
	secretKey  string
	accountID  string
	httpClient *http.Client
}

// New создаёт клиент PayHero с ограниченным таймаутом на запрос.
func New(apiURL, basicAuth, secretKey, accountID string, timeout time.Duration) *Client {
	return &Client{
		apiURL:     strings.TrimSuffix(apiURL, "/"),
		basicAuth:  basicAuth,
		secretKey:  secretKey,
		accountID:  accountID,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Configured сообщает, заданы ли учётные данные шлюза.
func (c *Client) Configured() bool {
	return c.basicAuth != "" || c.secretKey != ""
}

func (c *Client) newRequest(ctx context.Context, method, path string, body any) (*http.Request, error) {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return nil, err
		}
	}
	req, err := http.NewRequestWithContext(ctx, method, c.apiURL+path, &buf)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Account-Id", c.accountID)
	req.Header.Set("X-Request-ID", requestID())
	if c.basicAuth != "" {
		auth := c.basicAuth
		if !strings.HasPrefix(auth, "Basic ") {
			auth = "Basic " + auth
		}
		req.Header.Set("Authorization", auth)
	} else if c.secretKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.secretKey)
		req.Header.Set("X-API-Key", c.secretKey)
	}
	return req, nil
}

// requestID генерирует корреляционный идентификатор запроса к шлюзу.
func requestID() string {
	return fmt.Sprintf("req_%d_%s", time.Now().Unix(), uuid.NewString()[:8])
}

// CreatePayment отправляет запрос создания платежа. Неуспешный HTTP-статус
// возвращается как *GatewayError с разобранным телом ошибки, транспортный
// сбой — как *NetworkError. Повторов нет.
func (c *Client) CreatePayment(ctx context.Context, reqParams CreatePaymentRequest) (*CreatePaymentResult, error) {
	req, err := c.newRequest(ctx, http.MethodPost, "/payment/create", reqParams)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	text, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &NetworkError{Err: err}
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &GatewayError{
			StatusCode: resp.StatusCode,
			Details:    parseBody(text),
		}
	}
	return &CreatePaymentResult{
		Status: resp.StatusCode,
		Body:   parseBody(text),
	}, nil
}

// parseBody разбирает тело ответа шлюза; неразбираемый текст сохраняется
// под ключом "raw".
func parseBody(text []byte) map[string]any {
	var body map[string]any
	if err := json.Unmarshal(text, &body); err != nil {
		return map[string]any{"raw": string(text)}
	}
	return body
}
