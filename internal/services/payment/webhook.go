package payment

import (
	"context"
	"log/slog"

	"github.com/preocrypto/trading-backend/internal/models"
)

// WebhookEvent — событие платёжного шлюза, присланное на callback-URL.
type WebhookEvent struct {
	EventType string      `json:"event_type"`
	Data      WebhookData `json:"data"`
}

// WebhookData — полезная нагрузка события.
type WebhookData struct {
	ID            string         `json:"id"`
	TransactionID string         `json:"transaction_id"`
	Amount        float64        `json:"amount"`
	PaymentMethod string         `json:"payment_method"`
	Method        string         `json:"method"`
	ErrorMessage  string         `json:"error_message"`
	Metadata      map[string]any `json:"metadata"`
}

// Username извлекает имя пользователя из метаданных платежа.
func (d WebhookData) Username() string {
	if v, ok := d.Metadata["user_id"].(string); ok && v != "" {
		return v
	}
	if v, ok := d.Metadata["user_email"].(string); ok && v != "" {
		return v
	}
	return ""
}

// AmountUSD возвращает исходную сумму депозита в USD: original_amount из
// метаданных, иначе сумму самого платежа.
func (d WebhookData) AmountUSD() float64 {
	if v, ok := d.Metadata["original_amount"].(float64); ok && v != 0 {
		return v
	}
	return d.Amount
}

func (d WebhookData) method() string {
	if d.PaymentMethod != "" {
		return d.PaymentMethod
	}
	if d.Method != "" {
		return d.Method
	}
	return "mpesa"
}

func (d WebhookData) account() string {
	if v, ok := d.Metadata["account"].(string); ok && v != "" {
		return v
	}
	return "real"
}

// ProcessWebhook применяет событие шлюза к документу: payment.completed
// зачисляет сумму на счёт и записывает завершённый депозит, payment.failed
// и payment.pending только пополняют журнал операций. Остальные события
// игнорируются.
func (s *Service) ProcessWebhook(_ context.Context, event WebhookEvent) error {
	var status string
	switch event.EventType {
	case "payment.completed":
		status = "completed"
	case "payment.failed":
		status = "failed"
	case "payment.pending":
		status = "pending"
	default:
		s.log.Info("ignored webhook event", slog.String("event_type", event.EventType))
		return nil
	}

	username := event.Data.Username()
	amount := event.Data.AmountUSD()
	account := event.Data.account()

	return s.store.Update(func(doc *models.Document) error {
		if status == "completed" && username != "" {
			credit(ensureUser(doc, username), account, amount)
		}
		tx := s.transaction(doc, username, models.Transaction{
			Type:          "deposit",
			Method:        event.Data.method(),
			Amount:        amount,
			Status:        status,
			Account:       account,
			PaymentID:     event.Data.ID,
			TransactionID: event.Data.TransactionID,
			Error:         event.Data.ErrorMessage,
		})
		doc.Transactions = append(doc.Transactions, tx)
		s.log.Info("webhook event processed",
			slog.String("event_type", event.EventType),
			slog.String("payment_id", event.Data.ID),
			slog.String("username", username))
		return nil
	})
}
