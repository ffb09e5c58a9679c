package models

import (
	"encoding/json"
	"time"
)

// Transaction — запись в общем журнале операций пользователя.
type Transaction struct {
	ID            string          `json:"id"`
	Username      string          `json:"username"`
	Type          string          `json:"type"`
	Method        string          `json:"method,omitempty"`
	Amount        float64         `json:"amount"`
	Status        string          `json:"status"`
	Account       string          `json:"account,omitempty"`
	Details       json.RawMessage `json:"details,omitempty"`
	Timestamp     time.Time       `json:"timestamp"`
	PaymentID     string          `json:"paymentId,omitempty"`
	TransactionID string          `json:"transactionId,omitempty"`
	Error         string          `json:"error,omitempty"`
	LocalCurrency string          `json:"localCurrency,omitempty"`
	LocalAmount   float64         `json:"localAmount,omitempty"`
}

// Withdrawal — заявка на вывод средств.
type Withdrawal struct {
	ID        string          `json:"id"`
	Username  string          `json:"username"`
	Amount    float64         `json:"amount"`
	Method    string          `json:"method"`
	Account   string          `json:"account"`
	Details   json.RawMessage `json:"details,omitempty"`
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

// Trade — сделка торгового симулятора. Сервис сделки не создаёт,
// структура нужна для переноса записей из старых файлов db.json без потерь.
type Trade struct {
	ID         string     `json:"id"`
	Username   string     `json:"username"`
	Pair       string     `json:"pair"`
	Type       string     `json:"type"`
	Volume     float64    `json:"volume"`
	EntryPrice float64    `json:"entryPrice"`
	StopLoss   float64    `json:"stopLoss,omitempty"`
	TakeProfit float64    `json:"takeProfit,omitempty"`
	Account    string     `json:"account"`
	Status     string     `json:"status"`
	OpenTime   time.Time  `json:"openTime"`
	ClosePrice *float64   `json:"closePrice"`
	CloseTime  *time.Time `json:"closeTime"`
	PnL        float64    `json:"pnl"`
	IsWinning  *bool      `json:"isWinning,omitempty"`
}
