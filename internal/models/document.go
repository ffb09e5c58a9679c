package models

import "encoding/json"

// Document — единый JSON-агрегат всего состояния приложения.
// Документ целиком читается с диска и целиком перезаписывается
// при каждой мутации.
type Document struct {
	Users        map[string]*User      `json:"users"`
	Tokens       []TokenRecord         `json:"tokens"`
	Privileged   []string              `json:"privileged"`
	Withdrawals  []Withdrawal          `json:"withdrawals"`
	Trades       []Trade               `json:"trades"`
	Payments     []json.RawMessage     `json:"payments"`
	Transactions []Transaction         `json:"transactions"`
	ResetCodes   map[string]*ResetCode `json:"resetCodes"`
}

// NewDocument возвращает пустой документ со всеми инициализированными
// коллекциями.
func NewDocument() *Document {
	return &Document{
		Users:        map[string]*User{},
		Tokens:       []TokenRecord{},
		Privileged:   []string{},
		Withdrawals:  []Withdrawal{},
		Trades:       []Trade{},
		Payments:     []json.RawMessage{},
		Transactions: []Transaction{},
		ResetCodes:   map[string]*ResetCode{},
	}
}

// Normalize инициализирует коллекции, отсутствующие в старых файлах db.json.
func (d *Document) Normalize() {
	if d.Users == nil {
		d.Users = map[string]*User{}
	}
	if d.Tokens == nil {
		d.Tokens = []TokenRecord{}
	}
	if d.Privileged == nil {
		d.Privileged = []string{}
	}
	if d.Withdrawals == nil {
		d.Withdrawals = []Withdrawal{}
	}
	if d.Trades == nil {
		d.Trades = []Trade{}
	}
	if d.Payments == nil {
		d.Payments = []json.RawMessage{}
	}
	if d.Transactions == nil {
		d.Transactions = []Transaction{}
	}
	if d.ResetCodes == nil {
		d.ResetCodes = map[string]*ResetCode{}
	}
}
