// Package payment содержит бизнес-логику платёжных операций: инициацию
// M-PESA STK-push через шлюз, учёт депозитов и заявок на вывод, обработку
// webhook-событий шлюза.
package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/preocrypto/trading-backend/internal/lib/fx"
	"github.com/preocrypto/trading-backend/internal/lib/phone"
	"github.com/preocrypto/trading-backend/internal/models"
	"github.com/preocrypto/trading-backend/internal/paymentprovider"
)

// ErrMissingPhoneOrAmount возвращается при инициации платежа без телефона
// или суммы; исходящий запрос к шлюзу при этом не выполняется.
var ErrMissingPhoneOrAmount = errors.New("phone and amount are required")

// ErrInsufficientBalance возвращается при выводе суммы больше остатка.
var ErrInsufficientBalance = errors.New("insufficient balance")

// BelowMinimumError — сумма операции меньше допустимого минимума.
type BelowMinimumError struct {
	Kind string // "deposit" или "withdrawal"
	Min  float64
}

func (e *BelowMinimumError) Error() string {
	return fmt.Sprintf("minimum %s is $%v", e.Kind, e.Min)
}

// Store описывает контракт доступа к документу состояния.
type Store interface {
	View(fn func(doc *models.Document) error) error
	Update(fn func(doc *models.Document) error) error
}

// ProviderClient описывает используемую часть клиента платёжного шлюза.
type ProviderClient interface {
	CreatePayment(ctx context.Context, req paymentprovider.CreatePaymentRequest) (*paymentprovider.CreatePaymentResult, error)
}

// Service реализует платёжные операции поверх хранилища и клиента шлюза.
type Service struct {
	store       Store
	provider    ProviderClient
	callbackURL string
	log         *slog.Logger
}

// New создаёт Service. callbackURL подставляется в webhook_url исходящих
// запросов к шлюзу.
func New(store Store, provider ProviderClient, callbackURL string, log *slog.Logger) *Service {
	return &Service{
		store:       store,
		provider:    provider,
		callbackURL: callbackURL,
		log:         log,
	}
}

// STKRequest — параметры инициации M-PESA STK-push.
type STKRequest struct {
	Phone    string
	Amount   float64
	Email    string
	Metadata map[string]any
	Customer map[string]any
}

// InitiateSTK нормализует телефон, собирает запрос к шлюзу и отправляет его.
// Документ состояния не изменяется: учёт депозита делает webhook шлюза.
func (s *Service) InitiateSTK(ctx context.Context, req STKRequest) (*paymentprovider.CreatePaymentResult, error) {
	if req.Phone == "" || req.Amount == 0 {
		return nil, ErrMissingPhoneOrAmount
	}

	normalized := phone.NormalizeMpesa(req.Phone)
	if normalized == "" {
		normalized = req.Phone
	}

	metadata := cloneMap(req.Metadata)
	metadata["user_email"] = req.Email
	metadata["original_amount"] = req.Amount

	customer := cloneMap(req.Customer)
	customer["email"] = req.Email
	customer["phone"] = normalized

	payload := paymentprovider.CreatePaymentRequest{
		Amount:        int(req.Amount),
		Currency:      "KES",
		PaymentMethod: "mpesa_stk",
		Description:   fmt.Sprintf("PreoCrypto Deposit - %v KES", req.Amount),
		Metadata:      metadata,
		Customer:      customer,
		WebhookURL:    s.callbackURL,
	}

	s.log.Info("initiating stk push",
		slog.String("phone", normalized),
		slog.Float64("amount", req.Amount))
	return s.provider.CreatePayment(ctx, payload)
}

func cloneMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m)+2)
	for k, v := range m {
		out[k] = v
	}
	return out
}

// DepositRequest — параметры учётного депозита.
type DepositRequest struct {
	Amount  float64
	Method  string
	Account string
}

// DepositResult — итог учётного депозита.
type DepositResult struct {
	Status     string
	NewBalance float64
}

var cryptoMethods = map[string]bool{
	"crypto": true, "bitcoin": true, "btc": true, "ethereum": true,
	"eth": true, "usdt": true, "tron": true, "trc20": true,
}

var mpesaMethods = map[string]bool{
	"mpesa": true, "m-pesa": true, "mpesa_stk": true, "mpesa-stk": true,
}

// Deposit проводит учётный депозит: мгновенные методы зачисляются сразу,
// mpesa и crypto остаются в статусе pending до подтверждения webhook'ом.
func (s *Service) Deposit(_ context.Context, username string, req DepositRequest) (*DepositResult, error) {
	m := strings.ToLower(req.Method)
	minDeposit := 10.0
	if cryptoMethods[m] {
		minDeposit = 25.0
	}
	if req.Amount < minDeposit {
		return nil, &BelowMinimumError{Kind: "deposit", Min: minDeposit}
	}

	status := "completed"
	if cryptoMethods[m] || mpesaMethods[m] {
		status = "pending"
	}

	account := req.Account
	if account == "" {
		account = "real"
	}

	var newBalance float64
	err := s.store.Update(func(doc *models.Document) error {
		u := ensureUser(doc, username)
		if status == "completed" {
			newBalance = credit(u, account, req.Amount)
		} else {
			newBalance = balanceOf(u, account)
		}
		doc.Transactions = append(doc.Transactions, s.transaction(doc, username, models.Transaction{
			Type:    "deposit",
			Method:  req.Method,
			Amount:  req.Amount,
			Status:  status,
			Account: account,
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &DepositResult{Status: status, NewBalance: newBalance}, nil
}

// WithdrawRequest — параметры заявки на вывод.
type WithdrawRequest struct {
	Amount  float64
	Method  string
	Details []byte
	Account string
}

// WithdrawResult — итог заявки на вывод.
type WithdrawResult struct {
	Status     string
	NewBalance float64
}

// Withdraw списывает сумму с баланса и регистрирует заявку на вывод в
// статусе pending.
func (s *Service) Withdraw(_ context.Context, username string, req WithdrawRequest) (*WithdrawResult, error) {
	const minWithdrawal = 30.0
	if req.Amount < minWithdrawal {
		return nil, &BelowMinimumError{Kind: "withdrawal", Min: minWithdrawal}
	}

	account := req.Account
	if account == "" {
		account = "demo"
	}

	var newBalance float64
	err := s.store.Update(func(doc *models.Document) error {
		u := ensureUser(doc, username)
		if balanceOf(u, account) < req.Amount {
			return ErrInsufficientBalance
		}
		newBalance = credit(u, account, -req.Amount)

		now := time.Now().UTC()
		doc.Withdrawals = append(doc.Withdrawals, models.Withdrawal{
			ID:        uuid.NewString(),
			Username:  username,
			Amount:    req.Amount,
			Method:    req.Method,
			Account:   account,
			Details:   req.Details,
			Status:    "pending",
			Timestamp: now,
		})
		doc.Transactions = append(doc.Transactions, s.transaction(doc, username, models.Transaction{
			Type:    "withdrawal",
			Method:  req.Method,
			Amount:  req.Amount,
			Status:  "pending",
			Account: account,
			Details: req.Details,
		}))
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &WithdrawResult{Status: "pending", NewBalance: newBalance}, nil
}

// transaction дополняет запись журнала идентификатором, временем и
// пересчётом в локальную валюту страны пользователя.
func (s *Service) transaction(doc *models.Document, username string, tx models.Transaction) models.Transaction {
	tx.ID = uuid.NewString()
	tx.Username = username
	tx.Timestamp = time.Now().UTC()
	if u, ok := doc.Users[username]; ok && u.Country != nil {
		if local, ok := fx.ConvertFromUSD(*u.Country, tx.Amount); ok {
			tx.LocalCurrency = local.Currency
			tx.LocalAmount = local.Amount
		}
	}
	return tx
}

// ensureUser возвращает учётную запись, создавая её с начальными балансами,
// если записи ещё нет (например, для встроенных демо-аккаунтов).
func ensureUser(doc *models.Document, username string) *models.User {
	u, ok := doc.Users[username]
	if !ok {
		u = &models.User{
			Username:    username,
			DemoBalance: 10000,
			RealBalance: 0,
			CreatedAt:   time.Now().UTC(),
		}
		doc.Users[username] = u
	}
	return u
}

func balanceOf(u *models.User, account string) float64 {
	if account == "real" {
		return u.RealBalance
	}
	return u.DemoBalance
}

func credit(u *models.User, account string, amount float64) float64 {
	if account == "real" {
		u.RealBalance += amount
		return u.RealBalance
	}
	u.DemoBalance += amount
	return u.DemoBalance
}
