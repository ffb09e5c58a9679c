// Package auth содержит бизнес-логику регистрации, входа и восстановления
// пароля. Пароли сравниваются открытым текстом: формат хранилища унаследован
// от старой площадки вместе с её демо-аккаунтами, и это осознанно небезопасно.
package auth

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"strconv"
	"strings"
	"time"

	"github.com/preocrypto/trading-backend/internal/lib/jwt"
	"github.com/preocrypto/trading-backend/internal/models"
)

// Ошибки уровня бизнес-логики; обработчики переводят их в легаси-тексты
// JSON-ответов.
var (
	ErrUserExists         = errors.New("user already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrNoResetRequest     = errors.New("no reset request found")
	ErrInvalidResetCode   = errors.New("invalid reset code")
	ErrResetCodeExpired   = errors.New("reset code expired")
)

// demoUsers — встроенные аккаунты для входа без регистрации. В документ
// они не записываются, их имена зарезервированы и недоступны при регистрации.
var demoUsers = map[string]models.User{
	"demo": {
		Username:    "demo",
		Password:    "demo123",
		Name:        "Demo User",
		Email:       "demo@preocrypto.com",
		DemoBalance: 10000,
	},
	"testuser": {
		Username:    "testuser",
		Password:    "test123",
		Name:        "Test User",
		Email:       "test@preocrypto.com",
		DemoBalance: 10000,
	},
}

// Store описывает контракт доступа к документу состояния.
type Store interface {
	View(fn func(doc *models.Document) error) error
	Update(fn func(doc *models.Document) error) error
}

// Service отвечает за учётные записи и выпуск сессионных токенов.
type Service struct {
	store  Store
	tokens jwt.Maker
	log    *slog.Logger
}

// New создаёт Service поверх хранилища и генератора токенов.
func New(store Store, tokens jwt.Maker, log *slog.Logger) *Service {
	return &Service{
		store:  store,
		tokens: tokens,
		log:    log,
	}
}

// RegisterParams — входные данные регистрации. Поля, кроме пароля, уже
// обрезаны от пробелов обработчиком.
type RegisterParams struct {
	Username string
	Password string
	Name     string
	Email    string
	Country  string
}

// Register создаёт пользователя с демо-балансом 10000 и выпускает токен.
// Имя пользователя должно быть свободно (включая зарезервированные
// демо-аккаунты), email уникален без учёта регистра.
func (s *Service) Register(_ context.Context, p RegisterParams) (string, *models.User, error) {
	var user *models.User
	err := s.store.Update(func(doc *models.Document) error {
		if _, ok := doc.Users[p.Username]; ok {
			return ErrUserExists
		}
		if _, ok := demoUsers[p.Username]; ok {
			return ErrUserExists
		}
		for _, u := range doc.Users {
			if u.Email != "" && strings.EqualFold(u.Email, p.Email) {
				return ErrEmailTaken
			}
		}
		var country *string
		if p.Country != "" {
			country = &p.Country
		}
		user = &models.User{
			Username:    p.Username,
			Password:    p.Password,
			Name:        p.Name,
			Email:       p.Email,
			Country:     country,
			DemoBalance: 10000,
			RealBalance: 0,
			CreatedAt:   time.Now().UTC(),
		}
		doc.Users[p.Username] = user
		return nil
	})
	if err != nil {
		return "", nil, err
	}

	token, err := s.tokens.GenerateToken(p.Username)
	if err != nil {
		return "", nil, err
	}
	s.log.Info("user registered", slog.String("username", p.Username))
	return token, user, nil
}

// Login разрешает идентификатор в учётную запись, сверяет пароль и выпускает
// токен. Запись о выдаче добавляется в журнал tokens; при неуспехе документ
// не меняется.
func (s *Service) Login(_ context.Context, identifier, password string) (string, *models.User, error) {
	var (
		token string
		user  *models.User
	)
	err := s.store.Update(func(doc *models.Document) error {
		u := resolveUser(doc, identifier)
		if u == nil {
			return ErrInvalidCredentials
		}
		if u.Password == "" || u.Password != password {
			return ErrInvalidCredentials
		}
		t, err := s.tokens.GenerateToken(u.Username)
		if err != nil {
			return err
		}
		doc.Tokens = append(doc.Tokens, models.TokenRecord{
			Token:    t,
			Username: u.Username,
			IssuedAt: time.Now().UTC(),
		})
		token, user = t, u
		return nil
	})
	if err != nil {
		return "", nil, err
	}
	s.log.Info("user logged in", slog.String("username", user.Username))
	return token, user, nil
}

// resolveUser ищет учётную запись: сперва точное имя среди сохранённых
// пользователей, затем среди демо-аккаунтов; если идентификатор похож на
// email — скан по email без учёта регистра.
func resolveUser(doc *models.Document, identifier string) *models.User {
	if u, ok := doc.Users[identifier]; ok {
		return u
	}
	if du, ok := demoUsers[identifier]; ok {
		return &du
	}
	if strings.Contains(identifier, "@") {
		for _, u := range doc.Users {
			if u.Email != "" && strings.EqualFold(u.Email, identifier) {
				return u
			}
		}
	}
	return nil
}

// ValidateToken проверяет сессионный токен и возвращает имя пользователя.
func (s *Service) ValidateToken(_ context.Context, token string) (string, error) {
	claims, err := s.tokens.ParseToken(token)
	if err != nil {
		return "", err
	}
	return claims.Username, nil
}

// CreateResetCode выпускает шестизначный код восстановления пароля со
// сроком действия 15 минут. Демо-аккаунты восстановлению не подлежат.
func (s *Service) CreateResetCode(_ context.Context, identifier string) (*models.ResetCode, error) {
	var code *models.ResetCode
	err := s.store.Update(func(doc *models.Document) error {
		username, u := resolveStored(doc, identifier)
		if u == nil {
			return ErrUserNotFound
		}
		code = &models.ResetCode{
			Code:      strconv.Itoa(100000 + rand.IntN(900000)),
			ExpiresAt: time.Now().UTC().Add(15 * time.Minute),
		}
		doc.ResetCodes[username] = code
		return nil
	})
	if err != nil {
		return nil, err
	}
	return code, nil
}

// ResetPassword проверяет код восстановления и заменяет пароль.
func (s *Service) ResetPassword(_ context.Context, identifier, code, newPassword string) error {
	return s.store.Update(func(doc *models.Document) error {
		username, u := resolveStored(doc, identifier)
		if u == nil {
			return ErrUserNotFound
		}
		entry, ok := doc.ResetCodes[username]
		if !ok {
			return ErrNoResetRequest
		}
		if entry.Code != code {
			return ErrInvalidResetCode
		}
		if entry.ExpiresAt.Before(time.Now().UTC()) {
			return ErrResetCodeExpired
		}
		u.Password = newPassword
		delete(doc.ResetCodes, username)
		return nil
	})
}

// resolveStored ищет только сохранённых пользователей (без демо-аккаунтов)
// и возвращает ключ учётной записи в документе.
func resolveStored(doc *models.Document, identifier string) (string, *models.User) {
	if u, ok := doc.Users[identifier]; ok {
		return identifier, u
	}
	if strings.Contains(identifier, "@") {
		for name, u := range doc.Users {
			if u.Email != "" && strings.EqualFold(u.Email, identifier) {
				return name, u
			}
		}
	}
	return "", nil
}

// Profile возвращает учётную запись по имени, включая демо-аккаунты.
func (s *Service) Profile(_ context.Context, username string) (*models.User, error) {
	var user *models.User
	err := s.store.View(func(doc *models.Document) error {
		if u, ok := doc.Users[username]; ok {
			user = u
			return nil
		}
		if du, ok := demoUsers[username]; ok {
			user = &du
			return nil
		}
		return ErrUserNotFound
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// ProfileUpdate — необязательные поля обновления профиля; пустые значения
// оставляют текущие.
type ProfileUpdate struct {
	Name  string
	Email string
	Phone string
}

// UpdateProfile обновляет профиль; отсутствующая учётная запись создаётся
// с одним именем, как это делала старая площадка.
func (s *Service) UpdateProfile(_ context.Context, username string, upd ProfileUpdate) (*models.User, error) {
	var user *models.User
	err := s.store.Update(func(doc *models.Document) error {
		u, ok := doc.Users[username]
		if !ok {
			u = &models.User{Username: username}
			doc.Users[username] = u
		}
		if upd.Name != "" {
			u.Name = upd.Name
		}
		if upd.Email != "" {
			u.Email = upd.Email
		}
		if upd.Phone != "" {
			u.Phone = upd.Phone
		}
		user = u
		return nil
	})
	if err != nil {
		return nil, err
	}
	return user, nil
}

// Balance возвращает баланс счёта пользователя: "real" — реальный счёт,
// иначе демо-счёт.
func (s *Service) Balance(_ context.Context, username, account string) (float64, error) {
	user, err := s.Profile(context.Background(), username)
	if err != nil {
		return 0, err
	}
	if account == "real" {
		return user.RealBalance, nil
	}
	return user.DemoBalance, nil
}

// IsDemoUser сообщает, зарезервировано ли имя за встроенным демо-аккаунтом.
func IsDemoUser(username string) bool {
	_, ok := demoUsers[username]
	return ok
}
