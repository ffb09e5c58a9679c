// Package models содержит доменную модель демо-площадки: пользователей,
// выданные токены и журнальные записи операций. Имена JSON-полей совпадают
// с историческим форматом db.json, менять их нельзя.
package models

import "time"

// User представляет зарегистрированного пользователя площадки.
type User struct {
	Username    string    `json:"username"`
	Password    string    `json:"password"` // открытый текст, формат унаследован от старой площадки
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Phone       string    `json:"phone,omitempty"`
	Country     *string   `json:"country"`
	DemoBalance float64   `json:"demoBalance"`
	RealBalance float64   `json:"realBalance"`
	CreatedAt   time.Time `json:"createdAt"`
	IsAdmin     bool      `json:"isAdmin"`
}

// TokenRecord — журнальная запись о выданном токене. Записи только
// добавляются; срок действия определяется claim'ом внутри самого токена.
type TokenRecord struct {
	Token    string    `json:"token"`
	Username string    `json:"username"`
	IssuedAt time.Time `json:"issuedAt"`
}

// ResetCode — одноразовый код восстановления пароля.
type ResetCode struct {
	Code      string    `json:"code"`
	ExpiresAt time.Time `json:"expiresAt"`
}
