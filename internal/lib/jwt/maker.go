// Package jwt реализует выпуск и разбор сессионных токенов с claim'ом
// username и встроенным сроком действия.
package jwt

import "time"

// Maker описывает интерфейс выпуска и проверки сессионных токенов.
type Maker interface {
	// GenerateToken выпускает подписанный токен для указанного пользователя.
	GenerateToken(username string) (string, error)
	// ParseToken проверяет подпись и срок действия, возвращает claims.
	ParseToken(tokenStr string) (*Claims, error)
}

// MakerImpl реализует Maker на симметричном секрете и фиксированном
// времени жизни токена.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker создаёт MakerImpl с указанным секретом и TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
