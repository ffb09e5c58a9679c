// Package config предоставляет структуры и функцию загрузки конфигурации
// из переменных окружения с необязательным .env-файлом.
package config

import (
	"log"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

// Config — общая структура настроек приложения.
type Config struct {
	Env         string        `env:"APP_ENV" env-default:"local"`
	Port        string        `env:"PORT" env-default:"5000"`
	StoragePath string        `env:"DB_PATH" env-default:"db.json"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" env-default:"15s"`
	IdleTimeout time.Duration `env:"HTTP_IDLE_TIMEOUT" env-default:"60s"`
	JWTToken    JWTToken
	PayHero     PayHero
}

// JWTToken — настройки выпуска сессионных токенов. Секрет по умолчанию
// пригоден только для локальной разработки и обязан быть переопределён
// в любом реальном развёртывании.
type JWTToken struct {
	Secret   string        `env:"JWT_SECRET" env-default:"preocrypto-secret-key-change-in-production"`
	TokenTTL time.Duration `env:"TOKEN_TTL" env-default:"24h"`
}

// PayHero — настройки интеграции с платёжным шлюзом.
type PayHero struct {
	APIURL      string        `env:"PAYHERO_API_URL" env-default:"https://api.payhero.io/v1"`
	BasicAuth   string        `env:"PAYHERO_BASIC_AUTH"`
	SecretKey   string        `env:"PAYHERO_SECRET_KEY"`
	AccountID   string        `env:"PAYHERO_ACCOUNT_ID"`
	CallbackURL string        `env:"PAYHERO_CALLBACK_URL" env-default:"https://www.preocrypto.com/webhook/mpesa-callback"`
	Timeout     time.Duration `env:"PAYHERO_TIMEOUT" env-default:"10s"`
}

// MustLoad загружает конфигурацию; при ошибке чтения окружения процесс
// завершается. Файл .env в рабочем каталоге, если он есть, подхватывается
// до чтения переменных.
func MustLoad() *Config {
	_ = godotenv.Load()

	var cfg Config
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return &cfg
}

// Address возвращает адрес прослушивания HTTP-сервера.
func (c *Config) Address() string {
	return ":" + c.Port
}
