package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// Config содержит конфигурацию сервера сценариев
type Config struct {
	// Настройки сервера
	Port        string `envconfig:"SERVER_PORT" default:"4000"`
	Env         string `envconfig:"APP_ENV" default:"development"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	LogEncoding string `envconfig:"LOG_ENCODING" default:"json"`

	// Настройки PostgreSQL
	DBHost     string `envconfig:"DB_HOST" default:"localhost"`
	DBPort     string `envconfig:"DB_PORT" default:"5432"`
	DBUser     string `envconfig:"DB_USER" required:"true"`
	DBPassword string `envconfig:"DB_PASSWORD" required:"true"`
	DBName     string `envconfig:"DB_NAME" required:"true"`
	DBSSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	DBMaxConns int32  `envconfig:"DB_MAX_CONNECTIONS" default:"10"`

	// Настройки Completion Provider (OpenAI-совместимый API)
	AIAPIKey  string `envconfig:"OPENAI_API_KEY" required:"true"`
	AIBaseURL string `envconfig:"OPENAI_BASE_URL" default:""`
	AIModel   string `envconfig:"OPENAI_MODEL" default:"gpt-3.5-turbo"`
	AITimeout int    `envconfig:"OPENAI_TIMEOUT_SECONDS" default:"30"`
}

// GetDSN возвращает строку подключения (DSN) для PostgreSQL
func (c *Config) GetDSN() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// LoadConfig загружает конфигурацию из переменных окружения
func LoadConfig() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}
	return &cfg, nil
}
