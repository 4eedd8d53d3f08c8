// Package config загружает настройки приложения из переменных окружения (и файла .env, если он есть).
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joeshaw/envdecode"
	"github.com/joho/godotenv"
)

// Config - все настройки API-сервера и бота.
type Config struct {
	HTTP  HTTPConfig
	DB    DBConfig
	Auth  AuthConfig
	POI   POIConfig
	Redis RedisConfig
	Log   LogConfig
	Bot   BotConfig
}

// HTTPConfig - настройки HTTP-сервера.
type HTTPConfig struct {
	Port            string        `env:"API_PORT,default=8080"`
	ShutdownTimeout time.Duration `env:"API_SHUTDOWN_TIMEOUT,default=10s"`
	// Разрешенный Origin для CORS (клиент на Vite по умолчанию).
	AllowedOrigin string  `env:"API_ALLOWED_ORIGIN,default=http://localhost:5173"`
	AuthRateLimit float64 `env:"API_AUTH_RATE_LIMIT,default=5"`
	AuthRateBurst int     `env:"API_AUTH_RATE_BURST,default=10"`
}

// DBConfig - параметры подключения к PostgreSQL.
type DBConfig struct {
	Host    string `env:"DB_HOST,default=localhost"`
	Port    string `env:"DB_PORT,default=5432"`
	User    string `env:"DB_USER"`
	Pass    string `env:"DB_PASS"`
	Name    string `env:"DB_NAME,default=globetrotter"`
	SSLMode string `env:"DB_SSLMODE,default=disable"`
	Seed    bool   `env:"DB_SEED,default=true"`
}

// DSN собирает строку подключения для lib/pq.
func (c DBConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Pass, c.Name, c.SSLMode)
}

// AuthConfig - секрет и время жизни токенов сессии.
type AuthConfig struct {
	JWTSecret string        `env:"JWT_SECRET"`
	TokenTTL  time.Duration `env:"JWT_TTL,default=1h"`
	// Устаревший путь: сравнение паролей, сохраненных открытым текстом.
	AllowLegacyPasswords bool `env:"AUTH_ALLOW_LEGACY_PASSWORDS,default=false"`
}

// POIConfig - поставщик точек интереса и учетные данные Amadeus.
type POIConfig struct {
	Provider    string        `env:"POI_PROVIDER,default=static"`
	CatalogPath string        `env:"POI_CATALOG_PATH"`
	CacheTTL    time.Duration `env:"POI_CACHE_TTL,default=6h"`

	AmadeusBaseURL      string        `env:"AMADEUS_BASE_URL,default=https://test.api.amadeus.com"`
	AmadeusClientID     string        `env:"AMADEUS_CLIENT_ID"`
	AmadeusClientSecret string        `env:"AMADEUS_CLIENT_SECRET"`
	AmadeusTimeout      time.Duration `env:"AMADEUS_TIMEOUT,default=10s"`
}

// AmadeusEnabled сообщает, заданы ли учетные данные внешнего сервиса.
func (c POIConfig) AmadeusEnabled() bool {
	return c.AmadeusClientID != "" && c.AmadeusClientSecret != ""
}

// RedisConfig - кеш POI; пустой REDIS_ADDR отключает кеш.
type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,default=0"`
}

// LogConfig - уровень и формат логов.
type LogConfig struct {
	Level  string `env:"LOG_LEVEL,default=info"`
	Format string `env:"LOG_FORMAT,default=text"`
}

// BotConfig - настройки Telegram-бота.
type BotConfig struct {
	Token string `env:"BOT_TOKEN"`
	// Список chat id через запятую, которым доступна команда /stats.
	AdminChatIDs string `env:"BOT_ADMIN_CHAT_IDS"`
}

// AdminIDs разбирает BOT_ADMIN_CHAT_IDS; нечисловые элементы пропускаются.
func (c BotConfig) AdminIDs() map[int64]bool {
	ids := make(map[int64]bool)
	for _, part := range strings.Split(c.AdminChatIDs, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids[id] = true
	}
	return ids
}

// Load читает .env (если файл существует) и затем переменные окружения.
func Load() (*Config, error) {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if _, err := os.Stat(envFile); err == nil {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("не удалось прочитать %s: %w", envFile, err)
		}
	}

	var cfg Config
	if err := envdecode.Decode(&cfg); err != nil && !errors.Is(err, envdecode.ErrNoTargetFieldsAreSet) {
		return nil, fmt.Errorf("ошибка разбора конфигурации: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// ValidateAPI проверяет настройки, обязательные для API-сервера.
func (c *Config) ValidateAPI() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("не задан JWT_SECRET")
	}
	return nil
}

// ValidateBot проверяет настройки, обязательные для Telegram-бота.
func (c *Config) ValidateBot() error {
	if c.Bot.Token == "" {
		return errors.New("не указан токен бота (BOT_TOKEN)")
	}
	return nil
}

func (c *Config) validate() error {
	switch c.POI.Provider {
	case "static", "amadeus":
	default:
		return fmt.Errorf("неизвестный POI_PROVIDER %q (ожидается static или amadeus)", c.POI.Provider)
	}
	if c.POI.Provider == "amadeus" && !c.POI.AmadeusEnabled() {
		return errors.New("POI_PROVIDER=amadeus требует AMADEUS_CLIENT_ID и AMADEUS_CLIENT_SECRET")
	}
	return nil
}
