package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

var (
	// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Хранилища сессий
const (
	StorageRedis  = "redis"
	StorageMemory = "memory"
)

// Config корневая конфигурация сервиса
type Config struct {
	Server      ServerConfig   `toml:"server"`
	Logs        LogsConfig     `toml:"logs"`
	Metrics     MetricsConfig  `toml:"metrics"`
	Session     SessionConfig  `toml:"session"`
	Redis       RedisConfig    `toml:"redis"`
	Database    DatabaseConfig `toml:"database"`
	TourCatalog ServiceConfig  `toml:"tour_catalog"`
	BookingAPI  ServiceConfig  `toml:"booking_api"`
	Payment     PaymentConfig  `toml:"payment"`
	PayPal      PayPalConfig   `toml:"paypal"`
	Stripe      StripeConfig   `toml:"stripe"`
	Broker      BrokerConfig   `toml:"broker"`
	Support     SupportConfig  `toml:"support"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`     // секунды
	WriteTimeout    int `toml:"write_timeout"`    // секунды
	IdleTimeout     int `toml:"idle_timeout"`     // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"` // секунды
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// SessionConfig настройки хранения черновиков бронирования
type SessionConfig struct {
	Storage               string `toml:"storage"` // redis | memory
	KeyPrefix             string `toml:"key_prefix"`
	TTL                   int    `toml:"ttl"` // секунды; 0 = без истечения
	RecoveryNoticeSeconds int    `toml:"recovery_notice_seconds"`
	SuspendGraceMs        int    `toml:"suspend_grace_ms"` // вкладка скрыта дольше - черновик удаляется
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type DatabaseConfig struct {
	Enabled         bool   `toml:"enabled"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN строка подключения к PostgreSQL
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// ServiceConfig адрес внешнего HTTP API
type ServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

type PaymentConfig struct {
	Currency       string  `toml:"currency"`
	TaxRate        float64 `toml:"tax_rate"`
	SDKLoadTimeout int     `toml:"sdk_load_timeout"` // секунды
	SupportContact string  `toml:"support_contact"`
}

type PayPalConfig struct {
	Enabled      bool   `toml:"enabled"`
	ClientID     string `toml:"client_id"`
	ClientSecret string `toml:"client_secret"`
	BaseURL      string `toml:"base_url"`
	SDKURL       string `toml:"sdk_url"`
	Timeout      int    `toml:"timeout"`
}

type StripeConfig struct {
	Enabled        bool   `toml:"enabled"`
	PublishableKey string `toml:"publishable_key"`
	SecretKey      string `toml:"secret_key"`
	BaseURL        string `toml:"base_url"`
	SDKURL         string `toml:"sdk_url"`
	Timeout        int    `toml:"timeout"`
}

type BrokerConfig struct {
	Enabled  bool   `toml:"enabled"`
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type SupportConfig struct {
	Token string `toml:"token"`
}

// Load читает конфигурацию из TOML-файла
// Секреты можно переопределить переменными окружения (в т.ч. из .env)
func Load(path string) (*Config, error) {
	// .env опционален, отсутствие файла не ошибка
	_ = godotenv.Load()

	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Parse разбирает конфигурацию из строки (используется в тестах и утилитах)
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}

	cfg.applyEnv()
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyEnv() {
	overrides := map[string]*string{
		"PAYPAL_CLIENT_ID":       &c.PayPal.ClientID,
		"PAYPAL_CLIENT_SECRET":   &c.PayPal.ClientSecret,
		"STRIPE_PUBLISHABLE_KEY": &c.Stripe.PublishableKey,
		"STRIPE_SECRET_KEY":      &c.Stripe.SecretKey,
		"DATABASE_PASSWORD":      &c.Database.Password,
		"REDIS_PASSWORD":         &c.Redis.Password,
		"RABBITMQ_URL":           &c.Broker.URL,
		"SUPPORT_TOKEN":          &c.Support.Token,
	}

	for env, field := range overrides {
		if v, ok := os.LookupEnv(env); ok && v != "" {
			*field = v
		}
	}
}

func (c *Config) applyDefaults() {
	setInt(&c.Server.HTTPPort, 8080)
	setInt(&c.Server.ReadTimeout, 10)
	setInt(&c.Server.WriteTimeout, 30)
	setInt(&c.Server.IdleTimeout, 60)
	setInt(&c.Server.ShutdownTimeout, 10)

	setString(&c.Logs.Level, "info")

	setString(&c.Metrics.Path, "/metrics")
	setString(&c.Metrics.ServiceName, "tour_booking_service")

	setString(&c.Session.Storage, StorageRedis)
	setString(&c.Session.KeyPrefix, "booking:session:")
	setInt(&c.Session.RecoveryNoticeSeconds, 3)
	setInt(&c.Session.SuspendGraceMs, 1000)

	setString(&c.Redis.Addr, "localhost:6379")

	setString(&c.Database.SSLMode, "disable")
	setInt(&c.Database.Port, 5432)
	setInt(&c.Database.MaxOpenConns, 10)
	setInt(&c.Database.MaxIdleConns, 5)
	setInt(&c.Database.ConnMaxLifetime, 300)

	setInt(&c.TourCatalog.Timeout, 5)
	setInt(&c.BookingAPI.Timeout, 10)

	setString(&c.Payment.Currency, "EUR")
	setInt(&c.Payment.SDKLoadTimeout, 12)

	setString(&c.PayPal.BaseURL, "https://api-m.sandbox.paypal.com")
	setString(&c.PayPal.SDKURL, "https://www.paypal.com/sdk/js")
	setInt(&c.PayPal.Timeout, 15)

	setString(&c.Stripe.BaseURL, "https://api.stripe.com")
	setString(&c.Stripe.SDKURL, "https://js.stripe.com/v3/")
	setInt(&c.Stripe.Timeout, 15)

	setString(&c.Broker.Exchange, "booking_events")

	c.Payment.Currency = strings.ToUpper(c.Payment.Currency)
}

// Validate проверяет согласованность конфигурации
func (c *Config) Validate() error {
	if c.Session.Storage != StorageRedis && c.Session.Storage != StorageMemory {
		return fmt.Errorf("%w: session.storage must be %q or %q", ErrInvalidConfig, StorageRedis, StorageMemory)
	}

	if c.TourCatalog.URL == "" {
		return fmt.Errorf("%w: tour_catalog.url is required", ErrInvalidConfig)
	}

	if c.BookingAPI.URL == "" {
		return fmt.Errorf("%w: booking_api.url is required", ErrInvalidConfig)
	}

	if c.Payment.TaxRate < 0 || c.Payment.TaxRate >= 1 {
		return fmt.Errorf("%w: payment.tax_rate must be in [0, 1)", ErrInvalidConfig)
	}

	if !c.PayPal.Enabled && !c.Stripe.Enabled {
		return fmt.Errorf("%w: at least one payment provider must be enabled", ErrInvalidConfig)
	}

	if c.PayPal.Enabled && (c.PayPal.ClientID == "" || c.PayPal.ClientSecret == "") {
		return fmt.Errorf("%w: paypal.client_id and paypal.client_secret are required", ErrInvalidConfig)
	}

	if c.Stripe.Enabled && (c.Stripe.PublishableKey == "" || c.Stripe.SecretKey == "") {
		return fmt.Errorf("%w: stripe.publishable_key and stripe.secret_key are required", ErrInvalidConfig)
	}

	if c.Broker.Enabled && c.Broker.URL == "" {
		return fmt.Errorf("%w: broker.url is required when broker is enabled", ErrInvalidConfig)
	}

	return nil
}

func setInt(field *int, def int) {
	if *field == 0 {
		*field = def
	}
}

func setString(field *string, def string) {
	if *field == "" {
		*field = def
	}
}
