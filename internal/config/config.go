package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	PersistenceModeInline = "inline"
	PersistenceModeStream = "stream"

	defaultPlacesBaseURL  = "https://places.googleapis.com"
	defaultFirebaseCerts  = "https://www.googleapis.com/robot/v1/metadata/x509/securetoken@system.gserviceaccount.com"
	defaultConsumerGroup  = "place-ingest-workers"
	defaultWorkerBatch    = 20
	defaultPlacesTimeoutS = 10
)

type Config struct {
	Server      ServerConfig
	Database    DatabaseConfig
	Redis       RedisConfig
	Log         LogConfig
	Places      PlacesConfig
	Auth        AuthConfig
	Persistence PersistenceConfig
	Worker      WorkerConfig
}

type ServerConfig struct {
	Host         string
	Port         int
	Env          string
	AllowOrigins []string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type LogConfig struct {
	Level string
}

// PlacesConfig - настройки клиента Google Places API
type PlacesConfig struct {
	APIKey         string
	BaseURL        string
	RequestTimeout time.Duration
}

// AuthConfig - настройки проверки Firebase ID токенов
type AuthConfig struct {
	FirebaseProjectID   string
	CertsURL            string
	RequireLocationAuth bool
}

// PersistenceConfig определяет, как сохраняются результаты поиска:
// inline - в рамках запроса, stream - через Redis Stream и воркер
type PersistenceConfig struct {
	Mode string
}

type WorkerConfig struct {
	Enabled       bool
	ConsumerGroup string
	BatchSize     int
}

func Load() (*Config, error) {
	return LoadFrom(".env")
}

// LoadFrom читает конфигурацию из env-файла (если он есть) и окружения
func LoadFrom(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("AUTH_REQUIRE_LOCATION", true)
	v.SetDefault("API_PORT", 3000)
	v.SetDefault("LOG_LEVEL", "info")

	if _, err := os.Stat(path); err == nil {
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: v.GetString("API_HOST"),
			Port: v.GetInt("API_PORT"),
			Env:  v.GetString("API_ENV"),
			// CORS_ALLOW_ORIGINS через запятую, пусто - любой источник
			AllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		Database: DatabaseConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetInt("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			DBName:          v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			MaxConns:        v.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(v.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(v.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetInt("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		Log: LogConfig{
			Level: v.GetString("LOG_LEVEL"),
		},
		Places: PlacesConfig{
			APIKey:         v.GetString("GOOGLE_API_KEY"),
			BaseURL:        v.GetString("GOOGLE_PLACES_BASE_URL"),
			RequestTimeout: time.Duration(v.GetInt("GOOGLE_PLACES_TIMEOUT")) * time.Second,
		},
		Auth: AuthConfig{
			FirebaseProjectID:   v.GetString("FIREBASE_PROJECT_ID"),
			CertsURL:            v.GetString("FIREBASE_CERTS_URL"),
			RequireLocationAuth: v.GetBool("AUTH_REQUIRE_LOCATION"),
		},
		Persistence: PersistenceConfig{
			Mode: v.GetString("PERSISTENCE_MODE"),
		},
		Worker: WorkerConfig{
			Enabled:       v.GetBool("WORKER_ENABLED"),
			ConsumerGroup: v.GetString("WORKER_CONSUMER_GROUP"),
			BatchSize:     v.GetInt("WORKER_BATCH_SIZE"),
		},
	}

	// Set default values if not provided
	if cfg.Places.BaseURL == "" {
		cfg.Places.BaseURL = defaultPlacesBaseURL
	}
	if cfg.Places.RequestTimeout == 0 {
		cfg.Places.RequestTimeout = defaultPlacesTimeoutS * time.Second
	}
	if cfg.Auth.CertsURL == "" {
		cfg.Auth.CertsURL = defaultFirebaseCerts
	}
	if cfg.Persistence.Mode == "" {
		cfg.Persistence.Mode = PersistenceModeInline
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = defaultConsumerGroup
	}
	if cfg.Worker.BatchSize == 0 {
		cfg.Worker.BatchSize = defaultWorkerBatch
	}

	return cfg, nil
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	if c.Places.APIKey == "" {
		return fmt.Errorf("GOOGLE_API_KEY is required")
	}
	if c.Auth.FirebaseProjectID == "" {
		return fmt.Errorf("FIREBASE_PROJECT_ID is required")
	}
	switch c.Persistence.Mode {
	case PersistenceModeInline, PersistenceModeStream:
	default:
		return fmt.Errorf("unknown PERSISTENCE_MODE %q", c.Persistence.Mode)
	}
	return nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}

// StreamMode сообщает, что сохранение мест идёт через Redis Stream
func (c *Config) StreamMode() bool {
	return c.Persistence.Mode == PersistenceModeStream
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
