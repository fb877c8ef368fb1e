package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config - настройки сервиса из окружения (и .env, если он есть)
type Config struct {
	ServerAddress string

	// База данных: postgres или sqlite3
	DBDriver          string
	PostgresConn      string
	SQLitePath        string
	DBConnectionLimit int

	LogFile         string
	OfferExpiryCron string
	SeedFile        string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		ServerAddress:     getEnv("SERVER_ADDRESS", "0.0.0.0:8080"),
		DBDriver:          getEnv("DB_DRIVER", "postgres"),
		PostgresConn:      os.Getenv("POSTGRES_CONN"),
		SQLitePath:        getEnv("SQLITE_PATH", "estate.db"),
		DBConnectionLimit: getEnvInt("DB_CONNECTION_LIMIT", 5),
		LogFile:           os.Getenv("LOG_FILE"),
		OfferExpiryCron:   os.Getenv("OFFER_EXPIRY_CRON"),
		SeedFile:          os.Getenv("SEED_FILE"),
	}

	switch cfg.DBDriver {
	case "postgres":
		if cfg.PostgresConn == "" {
			return nil, fmt.Errorf("POSTGRES_CONN env variable is not set")
		}
	case "sqlite3":
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q (postgres or sqlite3)", cfg.DBDriver)
	}

	return cfg, nil
}

// DSN - строка подключения для выбранного драйвера
func (c *Config) DSN() string {
	if c.DBDriver == "sqlite3" {
		return c.SQLitePath
	}
	return c.PostgresConn
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
