package config

import (
	"fmt"
	"os"
	"strconv"
)

const (
	defaultPort        = 8080
	defaultPageSize    = 30
	defaultMaxPageSize = 50
)

type Config struct {
	Port      int
	JWTSecret string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	DefaultPageSize int
	MaxPageSize     int
}

// Load reads configuration from the environment. Callers load .env themselves
// (godotenv) before calling, so tests can set plain env vars.
func Load() Config {
	return Config{
		Port:            envInt("PORT", defaultPort),
		JWTSecret:       os.Getenv("JWT_SECRET"),
		DBHost:          os.Getenv("POSTGRES_HOST"),
		DBPort:          os.Getenv("POSTGRES_PORT"),
		DBUser:          os.Getenv("POSTGRES_USER"),
		DBPassword:      os.Getenv("POSTGRES_PASSWORD"),
		DBName:          os.Getenv("POSTGRES_DB"),
		DefaultPageSize: envInt("DEFAULT_PAGE_SIZE", defaultPageSize),
		MaxPageSize:     envInt("MAX_PAGE_SIZE", defaultMaxPageSize),
	}
}

func (c Config) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

func envInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}
