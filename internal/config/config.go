package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port        string
	DatabaseURL string
	StorePath   string
	TickMS      int
	SessionTTL  int // minutes
}

func Load() Config {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		StorePath:   getEnv("STORE_PATH", "primehunt.db"),
		TickMS:      getEnvInt("TICK_MS", 50),
		SessionTTL:  getEnvInt("SESSION_TTL_MIN", 60),
	}
	if cfg.TickMS <= 0 {
		cfg.TickMS = 50
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = 60
	}
	return cfg
}

// Tick is the session frame interval.
func (c Config) Tick() time.Duration {
	return time.Duration(c.TickMS) * time.Millisecond
}

func (c Config) SessionTimeout() time.Duration {
	return time.Duration(c.SessionTTL) * time.Minute
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}
