package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// loadDotenv 讀取 .env，測試可覆寫
var loadDotenv = func() error { return godotenv.Load() }

type Config struct {
	HTTPAddr string

	DatabaseURL string

	RedisAddr     string
	RedisDB       int
	RedisPassword string

	JWTSecret  string
	SessionTTL time.Duration
	TokenTTL   time.Duration

	InactiveWindow time.Duration

	WorkerCount          int
	SessionSweepInterval time.Duration

	LoginMaxAttempts int
	LoginLockWindow  time.Duration

	LogLevel    string
	LogEncoding string
}

// Load 先載入 .env (不存在則略過)，再從環境變數組出設定
func Load() (*Config, error) {
	if err := loadDotenv(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("載入 .env 失敗: %w", err)
	}

	cfg := &Config{
		HTTPAddr:    getEnv("HTTP_ADDR", ":8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		LogEncoding: getEnv("LOG_ENCODING", "json"),
	}

	var err error
	for _, r := range []struct {
		key string
		dst *string
	}{
		{"DATABASE_URL", &cfg.DatabaseURL},
		{"REDIS_ADDR", &cfg.RedisAddr},
		{"REDIS_PASSWORD", &cfg.RedisPassword},
		{"JWT_SECRET", &cfg.JWTSecret},
	} {
		if *r.dst, err = requireEnv(r.key); err != nil {
			return nil, err
		}
	}

	redisDB, err := requireEnv("REDIS_DB")
	if err != nil {
		return nil, err
	}
	if cfg.RedisDB, err = strconv.Atoi(redisDB); err != nil || cfg.RedisDB < 0 {
		return nil, fmt.Errorf("無效的 REDIS_DB: %q", redisDB)
	}

	for _, d := range []struct {
		key string
		def time.Duration
		dst *time.Duration
	}{
		{"SESSION_TTL", time.Hour, &cfg.SessionTTL},
		{"TOKEN_TTL", time.Hour, &cfg.TokenTTL},
		{"INACTIVE_WINDOW", 30 * 24 * time.Hour, &cfg.InactiveWindow},
		{"SESSION_SWEEP_INTERVAL", 10 * time.Minute, &cfg.SessionSweepInterval},
		{"LOGIN_LOCK_WINDOW", 15 * time.Minute, &cfg.LoginLockWindow},
	} {
		if *d.dst, err = getEnvDuration(d.key, d.def); err != nil {
			return nil, err
		}
	}

	if cfg.WorkerCount, err = getEnvInt("WORKER_COUNT", 1, 1); err != nil {
		return nil, err
	}
	if cfg.LoginMaxAttempts, err = getEnvInt("LOGIN_MAX_ATTEMPTS", 5, 0); err != nil {
		return nil, err
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func requireEnv(key string) (string, error) {
	v := os.Getenv(key)
	if v == "" {
		return "", fmt.Errorf("環境變數 %s 未設定", key)
	}
	return v, nil
}

func getEnvInt(key string, fallback, min int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	i, err := strconv.Atoi(v)
	if err != nil || i < min {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return i, nil
}

// getEnvDuration 只接受正值
func getEnvDuration(key string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("無效的 %s: %q", key, v)
	}
	return d, nil
}
