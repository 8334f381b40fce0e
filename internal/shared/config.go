package shared

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AppEnv         string
	HTTPAddr       string
	MetricsAddr    string
	MySQLDSN       string
	RedisAddr      string
	RedisDB        int
	RedisPass      string
	ImagePlaceDir  string
	ImageCatDir    string
	CacheTTL       time.Duration
	MaxOTPAttempts int64
	OTPWindow      time.Duration
	RateLimitRPS   float64
	RateLimitBurst int
	SeedWorkers    int
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	atof := func(k string, def float64) float64 {
		if v := os.Getenv(k); v != "" {
			if f, err := strconv.ParseFloat(v, 64); err == nil {
				return f
			}
		}
		return def
	}
	return Config{
		AppEnv:         env("APP_ENV", "prod"),
		HTTPAddr:       env("HTTP_ADDR", ":8080"),
		MetricsAddr:    env("METRICS_ADDR", ":9100"),
		MySQLDSN:       env("MYSQL_DSN", "root:root@tcp(localhost:3306)/placebook?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:      env("REDIS_ADDR", "localhost:6379"),
		RedisDB:        atoi("REDIS_DB", 0),
		RedisPass:      env("REDIS_PASSWORD", ""),
		ImagePlaceDir:  env("IMAGE_PLACE_DIR", "var/images/places"),
		ImageCatDir:    env("IMAGE_CATEGORY_DIR", "var/images/categories"),
		CacheTTL:       time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
		MaxOTPAttempts: int64(atoi("MAX_OTP_ATTEMPTS", 3)),
		OTPWindow:      time.Duration(atoi("OTP_WINDOW_HOURS", 24)) * time.Hour,
		RateLimitRPS:   atof("RATE_LIMIT_RPS", 50),
		RateLimitBurst: atoi("RATE_LIMIT_BURST", 100),
		SeedWorkers:    atoi("SEED_WORKERS", 8),
	}
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
