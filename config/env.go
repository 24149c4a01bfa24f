package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// LoadEnv membaca file .env kalau ada. Tanpa .env, environment proses dipakai apa adanya.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		log.Println("file .env tidak ditemukan, memakai environment sistem")
	}
}

type Config struct {
	Port          string
	APIBaseURL    string
	APITimeout    time.Duration // 0 = tanpa timeout
	ServiceSecret string
	LogLevel      string
	ViewsConfig   string // kosong = views.yaml bawaan
}

func FromEnv() Config {
	return Config{
		Port:          envOr("PORT", "8080"),
		APIBaseURL:    strings.TrimSuffix(envOr("API_BASE_URL", "http://127.0.0.1:5000"), "/"),
		APITimeout:    envDuration("API_TIMEOUT", 0),
		ServiceSecret: os.Getenv("API_SERVICE_SECRET"),
		LogLevel:      strings.ToLower(envOr("LOG_LEVEL", "info")),
		ViewsConfig:   os.Getenv("VIEWS_CONFIG"),
	}
}

func envOr(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

// envDuration accepts "5s" style values or a bare number of seconds.
func envDuration(k string, def time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return def
	}
	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if n, err := strconv.Atoi(v); err == nil {
		return time.Duration(n) * time.Second
	}
	return def
}
