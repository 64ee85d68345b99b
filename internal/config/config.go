package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBPath      string
	Workers     int
	PageSize    int
	SuperJobKey string
}

// Load reads configuration from the environment, after loading a local .env
// file when one exists. SUPERJOB_KEY has no default on purpose: its absence
// disables SuperJob fetches without affecting other sources.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:        getEnv("PORT", "8080"),
		DBPath:      getEnv("DB_PATH", "vacancies.db"),
		Workers:     getEnvInt("WORKERS", 5),
		PageSize:    getEnvInt("PAGE_SIZE", 5),
		SuperJobKey: getEnv("SUPERJOB_KEY", ""),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n := 0
	for _, c := range v {
		if c < '0' || c > '9' {
			return fallback
		}
		n = n*10 + int(c-'0')
	}
	return n
}
