package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

var DefaultEnvConfig *envConfig

type envConfig struct {
	// server config
	APP_PORT      string
	MAX_UPLOAD_MB int
	// report config
	PREVIEW_ROW_LIMIT    int
	REPORT_TEMPLATE_PATH string
	// logger config
	LOG_FILE_PATH string
	LOG_LEVEL     string
}

func LoadEnvConfig() error {
	// A missing .env file is fine; the environment itself still wins.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return err
	}

	DefaultEnvConfig = &envConfig{
		APP_PORT:             getEnvString("APP_PORT", "8080"),
		MAX_UPLOAD_MB:        getEnvInt("MAX_UPLOAD_MB", 25),
		PREVIEW_ROW_LIMIT:    getEnvInt("PREVIEW_ROW_LIMIT", 20),
		REPORT_TEMPLATE_PATH: getEnvString("REPORT_TEMPLATE_PATH", ""),
		LOG_FILE_PATH:        getEnvString("LOG_FILE_PATH", ""),
		LOG_LEVEL:            getEnvString("LOG_LEVEL", "info"),
	}
	return nil
}

func getEnvString(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return fallback
}
