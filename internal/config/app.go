package config

import (
	"log"
	"os"
	"sync"
)

type AppConfig struct {
	Name      string
	Env       string
	Port      string
	BaseURL   string
	LogLevel  string
	LogFormat string
}

var (
	appConfig *AppConfig
	appOnce   sync.Once
)

func LoadAppConfig() *AppConfig {
	appOnce.Do(func() {
		appConfig = loadAppConfig()
	})
	return appConfig
}

func loadAppConfig() *AppConfig {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "development"
		log.Printf("Warning: APP_ENV not set, defaulting to %s", env)
	}
	return &AppConfig{
		Name:      getEnv("APP_NAME", "ats-matcher"),
		Env:       env,
		Port:      getEnv("APP_PORT", ":8080"),
		BaseURL:   os.Getenv("APP_URL"),
		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),
	}
}

func (c *AppConfig) IsProduction() bool {
	return c.Env == "production"
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
