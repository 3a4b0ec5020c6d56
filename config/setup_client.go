package config

import (
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	API            APIConfig      `yaml:"api"`
	Storage        StorageConfig  `yaml:"storage"`
	DatabaseConfig DatabaseConfig `yaml:"databaseConfig"`
	RedisConfig    RedisConfig    `yaml:"redisConfig"`
}

func LoadConfig(path string) (*AppConfig, error) {
	file, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg AppConfig
	if err := yaml.Unmarshal(file, &cfg); err != nil {
		return nil, err
	}

	if cfg.API.AuthPathPrefix == "" {
		cfg.API.AuthPathPrefix = "/auth/"
	}
	if cfg.API.RefreshPath == "" {
		cfg.API.RefreshPath = "/auth/refresh"
	}

	return &cfg, nil
}

// SetupHTTPClient создает HTTP клиент для обмена с API.
// Каждому запросу выставляется таймаут: зависший запрос считается сетевой
// ошибкой, а не поводом для обновления сессии. Cookie сервера сохраняются
// и отправляются вместе с Bearer токеном.
func SetupHTTPClient(cfg *APIConfig) (*http.Client, error) {
	timeout := 15 * time.Second
	if cfg.RequestTimeout != "" {
		parsed, err := time.ParseDuration(cfg.RequestTimeout)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга request_timeout: %w", err)
		}
		timeout = parsed
	}

	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("ошибка создания cookie jar: %w", err)
	}

	return &http.Client{
		Timeout: timeout,
		Jar:     jar,
	}, nil
}

// SetupUploadClient создает отдельный клиент для загрузки файлов
// с увеличенным таймаутом
func SetupUploadClient(cfg *APIConfig) (*http.Client, error) {
	timeout := 5 * time.Minute
	if cfg.UploadTimeout != "" {
		parsed, err := time.ParseDuration(cfg.UploadTimeout)
		if err != nil {
			return nil, fmt.Errorf("ошибка парсинга upload_timeout: %w", err)
		}
		timeout = parsed
	}

	return &http.Client{Timeout: timeout}, nil
}

func SetupDatabase(dsn string) (*Database, error) {
	return NewDatabaseConnection("postgres", dsn)
}

func SetupRedis(cfg *RedisConfig) (*RedisClient, error) {
	return NewRedisClient(cfg)
}
