package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/sirupsen/logrus"

	"pethelp-client/config"
	"pethelp-client/internal/ports"
	"pethelp-client/internal/repository"
	"pethelp-client/internal/service"
)

func main() {
	logger := logrus.New()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signalChannel := make(chan os.Signal, 1)
	signal.Notify(signalChannel, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-signalChannel
		logger.Infof("получен сигнал %v, завершение работы", sig)
		cancel()
	}()

	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		logger.Fatalf("Ошибка загрузки конфигурации: %v", err)
	}

	credentials, closeStore, err := setupCredentialStore(cfg, logger)
	if err != nil {
		logger.Fatalf("Ошибка создания хранилища учётных данных: %v", err)
	}
	defer closeStore()

	httpClient, err := config.SetupHTTPClient(&cfg.API)
	if err != nil {
		logger.Fatalf("Ошибка создания HTTP клиента: %v", err)
	}

	sessionService := service.NewSessionService(credentials, httpClient, &cfg.API, logger)
	transport := service.NewTransportService(credentials, sessionService, httpClient, &cfg.API, logger)
	feedService := service.NewFeedService(transport, credentials, logger)
	profileService := service.NewProfileService(transport, credentials, logger)

	if profile, err := profileService.CachedProfile(ctx); err == nil && profile != nil {
		logger.WithField("login", profile.Login).Info("последний известный профиль")
	}

	posts, err := feedService.FetchFeed(ctx, 0)
	if err != nil {
		logger.Fatalf("Ошибка загрузки ленты: %v", err)
	}

	for _, post := range posts {
		logger.WithFields(logrus.Fields{
			"kind":  post.Kind,
			"title": post.Title,
			"city":  post.City,
		}).Info("объявление")
	}
}

func setupCredentialStore(cfg *config.AppConfig, logger *logrus.Logger) (ports.CredentialStore, func(), error) {
	account := cfg.Storage.Account
	if account == "" {
		account = "default"
	}

	switch cfg.Storage.Backend {
	case "", "file":
		path := cfg.Storage.FilePath
		if path == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, nil, fmt.Errorf("ошибка определения домашнего каталога: %w", err)
			}
			path = home + "/.pethelp/credentials.json"
		}
		return repository.NewFileCredentials(path, cfg.Storage.Secret), func() {}, nil

	case "memory":
		return repository.NewMemoryCredentials(), func() {}, nil

	case "redis":
		redisClient, err := config.SetupRedis(&cfg.RedisConfig)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			if err := redisClient.Close(); err != nil {
				logger.Errorf("Ошибка при закрытии Redis: %v", err)
			}
		}
		return repository.NewRedisCredentials(redisClient, account, logger), closeStore, nil

	case "postgres":
		db, err := config.SetupDatabase(cfg.DatabaseConfig.DSN)
		if err != nil {
			return nil, nil, err
		}
		closeStore := func() {
			if err := db.Close(); err != nil {
				logger.Errorf("Ошибка при закрытии БД: %v", err)
			}
		}
		return repository.NewSQLCredentials(db, account, logger), closeStore, nil

	default:
		return nil, nil, fmt.Errorf("неизвестный бэкенд хранилища: %s", cfg.Storage.Backend)
	}
}
