package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"pethelp-client/config"
	"pethelp-client/internal/util"
)

// RedisCredentials хранит состояние клиента в Redis: один hash на логический
// аккаунт. Бэкенд для сервисов, которые ходят в API от имени пользователя
// и делят сессию между экземплярами.
type RedisCredentials struct {
	client  *config.RedisClient
	account string
	logger  *logrus.Logger
}

func NewRedisCredentials(rdb *config.RedisClient, account string, logger *logrus.Logger) *RedisCredentials {
	return &RedisCredentials{rdb, account, logger}
}

func (r *RedisCredentials) AccessToken(ctx context.Context) (string, error) {
	return r.field(ctx, keyAccessToken)
}

func (r *RedisCredentials) RefreshToken(ctx context.Context) (string, error) {
	return r.field(ctx, keyRefreshToken)
}

// SetPair записывает оба токена одной командой HSET: пара видна читателям
// только целиком
func (r *RedisCredentials) SetPair(ctx context.Context, accessToken, refreshToken string) error {
	err := r.client.Client.HSet(ctx, r.key(),
		keyAccessToken, accessToken,
		keyRefreshToken, refreshToken,
	).Err()
	if err != nil {
		return util.LogError(r.logger, "ошибка сохранения токенов в Redis", err)
	}
	return nil
}

func (r *RedisCredentials) Clear(ctx context.Context) error {
	err := r.client.Client.HDel(ctx, r.key(), keyAccessToken, keyRefreshToken, keyProfile).Err()
	if err != nil {
		return util.LogError(r.logger, "ошибка удаления токенов из Redis", err)
	}
	return nil
}

func (r *RedisCredentials) DeviceID(ctx context.Context) (string, error) {
	deviceID, err := r.field(ctx, keyDeviceID)
	if err != nil {
		return "", err
	}
	if deviceID != "" {
		return deviceID, nil
	}

	deviceID = uuid.New().String()
	// HSETNX: параллельный клиент мог успеть первым, его идентификатор важнее
	created, err := r.client.Client.HSetNX(ctx, r.key(), keyDeviceID, deviceID).Result()
	if err != nil {
		return "", util.LogError(r.logger, "ошибка сохранения идентификатора устройства", err)
	}
	if !created {
		return r.field(ctx, keyDeviceID)
	}
	return deviceID, nil
}

func (r *RedisCredentials) Trusted(ctx context.Context) (bool, error) {
	value, err := r.field(ctx, keyTrusted)
	if err != nil {
		return false, err
	}
	return value == "true", nil
}

func (r *RedisCredentials) SetTrusted(ctx context.Context, trusted bool) error {
	var err error
	if trusted {
		err = r.client.Client.HSet(ctx, r.key(), keyTrusted, "true").Err()
	} else {
		err = r.client.Client.HDel(ctx, r.key(), keyTrusted).Err()
	}
	if err != nil {
		return util.LogError(r.logger, "ошибка сохранения флага доверия", err)
	}
	return nil
}

func (r *RedisCredentials) ProfileSnapshot(ctx context.Context) ([]byte, error) {
	value, err := r.field(ctx, keyProfile)
	if err != nil {
		return nil, err
	}
	if value == "" {
		return nil, nil
	}
	return []byte(value), nil
}

func (r *RedisCredentials) SetProfileSnapshot(ctx context.Context, snapshot []byte) error {
	if err := r.client.Client.HSet(ctx, r.key(), keyProfile, snapshot).Err(); err != nil {
		return util.LogError(r.logger, "ошибка сохранения снимка профиля", err)
	}
	return nil
}

func (r *RedisCredentials) field(ctx context.Context, field string) (string, error) {
	value, err := r.client.Client.HGet(ctx, r.key(), field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	} else if err != nil {
		return "", util.LogError(r.logger, "ошибка чтения из Redis", err)
	}
	return value, nil
}

func (r *RedisCredentials) key() string {
	return fmt.Sprintf("credentials:%s", r.account)
}
