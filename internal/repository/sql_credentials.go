package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"pethelp-client/config"
	"pethelp-client/internal/util"
)

// SQLCredentials хранит состояние клиента в Postgres: одна строка на
// логический аккаунт. Ожидаемая схема:
//
//	CREATE TABLE credentials (
//	    account       TEXT PRIMARY KEY,
//	    access_token  TEXT NOT NULL DEFAULT '',
//	    refresh_token TEXT NOT NULL DEFAULT '',
//	    device_id     TEXT NOT NULL DEFAULT '',
//	    trusted       BOOLEAN NOT NULL DEFAULT FALSE,
//	    profile       TEXT NOT NULL DEFAULT '',
//	    updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
//	);
type SQLCredentials struct {
	*config.Database
	account string
	logger  *logrus.Logger
}

func NewSQLCredentials(database *config.Database, account string, logger *logrus.Logger) *SQLCredentials {
	return &SQLCredentials{database, account, logger}
}

func (r *SQLCredentials) AccessToken(ctx context.Context) (string, error) {
	return r.column(ctx, `SELECT access_token FROM credentials WHERE account = $1`)
}

func (r *SQLCredentials) RefreshToken(ctx context.Context) (string, error) {
	return r.column(ctx, `SELECT refresh_token FROM credentials WHERE account = $1`)
}

// SetPair записывает оба токена одним UPSERT: пара атомарна на уровне строки
func (r *SQLCredentials) SetPair(ctx context.Context, accessToken, refreshToken string) error {
	query := `INSERT INTO credentials (account, access_token, refresh_token, updated_at)
				VALUES ($1, $2, $3, now())
				ON CONFLICT (account) DO UPDATE
				SET access_token = $2, refresh_token = $3, updated_at = now()
	`

	_, err := r.DB.ExecContext(ctx, query, r.account, accessToken, refreshToken)
	if err != nil {
		return util.LogError(r.logger, "ошибка сохранения токенов в БД", err)
	}
	return nil
}

func (r *SQLCredentials) Clear(ctx context.Context) error {
	query := `UPDATE credentials
				SET access_token = '', refresh_token = '', profile = '', updated_at = now()
				WHERE account = $1
	`

	if _, err := r.DB.ExecContext(ctx, query, r.account); err != nil {
		return util.LogError(r.logger, "ошибка удаления токенов из БД", err)
	}
	return nil
}

func (r *SQLCredentials) DeviceID(ctx context.Context) (string, error) {
	deviceID, err := r.column(ctx, `SELECT device_id FROM credentials WHERE account = $1`)
	if err != nil {
		return "", err
	}
	if deviceID != "" {
		return deviceID, nil
	}

	deviceID = uuid.New().String()
	query := `INSERT INTO credentials (account, device_id)
				VALUES ($1, $2)
				ON CONFLICT (account) DO UPDATE
				SET device_id = $2
				WHERE credentials.device_id = ''
	`

	if _, err := r.DB.ExecContext(ctx, query, r.account, deviceID); err != nil {
		return "", util.LogError(r.logger, "ошибка сохранения идентификатора устройства", err)
	}

	// перечитываем: параллельная запись могла победить
	return r.column(ctx, `SELECT device_id FROM credentials WHERE account = $1`)
}

func (r *SQLCredentials) Trusted(ctx context.Context) (bool, error) {
	var trusted bool
	err := r.DB.QueryRowContext(ctx, `SELECT trusted FROM credentials WHERE account = $1`, r.account).Scan(&trusted)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	} else if err != nil {
		return false, util.LogError(r.logger, "ошибка чтения флага доверия", err)
	}
	return trusted, nil
}

func (r *SQLCredentials) SetTrusted(ctx context.Context, trusted bool) error {
	query := `INSERT INTO credentials (account, trusted)
				VALUES ($1, $2)
				ON CONFLICT (account) DO UPDATE
				SET trusted = $2, updated_at = now()
	`

	if _, err := r.DB.ExecContext(ctx, query, r.account, trusted); err != nil {
		return util.LogError(r.logger, "ошибка сохранения флага доверия", err)
	}
	return nil
}

func (r *SQLCredentials) ProfileSnapshot(ctx context.Context) ([]byte, error) {
	profile, err := r.column(ctx, `SELECT profile FROM credentials WHERE account = $1`)
	if err != nil {
		return nil, err
	}
	if profile == "" {
		return nil, nil
	}
	return []byte(profile), nil
}

func (r *SQLCredentials) SetProfileSnapshot(ctx context.Context, snapshot []byte) error {
	query := `INSERT INTO credentials (account, profile)
				VALUES ($1, $2)
				ON CONFLICT (account) DO UPDATE
				SET profile = $2, updated_at = now()
	`

	if _, err := r.DB.ExecContext(ctx, query, r.account, string(snapshot)); err != nil {
		return util.LogError(r.logger, "ошибка сохранения снимка профиля", err)
	}
	return nil
}

func (r *SQLCredentials) column(ctx context.Context, query string) (string, error) {
	var value string
	err := r.DB.QueryRowContext(ctx, query, r.account).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	} else if err != nil {
		return "", util.LogError(r.logger, "ошибка чтения из БД", err)
	}
	return value, nil
}
