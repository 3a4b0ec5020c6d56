package repository

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

// MemoryCredentials хранит состояние клиента в памяти процесса.
// Каждый экземпляр изолирован, поэтому тесты и мульти-аккаунтные сценарии
// получают независимые сессии без глобального состояния.
type MemoryCredentials struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryCredentials() *MemoryCredentials {
	return &MemoryCredentials{
		values: make(map[string]string),
	}
}

func (r *MemoryCredentials) AccessToken(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[keyAccessToken], nil
}

func (r *MemoryCredentials) RefreshToken(ctx context.Context) (string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[keyRefreshToken], nil
}

func (r *MemoryCredentials) SetPair(ctx context.Context, accessToken, refreshToken string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[keyAccessToken] = accessToken
	r.values[keyRefreshToken] = refreshToken
	return nil
}

func (r *MemoryCredentials) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.values, keyAccessToken)
	delete(r.values, keyRefreshToken)
	delete(r.values, keyProfile)
	return nil
}

func (r *MemoryCredentials) DeviceID(ctx context.Context) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.values[keyDeviceID] == "" {
		r.values[keyDeviceID] = uuid.New().String()
	}
	return r.values[keyDeviceID], nil
}

func (r *MemoryCredentials) Trusted(ctx context.Context) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.values[keyTrusted] == "true", nil
}

func (r *MemoryCredentials) SetTrusted(ctx context.Context, trusted bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if trusted {
		r.values[keyTrusted] = "true"
	} else {
		delete(r.values, keyTrusted)
	}
	return nil
}

func (r *MemoryCredentials) ProfileSnapshot(ctx context.Context) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.values[keyProfile] == "" {
		return nil, nil
	}
	return []byte(r.values[keyProfile]), nil
}

func (r *MemoryCredentials) SetProfileSnapshot(ctx context.Context, snapshot []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.values[keyProfile] = string(snapshot)
	return nil
}
