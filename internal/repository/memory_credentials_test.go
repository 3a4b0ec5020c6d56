package repository_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pethelp-client/internal/repository"
)

// 1. SetPair и чтение возвращают ровно записанные значения
func TestMemoryCredentials_RoundTrip(t *testing.T) {
	store := repository.NewMemoryCredentials()
	ctx := context.Background()

	require.NoError(t, store.SetPair(ctx, "acc", "ref"))

	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)

	assert.Equal(t, "acc", access)
	assert.Equal(t, "ref", refresh)
}

// 2. Пустое хранилище отвечает пустыми значениями, а не ошибкой
func TestMemoryCredentials_EmptyReads(t *testing.T) {
	store := repository.NewMemoryCredentials()
	ctx := context.Background()

	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)

	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

// 3. Двойной Clear эквивалентен одинарному
func TestMemoryCredentials_ClearIdempotent(t *testing.T) {
	store := repository.NewMemoryCredentials()
	ctx := context.Background()

	require.NoError(t, store.SetPair(ctx, "acc", "ref"))
	require.NoError(t, store.Clear(ctx))
	require.NoError(t, store.Clear(ctx))

	access, err := store.AccessToken(ctx)
	require.NoError(t, err)
	refresh, err := store.RefreshToken(ctx)
	require.NoError(t, err)

	assert.Empty(t, access)
	assert.Empty(t, refresh)
}

// 4. Идентификатор устройства создается лениво и никогда не меняется
func TestMemoryCredentials_DeviceIDStable(t *testing.T) {
	store := repository.NewMemoryCredentials()
	ctx := context.Background()

	first, err := store.DeviceID(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	require.NoError(t, store.Clear(ctx))

	second, err := store.DeviceID(ctx)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// 5. Флаг доверия независим от сессии
func TestMemoryCredentials_TrustedSurvivesClear(t *testing.T) {
	store := repository.NewMemoryCredentials()
	ctx := context.Background()

	require.NoError(t, store.SetTrusted(ctx, true))
	require.NoError(t, store.SetPair(ctx, "acc", "ref"))
	require.NoError(t, store.Clear(ctx))

	trusted, err := store.Trusted(ctx)
	require.NoError(t, err)
	assert.True(t, trusted)
}

// 6. Clear удаляет снимок профиля
func TestMemoryCredentials_ClearRemovesSnapshot(t *testing.T) {
	store := repository.NewMemoryCredentials()
	ctx := context.Background()

	require.NoError(t, store.SetProfileSnapshot(ctx, []byte(`{"login":"user1"}`)))
	require.NoError(t, store.Clear(ctx))

	snapshot, err := store.ProfileSnapshot(ctx)
	require.NoError(t, err)
	assert.Nil(t, snapshot)
}

// 7. Экземпляры изолированы: мульти-аккаунтные сценарии не делят состояние
func TestMemoryCredentials_Isolated(t *testing.T) {
	first := repository.NewMemoryCredentials()
	second := repository.NewMemoryCredentials()
	ctx := context.Background()

	require.NoError(t, first.SetPair(ctx, "acc1", "ref1"))

	access, err := second.AccessToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, access)
}
