package ports

import "context"

// CredentialStore : долговременное хранилище состояния клиента.
// Отсутствующее значение — это пустая строка и nil, а не ошибка; ошибки
// возвращаются только при отказе самого бэкенда (Redis, БД).
//
// SetPair атомарна с точки зрения читателя: access токен никогда не
// наблюдается в паре с устаревшим refresh токеном. Clear удаляет сессию
// и снимок профиля, но не трогает идентификатор устройства и флаг доверия —
// они живут независимо от сессии.
type CredentialStore interface {
	AccessToken(ctx context.Context) (string, error)
	RefreshToken(ctx context.Context) (string, error)
	SetPair(ctx context.Context, accessToken, refreshToken string) error
	Clear(ctx context.Context) error

	// DeviceID лениво создает идентификатор устройства при первом обращении
	// и больше никогда его не перегенерирует
	DeviceID(ctx context.Context) (string, error)

	// Trusted — флаг «устройство доверено»: только подсказка UI, какой экран
	// показывать при холодном старте; доступ он сам по себе не дает
	Trusted(ctx context.Context) (bool, error)
	SetTrusted(ctx context.Context, trusted bool) error

	// ProfileSnapshot — последний известный снимок профиля для предзаполнения
	// UI до ответа сети; никогда не считается авторитетным
	ProfileSnapshot(ctx context.Context) ([]byte, error)
	SetProfileSnapshot(ctx context.Context, snapshot []byte) error
}
