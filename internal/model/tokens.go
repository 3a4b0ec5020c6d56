package model

// TokensPair содержит пару access и refresh токенов.
// Access токен без парного refresh токена никогда не сохраняется:
// хранилище записывает оба токена вместе или не записывает ничего.
type TokensPair struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`

	// ExpiresIn — необязательная подсказка сервера о времени жизни
	// access токена в секундах
	ExpiresIn int64 `json:"expiresIn,omitempty"`
}
