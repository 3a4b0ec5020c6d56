package service

import (
	"pethelp-client/internal/model"
)

// NormalizeTokenResponse приводит тело обмена токенов к единому виду.
// Сервер и клиент исторически расходятся в написании полей, поэтому
// принимаются оба варианта. Приоритет фиксирован: snake_case перед camelCase
// (access_token > accessToken, refresh_token > refreshToken,
// expires_in > expiresIn). Обертка {"response": {...}} разворачивается.
//
// Если отсутствует любой из двух токенов, возвращается типизированная ошибка
// «некорректный ответ» — вызывающий обязан оставить хранилище нетронутым.
func NormalizeTokenResponse(data any) (*model.TokensPair, error) {
	payload, ok := data.(map[string]any)
	if !ok {
		return nil, &model.APIError{Message: "некорректный ответ обмена токенов"}
	}
	if inner, ok := payload["response"].(map[string]any); ok {
		payload = inner
	}

	accessToken := stringField(payload, "access_token", "accessToken")
	refreshToken := stringField(payload, "refresh_token", "refreshToken")
	if accessToken == "" || refreshToken == "" {
		return nil, &model.APIError{Message: "некорректный ответ обмена токенов"}
	}

	pair := &model.TokensPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}
	if expires := numberField(payload, "expires_in", "expiresIn"); expires > 0 {
		pair.ExpiresIn = int64(expires)
	}

	return pair, nil
}

func stringField(payload map[string]any, names ...string) string {
	for _, name := range names {
		if value, ok := payload[name].(string); ok && value != "" {
			return value
		}
	}
	return ""
}

func numberField(payload map[string]any, names ...string) float64 {
	for _, name := range names {
		if value, ok := payload[name].(float64); ok {
			return value
		}
	}
	return 0
}
