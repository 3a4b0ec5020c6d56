package security

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TokenUsable сообщает, имеет ли смысл прикладывать access токен к запросу
// без предварительного обновления сессии. Подпись здесь не проверяется —
// это забота сервера; клиент смотрит только на заявленный срок действия.
// Токены, которые не являются JWT или не несут exp, считаются пригодными:
// их срок известен только серверу.
func TokenUsable(accessToken string) bool {
	if accessToken == "" {
		return false
	}

	claims := jwt.MapClaims{}
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(accessToken, claims); err != nil {
		return true
	}

	expireAt, err := claims.GetExpirationTime()
	if err != nil || expireAt == nil {
		return true
	}

	return expireAt.After(time.Now())
}
