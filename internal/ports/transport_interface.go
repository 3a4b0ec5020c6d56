package ports

import (
	"context"

	"pethelp-client/internal/model"
)

// Dispatcher — единственная точка входа для обмена с API
type Dispatcher interface {
	Send(ctx context.Context, request *model.Request) (*model.Result, error)
}

// SessionRefresher выполняет обмен refresh токена на новую пару токенов
type SessionRefresher interface {
	Refresh(ctx context.Context) (*model.TokensPair, error)
}

// AuthenticationService выдает пайплайну его первую сессию
type AuthenticationService interface {
	Login(ctx context.Context, login, password string, trustDevice bool) (*model.TokensPair, error)
	Signup(ctx context.Context, login, password, name string) (*model.TokensPair, error)
	Logout(ctx context.Context) error
}
