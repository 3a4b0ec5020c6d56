package service

import (
	"context"
	"net/http"

	"github.com/sirupsen/logrus"

	"pethelp-client/internal/model"
	"pethelp-client/internal/model/requestresponse"
	"pethelp-client/internal/ports"
	"pethelp-client/internal/util"
)

// AuthenticationService получает первую сессию пайплайна: вход, регистрация,
// выход. Сами вызовы идут через диспетчер с SkipRefresh — 401 от auth
// эндпоинтов означает неверные данные, а не истекшую сессию.
type AuthenticationService struct {
	dispatcher  ports.Dispatcher
	credentials ports.CredentialStore
	logger      *logrus.Logger
}

func NewAuthenticationService(
	dispatcher ports.Dispatcher,
	credentials ports.CredentialStore,
	logger *logrus.Logger,
) *AuthenticationService {
	return &AuthenticationService{
		dispatcher,
		credentials,
		logger,
	}
}

// Login обменивает логин и пароль на пару токенов и сохраняет ее.
// Идентификатор устройства уходит на сервер вместе с запросом: так сервер
// может связать доверие к устройству с конкретным входом. Сам флаг доверия —
// только подсказка UI; проверку учётных данных он не обходит.
//
// Параметры:
//   - trustDevice: запомнить устройство; вход без этого флага снимает
//     прежнее доверие (смена аккаунта не наследует чужое)
func (s *AuthenticationService) Login(ctx context.Context, login, password string, trustDevice bool) (*model.TokensPair, error) {
	deviceID, err := s.credentials.DeviceID(ctx)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка получения идентификатора устройства", err)
	}

	result, err := s.dispatcher.Send(ctx, &model.Request{
		Path:   "/auth/login",
		Method: http.MethodPost,
		Body: requestresponse.LoginRequest{
			Login:       login,
			Password:    password,
			DeviceID:    deviceID,
			TrustDevice: trustDevice,
		},
		SkipRefresh: true,
	})
	if err != nil {
		return nil, err
	}

	return s.storeSession(ctx, result, trustDevice)
}

// Signup регистрирует пользователя и сохраняет выданную пару токенов
func (s *AuthenticationService) Signup(ctx context.Context, login, password, name string) (*model.TokensPair, error) {
	deviceID, err := s.credentials.DeviceID(ctx)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка получения идентификатора устройства", err)
	}

	result, err := s.dispatcher.Send(ctx, &model.Request{
		Path:   "/auth/signup",
		Method: http.MethodPost,
		Body: requestresponse.SignupRequest{
			Login:    login,
			Password: password,
			Name:     name,
			DeviceID: deviceID,
		},
		SkipRefresh: true,
	})
	if err != nil {
		return nil, err
	}

	return s.storeSession(ctx, result, false)
}

// Logout завершает сессию. Хранилище очищается даже если сервер не
// подтвердил выход: локальная сессия в любом случае выбрасывается.
// Флаг доверия к устройству переживает выход — его снимает только
// RevokeTrust или вход без опции «запомнить устройство».
func (s *AuthenticationService) Logout(ctx context.Context) error {
	_, err := s.dispatcher.Send(ctx, &model.Request{
		Path:        "/auth/logout",
		Method:      http.MethodPost,
		Auth:        true,
		SkipRefresh: true,
	})
	if err != nil {
		s.logger.WithError(err).Warn("сервер не подтвердил выход")
	}

	if err := s.credentials.Clear(ctx); err != nil {
		return util.LogError(s.logger, "ошибка очистки хранилища", err)
	}
	return nil
}

// RevokeTrust явно снимает доверие с устройства
func (s *AuthenticationService) RevokeTrust(ctx context.Context) error {
	if err := s.credentials.SetTrusted(ctx, false); err != nil {
		return util.LogError(s.logger, "ошибка снятия флага доверия", err)
	}
	return nil
}

func (s *AuthenticationService) storeSession(ctx context.Context, result *model.Result, trustDevice bool) (*model.TokensPair, error) {
	pair, err := NormalizeTokenResponse(result.Data)
	if err != nil {
		return nil, err
	}

	if err := s.credentials.SetPair(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, util.LogError(s.logger, "ошибка сохранения пары токенов", err)
	}
	if err := s.credentials.SetTrusted(ctx, trustDevice); err != nil {
		return nil, util.LogError(s.logger, "ошибка сохранения флага доверия", err)
	}

	return pair, nil
}
