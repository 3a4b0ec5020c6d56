package service

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/singleflight"

	"pethelp-client/config"
	"pethelp-client/internal/model"
	"pethelp-client/internal/model/requestresponse"
	"pethelp-client/internal/ports"
	"pethelp-client/internal/util"
)

// SessionService выполняет обмен refresh токена на новую пару токенов
// и владеет переходом «сессия пригодна» → «сессию нужно выбросить».
//
// Параллельные вызовы Refresh по умолчанию НЕ сериализуются: два запроса,
// одновременно получившие 401, могут запустить два обмена. Для серверов
// с одноразовой ротацией refresh токенов второй обмен провалится и снесет
// сессию первого — включите serialize_refresh, чтобы параллельные вызовы
// делили один обмен.
type SessionService struct {
	credentials ports.CredentialStore
	client      *http.Client
	logger      *logrus.Logger
	refreshURL  string
	group       *singleflight.Group
}

func NewSessionService(
	credentials ports.CredentialStore,
	client *http.Client,
	cfg *config.APIConfig,
	logger *logrus.Logger,
) *SessionService {
	service := &SessionService{
		credentials: credentials,
		client:      client,
		logger:      logger,
		refreshURL:  strings.TrimRight(cfg.BaseURL, "/") + cfg.RefreshPath,
	}
	if cfg.SerializeRefresh {
		service.group = &singleflight.Group{}
	}
	return service
}

// Refresh обновляет пару токенов по сохраненному refresh токену.
//
// Возвращает:
//   - новую пару токенов, уже записанную в хранилище
//   - типизированную ошибку, если сессии нет, обмен отклонен сервером
//     или тело ответа не содержит обоих токенов
func (s *SessionService) Refresh(ctx context.Context) (*model.TokensPair, error) {
	if s.group == nil {
		return s.refresh(ctx)
	}

	value, err, _ := s.group.Do("refresh", func() (any, error) {
		return s.refresh(ctx)
	})
	if err != nil {
		return nil, err
	}
	return value.(*model.TokensPair), nil
}

func (s *SessionService) refresh(ctx context.Context) (*model.TokensPair, error) {
	refreshToken, err := s.credentials.RefreshToken(ctx)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка чтения refresh токена", err)
	}
	if refreshToken == "" {
		return nil, &model.APIError{Message: "нет сессии для обновления", Status: http.StatusUnauthorized}
	}

	body, err := json.Marshal(requestresponse.RefreshRequest{RefreshToken: refreshToken})
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка сериализации запроса обновления", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.refreshURL, bytes.NewReader(body))
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка создания запроса обновления", err)
	}
	request.Header.Set("Content-Type", "application/json")
	// токен уходит и в заголовке, и в теле: соглашения серверов различаются
	request.Header.Set("Authorization", "Bearer "+refreshToken)

	response, err := s.client.Do(request)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка обращения к серверу обновления", err)
	}
	defer response.Body.Close()

	data, _, err := util.DecodeBody(response)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка чтения ответа обновления", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		// refresh токен считается сожженным, сессия выбрасывается целиком
		if err := s.credentials.Clear(ctx); err != nil {
			s.logger.WithError(err).Error("не удалось очистить хранилище после отказа в обновлении")
		}
		s.logger.WithField("status", response.StatusCode).Warn("сервер отклонил обновление сессии")
		return nil, &model.APIError{Message: "не удалось обновить сессию", Status: response.StatusCode}
	}

	pair, err := NormalizeTokenResponse(data)
	if err != nil {
		// хранилище не трогаем: старая пара может быть еще пригодна
		return nil, err
	}

	if err := s.credentials.SetPair(ctx, pair.AccessToken, pair.RefreshToken); err != nil {
		return nil, util.LogError(s.logger, "ошибка сохранения новой пары токенов", err)
	}

	return pair, nil
}
