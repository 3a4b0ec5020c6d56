package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/sirupsen/logrus"

	"pethelp-client/config"
	"pethelp-client/internal/model"
	"pethelp-client/internal/ports"
	"pethelp-client/internal/util"
)

// retryState — явные состояния политики «обновить и повторить ровно один раз»
type retryState int

const (
	stateInitial retryState = iota
	stateAwaitingRefresh
	stateReplaying
	stateDone
)

// TransportService превращает вызов приложения в HTTP обмен: собирает запрос,
// прикладывает access токен, распознает 401, запускает обмен токенов,
// один раз повторяет исходный запрос и нормализует ошибки.
type TransportService struct {
	credentials    ports.CredentialStore
	refresher      ports.SessionRefresher
	client         *http.Client
	logger         *logrus.Logger
	baseURL        string
	authPathPrefix string
}

func NewTransportService(
	credentials ports.CredentialStore,
	refresher ports.SessionRefresher,
	client *http.Client,
	cfg *config.APIConfig,
	logger *logrus.Logger,
) *TransportService {
	authPathPrefix := cfg.AuthPathPrefix
	if authPathPrefix == "" {
		authPathPrefix = "/auth/"
	}

	return &TransportService{
		credentials:    credentials,
		refresher:      refresher,
		client:         client,
		logger:         logger,
		baseURL:        strings.TrimRight(cfg.BaseURL, "/"),
		authPathPrefix: authPathPrefix,
	}
}

// Send выполняет один логический вызов API.
//
// Если первый ответ — 401, запрос шел с токеном, обновление не запрещено
// флагом SkipRefresh, путь не является auth-эндпоинтом и refresh токен есть
// в хранилище, то выполняется ровно один обмен токенов и ровно один повтор
// запроса с новым токеном. Ответ повтора терминален при любом статусе.
// Повтор никогда не уходит раньше, чем новая пара записана в хранилище.
//
// Возвращает:
//   - model.Result с декодированным телом для 2xx
//   - *model.APIError со статусом и ошибками полей для любого не-2xx
//   - обычную ошибку для сетевых отказов (таймаут — это сетевой отказ,
//     а не повод обновлять сессию)
func (s *TransportService) Send(ctx context.Context, request *model.Request) (*model.Result, error) {
	state := stateInitial
	var response *http.Response

	for state != stateDone {
		switch state {
		case stateInitial:
			first, err := s.attempt(ctx, request)
			if err != nil {
				return nil, err
			}
			if s.shouldRefresh(ctx, request, first.StatusCode) {
				io.Copy(io.Discard, first.Body)
				first.Body.Close()
				state = stateAwaitingRefresh
				continue
			}
			response = first
			state = stateDone

		case stateAwaitingRefresh:
			if _, err := s.refresher.Refresh(ctx); err != nil {
				return nil, err
			}
			state = stateReplaying

		case stateReplaying:
			replay, err := s.attempt(ctx, request)
			if err != nil {
				return nil, err
			}
			response = replay
			state = stateDone
		}
	}

	return s.finish(response)
}

func (s *TransportService) attempt(ctx context.Context, request *model.Request) (*http.Response, error) {
	var body io.Reader
	if request.Body != nil {
		raw, err := json.Marshal(request.Body)
		if err != nil {
			return nil, util.LogError(s.logger, "ошибка сериализации тела запроса", err)
		}
		body = bytes.NewReader(raw)
	}

	httpRequest, err := http.NewRequestWithContext(ctx, request.Method, s.baseURL+request.Path, body)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка создания запроса", err)
	}

	httpRequest.Header.Set("Content-Type", "application/json")
	for name, value := range request.Headers {
		httpRequest.Header.Set(name, value)
	}

	if request.Auth {
		accessToken, err := s.credentials.AccessToken(ctx)
		if err != nil {
			return nil, util.LogError(s.logger, "ошибка чтения access токена", err)
		}
		if accessToken != "" {
			httpRequest.Header.Set("Authorization", "Bearer "+accessToken)
		}
	}

	response, err := s.client.Do(httpRequest)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка выполнения запроса", err)
	}
	return response, nil
}

// shouldRefresh решает, имеет ли смысл обновлять сессию после первого ответа.
// Auth-эндпоинты исключены, чтобы 401 от самих login/refresh не уводил
// в рекурсию; без refresh токена обмен не может завершиться успехом,
// поэтому исходный 401 поднимается сразу.
func (s *TransportService) shouldRefresh(ctx context.Context, request *model.Request, status int) bool {
	if status != http.StatusUnauthorized || !request.Auth || request.SkipRefresh {
		return false
	}
	if strings.HasPrefix(request.Path, s.authPathPrefix) {
		return false
	}

	refreshToken, err := s.credentials.RefreshToken(ctx)
	if err != nil {
		s.logger.WithError(err).Error("ошибка чтения refresh токена")
		return false
	}
	return refreshToken != ""
}

func (s *TransportService) finish(response *http.Response) (*model.Result, error) {
	defer response.Body.Close()

	data, raw, err := util.DecodeBody(response)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка чтения ответа", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, failureFromPayload(response.StatusCode, data)
	}

	return &model.Result{
		Status: response.StatusCode,
		Data:   data,
		Raw:    raw,
	}, nil
}

// failureFromPayload собирает типизированную ошибку из тела не-2xx ответа.
// Из структурированных тел берутся сообщение и ошибки валидации по полям;
// неструктурированные тела попадают в сообщение как есть.
func failureFromPayload(status int, data any) *model.APIError {
	failure := &model.APIError{
		Message: http.StatusText(status),
		Status:  status,
	}

	switch payload := data.(type) {
	case map[string]any:
		if message, ok := payload["error"].(string); ok && message != "" {
			failure.Message = message
		} else if message, ok := payload["message"].(string); ok && message != "" {
			failure.Message = message
		}
		if fields, ok := payload["errors"].(map[string]any); ok {
			failure.Fields = make(map[string]string, len(fields))
			for name, value := range fields {
				if text, ok := value.(string); ok {
					failure.Fields[name] = text
				}
			}
		}
	case string:
		if trimmed := strings.TrimSpace(payload); trimmed != "" {
			failure.Message = trimmed
		}
	}

	return failure
}
