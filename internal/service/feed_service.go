package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/sirupsen/logrus"

	"pethelp-client/internal/model"
	"pethelp-client/internal/model/requestresponse"
	"pethelp-client/internal/ports"
	"pethelp-client/internal/security"
	"pethelp-client/internal/util"
)

// FeedService читает ленты, осмысленные и для анонимного посетителя:
// объявления и слой карты. Авторизованный вариант может вернуть
// персонализированные поля; при 401 лента деградирует до публичного
// варианта вместо ошибки. Любая другая ошибка (сеть, 5xx) поднимается
// наверх: деградация по любому поводу маскировала бы реальные сбои
// под «нет результатов».
type FeedService struct {
	dispatcher  ports.Dispatcher
	credentials ports.CredentialStore
	logger      *logrus.Logger
}

func NewFeedService(
	dispatcher ports.Dispatcher,
	credentials ports.CredentialStore,
	logger *logrus.Logger,
) *FeedService {
	return &FeedService{
		dispatcher,
		credentials,
		logger,
	}
}

// FetchFeed возвращает страницу ленты объявлений
func (s *FeedService) FetchFeed(ctx context.Context, page int) ([]model.Post, error) {
	result, err := s.fetchWithFallback(ctx,
		fmt.Sprintf("/posts?page=%d", page),
		fmt.Sprintf("/public/posts?page=%d", page),
	)
	if err != nil {
		return nil, err
	}

	var feed requestresponse.FeedResponse
	if err := json.Unmarshal(result.Raw, &feed); err != nil {
		return nil, util.LogError(s.logger, "ошибка разбора ленты", err)
	}
	return feed.Response.Posts, nil
}

// FetchMapPoints возвращает точки для слоя карты
func (s *FeedService) FetchMapPoints(ctx context.Context) ([]model.MapPoint, error) {
	result, err := s.fetchWithFallback(ctx, "/map/points", "/public/map/points")
	if err != nil {
		return nil, err
	}

	var points requestresponse.MapPointsResponse
	if err := json.Unmarshal(result.Raw, &points); err != nil {
		return nil, util.LogError(s.logger, "ошибка разбора точек карты", err)
	}
	return points.Response.Points, nil
}

// fetchWithFallback реализует деградацию чтения.
// Пригодный access токен → авторизованный вариант с SkipRefresh: рендер
// списка хочет быстрый ответ, а не цикл обновления сессии на критическом
// пути. 401 → публичный вариант. Нет токена → сразу публичный вариант.
func (s *FeedService) fetchWithFallback(ctx context.Context, authPath, publicPath string) (*model.Result, error) {
	accessToken, err := s.credentials.AccessToken(ctx)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка чтения access токена", err)
	}

	if security.TokenUsable(accessToken) {
		result, err := s.dispatcher.Send(ctx, &model.Request{
			Path:        authPath,
			Method:      http.MethodGet,
			Auth:        true,
			SkipRefresh: true,
		})
		if err == nil {
			return result, nil
		}
		if !model.IsUnauthorized(err) {
			return nil, err
		}
		s.logger.WithField("path", authPath).Info("сессия не принята, переход к публичному варианту")
	}

	return s.dispatcher.Send(ctx, &model.Request{
		Path:   publicPath,
		Method: http.MethodGet,
	})
}
