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
	"pethelp-client/internal/util"
)

// PostService — доменные вызовы объявлений и сборов; пайплайн переносит их
// тела, не заглядывая внутрь
type PostService struct {
	dispatcher ports.Dispatcher
	logger     *logrus.Logger
}

func NewPostService(dispatcher ports.Dispatcher, logger *logrus.Logger) *PostService {
	return &PostService{dispatcher, logger}
}

// CreatePost публикует объявление о потерянном или найденном питомце
func (s *PostService) CreatePost(ctx context.Context, post requestresponse.CreatePostRequest) (string, error) {
	result, err := s.dispatcher.Send(ctx, &model.Request{
		Path:   "/posts",
		Method: http.MethodPost,
		Body:   post,
		Auth:   true,
	})
	if err != nil {
		return "", err
	}

	var created requestresponse.CreatePostResponse
	if err := json.Unmarshal(result.Raw, &created); err != nil {
		return "", util.LogError(s.logger, "ошибка разбора ответа на создание объявления", err)
	}
	return created.Response.UUID, nil
}

// ListDonations возвращает пожертвования по объявлению
func (s *PostService) ListDonations(ctx context.Context, postUUID string) ([]model.Donation, error) {
	result, err := s.dispatcher.Send(ctx, &model.Request{
		Path:   fmt.Sprintf("/posts/%s/donations", postUUID),
		Method: http.MethodGet,
		Auth:   true,
	})
	if err != nil {
		return nil, err
	}

	var donations requestresponse.DonationsResponse
	if err := json.Unmarshal(result.Raw, &donations); err != nil {
		return nil, util.LogError(s.logger, "ошибка разбора списка пожертвований", err)
	}
	return donations.Response.Donations, nil
}
