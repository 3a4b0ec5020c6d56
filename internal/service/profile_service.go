package service

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/sirupsen/logrus"

	"pethelp-client/internal/model"
	"pethelp-client/internal/model/requestresponse"
	"pethelp-client/internal/ports"
	"pethelp-client/internal/util"
)

type ProfileService struct {
	dispatcher  ports.Dispatcher
	credentials ports.CredentialStore
	logger      *logrus.Logger
}

func NewProfileService(
	dispatcher ports.Dispatcher,
	credentials ports.CredentialStore,
	logger *logrus.Logger,
) *ProfileService {
	return &ProfileService{
		dispatcher,
		credentials,
		logger,
	}
}

// Me запрашивает профиль текущего пользователя и обновляет сохраненный снимок
func (s *ProfileService) Me(ctx context.Context) (*model.Profile, error) {
	result, err := s.dispatcher.Send(ctx, &model.Request{
		Path:   "/profile/me",
		Method: http.MethodGet,
		Auth:   true,
	})
	if err != nil {
		return nil, err
	}

	var response requestresponse.ProfileResponse
	if err := json.Unmarshal(result.Raw, &response); err != nil {
		return nil, util.LogError(s.logger, "ошибка разбора профиля", err)
	}

	snapshot, err := json.Marshal(response.Response)
	if err == nil {
		if err := s.credentials.SetProfileSnapshot(ctx, snapshot); err != nil {
			s.logger.WithError(err).Warn("не удалось сохранить снимок профиля")
		}
	}

	return &response.Response, nil
}

// CachedProfile возвращает последний известный снимок профиля для
// предзаполнения UI до ответа сети. Снимок не авторитетен и может
// отставать от сервера; отсутствие снимка — это (nil, nil), не ошибка.
func (s *ProfileService) CachedProfile(ctx context.Context) (*model.Profile, error) {
	snapshot, err := s.credentials.ProfileSnapshot(ctx)
	if err != nil {
		return nil, util.LogError(s.logger, "ошибка чтения снимка профиля", err)
	}
	if len(snapshot) == 0 {
		return nil, nil
	}

	profile := &model.Profile{}
	if err := json.Unmarshal(snapshot, profile); err != nil {
		return nil, util.LogError(s.logger, "ошибка разбора снимка профиля", err)
	}
	return profile, nil
}
