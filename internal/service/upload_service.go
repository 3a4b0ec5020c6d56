package service

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"

	"pethelp-client/config"
	"pethelp-client/internal/model/requestresponse"
	"pethelp-client/internal/ports"
	"pethelp-client/internal/util"
)

// UploadService загружает файлы через multipart/form-data. Это отдельный
// путь мимо диспетчера: bearer токен прикладывается, если он есть, но
// обновления сессии по 401 здесь нет — истекшая сессия означает ошибку
// загрузки, а не повтор многомегабайтного тела.
type UploadService struct {
	credentials ports.CredentialStore
	client      *http.Client
	logger      *logrus.Logger
	uploadURL   string
}

func NewUploadService(
	credentials ports.CredentialStore,
	client *http.Client,
	cfg *config.APIConfig,
	logger *logrus.Logger,
) *UploadService {
	return &UploadService{
		credentials: credentials,
		client:      client,
		logger:      logger,
		uploadURL:   strings.TrimRight(cfg.BaseURL, "/") + "/uploads",
	}
}

// UploadPhoto загружает фото вложения и возвращает его URL
func (s *UploadService) UploadPhoto(ctx context.Context, postUUID, filename string, content io.Reader) (string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	if postUUID != "" {
		if err := writer.WriteField("post_uuid", postUUID); err != nil {
			return "", util.LogError(s.logger, "ошибка формирования multipart тела", err)
		}
	}
	part, err := writer.CreateFormFile("file", filepath.Base(filename))
	if err != nil {
		return "", util.LogError(s.logger, "ошибка формирования multipart тела", err)
	}
	if _, err := io.Copy(part, content); err != nil {
		return "", util.LogError(s.logger, "ошибка чтения загружаемого файла", err)
	}
	if err := writer.Close(); err != nil {
		return "", util.LogError(s.logger, "ошибка завершения multipart тела", err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, s.uploadURL, &body)
	if err != nil {
		return "", util.LogError(s.logger, "ошибка создания запроса загрузки", err)
	}
	request.Header.Set("Content-Type", writer.FormDataContentType())

	accessToken, err := s.credentials.AccessToken(ctx)
	if err != nil {
		return "", util.LogError(s.logger, "ошибка чтения access токена", err)
	}
	if accessToken != "" {
		request.Header.Set("Authorization", "Bearer "+accessToken)
	}

	response, err := s.client.Do(request)
	if err != nil {
		return "", util.LogError(s.logger, "ошибка выполнения загрузки", err)
	}
	defer response.Body.Close()

	data, raw, err := util.DecodeBody(response)
	if err != nil {
		return "", util.LogError(s.logger, "ошибка чтения ответа загрузки", err)
	}

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", failureFromPayload(response.StatusCode, data)
	}

	var uploaded requestresponse.UploadResponse
	if err := json.Unmarshal(raw, &uploaded); err != nil {
		return "", util.LogError(s.logger, "ошибка разбора ответа загрузки", err)
	}
	return uploaded.Response.URL, nil
}
