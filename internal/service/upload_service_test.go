package service_test

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pethelp-client/config"
	"pethelp-client/internal/model"
	"pethelp-client/internal/repository"
	"pethelp-client/internal/service"
)

func newUploadService(t *testing.T, handler http.Handler) (*service.UploadService, *repository.MemoryCredentials) {
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	store := repository.NewMemoryCredentials()
	cfg := &config.APIConfig{BaseURL: server.URL}
	return service.NewUploadService(store, server.Client(), cfg, quietLogger()), store
}

// 1. Multipart тело доходит целиком, bearer токен приложен
func TestUploadPhoto_Success(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/uploads", func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer acc", r.Header.Get("Authorization"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "p1", r.FormValue("post_uuid"))

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		content, err := io.ReadAll(file)
		require.NoError(t, err)
		assert.Equal(t, "cat.jpg", header.Filename)
		assert.Equal(t, "фото кота", string(content))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"response":{"url":"https://cdn.example/cat.jpg"}}`))
	})

	svc, store := newUploadService(t, router)
	ctx := context.Background()
	require.NoError(t, store.SetPair(ctx, "acc", "ref"))

	url, err := svc.UploadPhoto(ctx, "p1", "/tmp/cat.jpg", strings.NewReader("фото кота"))

	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example/cat.jpg", url)
}

// 2. Без токена загрузка уходит анонимно, заголовок не прикладывается
func TestUploadPhoto_NoToken(t *testing.T) {
	router := chi.NewRouter()
	router.Post("/uploads", func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	})

	svc, _ := newUploadService(t, router)

	_, err := svc.UploadPhoto(context.Background(), "p1", "cat.jpg", strings.NewReader("x"))

	require.Error(t, err)
}

// 3. Истекшая сессия — это ошибка загрузки, обновления и повтора нет
func TestUploadPhoto_ExpiredSessionFails(t *testing.T) {
	var uploadCalls, refreshCalls int
	router := chi.NewRouter()
	router.Post("/uploads", func(w http.ResponseWriter, r *http.Request) {
		uploadCalls++
		w.WriteHeader(http.StatusUnauthorized)
	})
	router.Post("/auth/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
	})

	svc, store := newUploadService(t, router)
	ctx := context.Background()
	require.NoError(t, store.SetPair(ctx, "просроченный", "ref"))

	_, err := svc.UploadPhoto(ctx, "p1", "cat.jpg", strings.NewReader("x"))

	require.Error(t, err)
	var apiErr *model.APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusUnauthorized, apiErr.Status)
	assert.Equal(t, 1, uploadCalls)
	assert.Zero(t, refreshCalls)

	// хранилище не тронуто: загрузка не владеет жизненным циклом сессии
	refresh, _ := store.RefreshToken(ctx)
	assert.Equal(t, "ref", refresh)
}
