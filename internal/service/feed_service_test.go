package service_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pethelp-client/internal/model"
	"pethelp-client/internal/repository"
	"pethelp-client/internal/service"
)

// ===== MOCKS =====

type MockDispatcher struct {
	mock.Mock
}

func (m *MockDispatcher) Send(ctx context.Context, request *model.Request) (*model.Result, error) {
	args := m.Called(ctx, request)
	if result, ok := args.Get(0).(*model.Result); ok {
		return result, args.Error(1)
	}
	return nil, args.Error(1)
}

// ===== HELPERS =====

var feedFixture = []byte(`{"response":{"posts":[{"uuid":"p1","kind":"lost","title":"Пропал кот"}],"page":0}}`)

func feedResult() *model.Result {
	return &model.Result{Status: http.StatusOK, Raw: feedFixture}
}

func pathMatcher(path string) any {
	return mock.MatchedBy(func(request *model.Request) bool {
		return request.Path == path
	})
}

func expiredJWT(t *testing.T) string {
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"exp": time.Now().Add(-time.Hour).Unix(),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)
	return token
}

// ===== TESTS =====

// 1. Без токена лента читается сразу из публичного варианта
func TestFetchFeed_NoToken(t *testing.T) {
	dispatcher := new(MockDispatcher)
	store := repository.NewMemoryCredentials()
	svc := service.NewFeedService(dispatcher, store, quietLogger())

	dispatcher.On("Send", mock.Anything, pathMatcher("/public/posts?page=0")).
		Return(feedResult(), nil)

	posts, err := svc.FetchFeed(context.Background(), 0)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "Пропал кот", posts[0].Title)
	dispatcher.AssertExpectations(t)
}

// 2. Пригодный токен: авторизованный вариант с SkipRefresh, без обращения к публичному
func TestFetchFeed_Authenticated(t *testing.T) {
	dispatcher := new(MockDispatcher)
	store := repository.NewMemoryCredentials()
	svc := service.NewFeedService(dispatcher, store, quietLogger())
	ctx := context.Background()
	require.NoError(t, store.SetPair(ctx, "acc", "ref"))

	dispatcher.On("Send", mock.Anything, mock.MatchedBy(func(request *model.Request) bool {
		return request.Path == "/posts?page=0" && request.Auth && request.SkipRefresh
	})).Return(feedResult(), nil)

	posts, err := svc.FetchFeed(ctx, 0)

	require.NoError(t, err)
	assert.Len(t, posts, 1)
	dispatcher.AssertExpectations(t)
	dispatcher.AssertNumberOfCalls(t, "Send", 1)
}

// 3. 401 на авторизованном варианте деградирует до публичного с теми же данными
func TestFetchFeed_DegradesOn401(t *testing.T) {
	dispatcher := new(MockDispatcher)
	store := repository.NewMemoryCredentials()
	svc := service.NewFeedService(dispatcher, store, quietLogger())
	ctx := context.Background()
	require.NoError(t, store.SetPair(ctx, "просроченный", "ref"))

	dispatcher.On("Send", mock.Anything, pathMatcher("/posts?page=0")).
		Return(nil, &model.APIError{Message: "не авторизован", Status: http.StatusUnauthorized})
	dispatcher.On("Send", mock.Anything, pathMatcher("/public/posts?page=0")).
		Return(feedResult(), nil)

	posts, err := svc.FetchFeed(ctx, 0)

	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, "p1", posts[0].UUID)
	dispatcher.AssertExpectations(t)
}

// 4. Любая другая ошибка не маскируется под пустую ленту
func TestFetchFeed_ServerErrorSurfaces(t *testing.T) {
	dispatcher := new(MockDispatcher)
	store := repository.NewMemoryCredentials()
	svc := service.NewFeedService(dispatcher, store, quietLogger())
	ctx := context.Background()
	require.NoError(t, store.SetPair(ctx, "acc", "ref"))

	dispatcher.On("Send", mock.Anything, pathMatcher("/posts?page=0")).
		Return(nil, &model.APIError{Message: "внутренняя ошибка сервера", Status: http.StatusInternalServerError})

	_, err := svc.FetchFeed(ctx, 0)

	require.Error(t, err)
	dispatcher.AssertNumberOfCalls(t, "Send", 1)
}

// 5. Заведомо истекший JWT не тратит запрос на авторизованный вариант
func TestFetchFeed_ExpiredTokenGoesPublic(t *testing.T) {
	dispatcher := new(MockDispatcher)
	store := repository.NewMemoryCredentials()
	svc := service.NewFeedService(dispatcher, store, quietLogger())
	ctx := context.Background()
	require.NoError(t, store.SetPair(ctx, expiredJWT(t), "ref"))

	dispatcher.On("Send", mock.Anything, pathMatcher("/public/posts?page=0")).
		Return(feedResult(), nil)

	_, err := svc.FetchFeed(ctx, 0)

	require.NoError(t, err)
	dispatcher.AssertNumberOfCalls(t, "Send", 1)
}

// 6. Слой карты деградирует по той же схеме
func TestFetchMapPoints_DegradesOn401(t *testing.T) {
	dispatcher := new(MockDispatcher)
	store := repository.NewMemoryCredentials()
	svc := service.NewFeedService(dispatcher, store, quietLogger())
	ctx := context.Background()
	require.NoError(t, store.SetPair(ctx, "acc", "ref"))

	points := []byte(`{"response":{"points":[{"uuid":"m1","category":"vet","name":"Клиника"}]}}`)
	dispatcher.On("Send", mock.Anything, pathMatcher("/map/points")).
		Return(nil, &model.APIError{Message: "не авторизован", Status: http.StatusUnauthorized})
	dispatcher.On("Send", mock.Anything, pathMatcher("/public/map/points")).
		Return(&model.Result{Status: http.StatusOK, Raw: points}, nil)

	result, err := svc.FetchMapPoints(ctx)

	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Клиника", result[0].Name)
}
