package service_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pethelp-client/internal/model"
	"pethelp-client/internal/model/requestresponse"
	"pethelp-client/internal/service"
)

// 1. Создание объявления возвращает UUID из ответа
func TestCreatePost_Success(t *testing.T) {
	dispatcher := new(MockDispatcher)
	svc := service.NewPostService(dispatcher, quietLogger())

	raw := []byte(`{"response":{"uuid":"p1"}}`)
	dispatcher.On("Send", mock.Anything, mock.MatchedBy(func(request *model.Request) bool {
		return request.Path == "/posts" && request.Auth && !request.SkipRefresh
	})).Return(&model.Result{Status: http.StatusOK, Raw: raw}, nil)

	uuid, err := svc.CreatePost(context.Background(), requestresponse.CreatePostRequest{
		Kind:  "lost",
		Title: "Пропал кот",
	})

	require.NoError(t, err)
	assert.Equal(t, "p1", uuid)
}

// 2. Пожертвования по объявлению
func TestListDonations_Success(t *testing.T) {
	dispatcher := new(MockDispatcher)
	svc := service.NewPostService(dispatcher, quietLogger())

	raw := []byte(`{"response":{"donations":[{"uuid":"d1","post_uuid":"p1","amount":500,"currency":"RUB"}]}}`)
	dispatcher.On("Send", mock.Anything, pathMatcher("/posts/p1/donations")).
		Return(&model.Result{Status: http.StatusOK, Raw: raw}, nil)

	donations, err := svc.ListDonations(context.Background(), "p1")

	require.NoError(t, err)
	require.Len(t, donations, 1)
	assert.Equal(t, int64(500), donations[0].Amount)
}
