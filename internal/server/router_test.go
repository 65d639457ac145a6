package server

import (
	"net/http"
	"net/http/httptest"
	"net/http/cookiejar"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/BuzzLyutic/task-tracker-api/internal/auth"
	"github.com/BuzzLyutic/task-tracker-api/internal/handler"
	"github.com/BuzzLyutic/task-tracker-api/internal/model"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo/mocks"
	"github.com/BuzzLyutic/task-tracker-api/internal/service"
)

func setupMockServer(t *testing.T) (*httptest.Server, *mocks.TaskRepository, *mocks.UserRepository) {
	t.Helper()
	logger := zap.NewNop()
	tasksRepo := new(mocks.TaskRepository)
	usersRepo := new(mocks.UserRepository)
	tokens := auth.NewTokenManager("test-secret", time.Hour)

	router := NewRouter(
		Config{CookieName: "token", RequestTimeout: 5 * time.Second},
		handler.NewTaskHandler(service.NewTaskService(tasksRepo), logger),
		handler.NewAuthHandler(service.NewAuthService(usersRepo, auth.NewPasswordHasher(bcrypt.MinCost), tokens), handler.CookieConfig{Name: "token"}, logger),
		tokens,
		logger,
	)

	server := httptest.NewServer(router)
	t.Cleanup(server.Close)
	return server, tasksRepo, usersRepo
}

func TestRouter_PublicAndProtectedRoutes(t *testing.T) {
	server, _, _ := setupMockServer(t)

	tests := []struct {
		method   string
		path     string
		wantCode int
	}{
		{http.MethodGet, "/health", http.StatusOK},
		{http.MethodPost, "/register", http.StatusBadRequest},
		{http.MethodPost, "/login/", http.StatusBadRequest},
		{http.MethodGet, "/tasks", http.StatusUnauthorized},
		{http.MethodPost, "/tasks", http.StatusUnauthorized},
		{http.MethodGet, "/tasks/1", http.StatusUnauthorized},
		{http.MethodPut, "/tasks/1/", http.StatusUnauthorized},
		{http.MethodDelete, "/tasks/1", http.StatusUnauthorized},
		{http.MethodGet, "/unknown", http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.method+" "+tt.path, func(t *testing.T) {
			req, err := http.NewRequest(tt.method, server.URL+tt.path, strings.NewReader(""))
			require.NoError(t, err)

			resp, err := http.DefaultClient.Do(req)
			require.NoError(t, err)
			resp.Body.Close()

			assert.Equal(t, tt.wantCode, resp.StatusCode)
		})
	}
}

func TestRouter_LoginCookieOpensProtectedRoutes(t *testing.T) {
	server, tasksRepo, usersRepo := setupMockServer(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("p"), bcrypt.MinCost)
	require.NoError(t, err)
	usersRepo.On("GetUserByEmail", mock.Anything, "a@x.com").
		Return(model.User{ID: 7, Email: "a@x.com", PasswordHash: string(hash)}, nil)
	tasksRepo.On("ListTasks", mock.Anything, int64(7), model.TaskFilter{}).Return([]model.Task{}, nil)
	tasksRepo.On("GetTask", mock.Anything, int64(7), int64(5)).Return(model.Task{ID: 5, OwnerID: 7, Status: model.StatusNew}, nil)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)
	client := &http.Client{Jar: jar}

	resp, err := client.Post(server.URL+"/login", "application/json", strings.NewReader(`{"email":"a@x.com","password":"p"}`))
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(server.URL + "/tasks")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	resp, err = client.Get(server.URL + "/tasks/5/")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	usersRepo.AssertExpectations(t)
	tasksRepo.AssertExpectations(t)
}
