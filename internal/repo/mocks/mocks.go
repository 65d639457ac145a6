// Package mocks содержит testify-моки репозиториев для тестов сервисов и хэндлеров.
package mocks

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

type TaskRepository struct {
	mock.Mock
}

func (m *TaskRepository) CreateTask(ctx context.Context, t model.Task) (int64, error) {
	args := m.Called(ctx, t)
	return args.Get(0).(int64), args.Error(1)
}

func (m *TaskRepository) ListTasks(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, error) {
	args := m.Called(ctx, ownerID, filter)
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *TaskRepository) GetTask(ctx context.Context, ownerID, id int64) (model.Task, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Get(0).(model.Task), args.Error(1)
}

func (m *TaskRepository) UpdateTask(ctx context.Context, ownerID, id int64, patch model.TaskPatch, now time.Time) (bool, error) {
	args := m.Called(ctx, ownerID, id, patch, now)
	return args.Bool(0), args.Error(1)
}

func (m *TaskRepository) DeleteTask(ctx context.Context, ownerID, id int64) (bool, error) {
	args := m.Called(ctx, ownerID, id)
	return args.Bool(0), args.Error(1)
}

type UserRepository struct {
	mock.Mock
}

func (m *UserRepository) CreateUser(ctx context.Context, email, passwordHash string) (int64, error) {
	args := m.Called(ctx, email, passwordHash)
	return args.Get(0).(int64), args.Error(1)
}

func (m *UserRepository) GetUserByEmail(ctx context.Context, email string) (model.User, error) {
	args := m.Called(ctx, email)
	return args.Get(0).(model.User), args.Error(1)
}
