package repo

import (
	"context"
	"time"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

// TaskRepository - хранилище задач. Каждая операция ограничена владельцем задачи.
type TaskRepository interface {
	CreateTask(ctx context.Context, t model.Task) (int64, error)
	ListTasks(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, error)
	GetTask(ctx context.Context, ownerID, id int64) (model.Task, error)
	UpdateTask(ctx context.Context, ownerID, id int64, patch model.TaskPatch, now time.Time) (bool, error)
	DeleteTask(ctx context.Context, ownerID, id int64) (bool, error)
}

type UserRepository interface {
	CreateUser(ctx context.Context, email, passwordHash string) (int64, error)
	GetUserByEmail(ctx context.Context, email string) (model.User, error)
}
