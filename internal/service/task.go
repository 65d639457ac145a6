package service

import (
	"context"
	"strings"
	"time"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
	"github.com/BuzzLyutic/task-tracker-api/internal/repo"
)

const (
	MinPriority = 1
	MaxPriority = 10
)

type TaskService struct {
	repo repo.TaskRepository
	now  func() time.Time
}

func NewTaskService(repo repo.TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  time.Now,
	}
}

// Create проверяет обязательные поля до обращения к хранилищу
func (s *TaskService) Create(ctx context.Context, userID int64, req model.NewTask) (int64, error) {
	if err := s.validateNew(req); err != nil {
		return 0, err
	}

	now := s.now()
	return s.repo.CreateTask(ctx, model.Task{
		OwnerID:            userID,
		Name:               *req.Name,
		Description:        *req.Description,
		Status:             *req.Status,
		ExpirationDate:     req.ExpirationDate,
		Priority:           *req.Priority,
		Created:            now,
		LastStatusModified: now,
	})
}

func (s *TaskService) List(ctx context.Context, userID int64, statuses []model.TaskStatus) ([]model.Task, error) {
	filter := model.TaskFilter{}
	seen := make(map[model.TaskStatus]struct{}, len(statuses))
	for _, st := range statuses {
		if !st.Valid() {
			return nil, validationErr("invalid status %q", st)
		}
		if _, ok := seen[st]; ok {
			continue
		}
		seen[st] = struct{}{}
		filter.Statuses = append(filter.Statuses, st)
	}

	tasks, err := s.repo.ListTasks(ctx, userID, filter)
	if err != nil {
		return nil, err
	}
	SortTasks(tasks)
	return tasks, nil
}

func (s *TaskService) Get(ctx context.Context, userID, taskID int64) (model.Task, error) {
	return s.repo.GetTask(ctx, userID, taskID)
}

// Update сначала проверяет существование задачи у владельца, чтобы отличить
// "не найдено" от "нечего обновлять": репозиторий в обоих случаях вернет false.
func (s *TaskService) Update(ctx context.Context, userID, taskID int64, patch model.TaskPatch) error {
	if err := s.validatePatch(patch); err != nil {
		return err
	}

	if _, err := s.repo.GetTask(ctx, userID, taskID); err != nil {
		return err
	}

	updated, err := s.repo.UpdateTask(ctx, userID, taskID, patch, s.now())
	if err != nil {
		return err
	}
	if !updated {
		return ErrNothingToUpdate
	}
	return nil
}

func (s *TaskService) Delete(ctx context.Context, userID, taskID int64) error {
	deleted, err := s.repo.DeleteTask(ctx, userID, taskID)
	if err != nil {
		return err
	}
	if !deleted {
		return repo.ErrorNotFound
	}
	return nil
}

func (s *TaskService) validateNew(t model.NewTask) error {
	switch {
	case t.Name == nil:
		return validationErr("name is required")
	case t.Description == nil:
		return validationErr("description is required")
	case t.Status == nil:
		return validationErr("status is required")
	case t.Priority == nil:
		return validationErr("priority is required")
	}
	if strings.TrimSpace(*t.Name) == "" {
		return validationErr("name must not be empty")
	}
	if strings.TrimSpace(*t.Description) == "" {
		return validationErr("description must not be empty")
	}
	if !t.Status.Valid() {
		return validationErr("invalid status %q", *t.Status)
	}
	return validatePriority(*t.Priority)
}

// validatePatch проверяет только те поля, которые будут применены
func (s *TaskService) validatePatch(p model.TaskPatch) error {
	if p.Name != nil && *p.Name != "" && strings.TrimSpace(*p.Name) == "" {
		return validationErr("name must not be blank")
	}
	if p.Description != nil && *p.Description != "" && strings.TrimSpace(*p.Description) == "" {
		return validationErr("description must not be blank")
	}
	if p.Status != nil && *p.Status != "" && !p.Status.Valid() {
		return validationErr("invalid status %q", *p.Status)
	}
	if p.Priority != nil && *p.Priority != 0 {
		return validatePriority(*p.Priority)
	}
	return nil
}

func validatePriority(p int) error {
	if p < MinPriority || p > MaxPriority {
		return validationErr("priority must be between %d and %d", MinPriority, MaxPriority)
	}
	return nil
}
