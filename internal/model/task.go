package model

import (
	"time"
)

type TaskStatus string

const (
	StatusNew        TaskStatus = "new"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// statusRank задает порядок групп в списке задач: в работе, новые, завершенные
var statusRank = map[TaskStatus]int{
	StatusInProgress: 1,
	StatusNew:        2,
	StatusDone:       3,
}

func (s TaskStatus) Valid() bool {
	_, ok := statusRank[s]
	return ok
}

// Rank возвращает позицию статуса в сортировке. Неизвестные статусы идут последними.
func (s TaskStatus) Rank() int {
	if r, ok := statusRank[s]; ok {
		return r
	}
	return len(statusRank) + 1
}

type Task struct {
	ID                 int64      `json:"id"`
	OwnerID            int64      `json:"-"`
	Name               string     `json:"name"`
	Description        string     `json:"description"`
	Status             TaskStatus `json:"status"`
	ExpirationDate     *Date      `json:"expiration_date"`
	Priority           int        `json:"priority"`
	Created            time.Time  `json:"created"`
	LastStatusModified time.Time  `json:"last_status_modified"`
}

// NewTask - тело запроса на создание задачи. Указатели отличают отсутствующее поле от нулевого значения.
type NewTask struct {
	Name           *string     `json:"name"`
	Description    *string     `json:"description"`
	Status         *TaskStatus `json:"status"`
	ExpirationDate *Date       `json:"expiration_date"`
	Priority       *int        `json:"priority"`
}

// TaskPatch - разреженное обновление задачи.
type TaskPatch struct {
	Name           *string     `json:"name"`
	Description    *string     `json:"description"`
	Status         *TaskStatus `json:"status"`
	ExpirationDate *Date       `json:"expiration_date"`
	Priority       *int        `json:"priority"`
}

type TaskFilter struct {
	Statuses []TaskStatus
}

// ExpirationPolicy определяет, что происходит с expiration_date, когда патч его не содержит.
type ExpirationPolicy string

const (
	ExpirationClear ExpirationPolicy = "clear"
	ExpirationKeep  ExpirationPolicy = "keep"
)

func (p ExpirationPolicy) Valid() bool {
	return p == ExpirationClear || p == ExpirationKeep
}
