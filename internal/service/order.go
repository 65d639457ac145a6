package service

import (
	"cmp"
	"slices"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

// CompareTasks задает порядок выдачи: ранг статуса (в работе, новые, завершенные),
// затем приоритет по убыванию, затем время смены статуса по убыванию.
func CompareTasks(a, b model.Task) int {
	if c := cmp.Compare(a.Status.Rank(), b.Status.Rank()); c != 0 {
		return c
	}
	if c := cmp.Compare(b.Priority, a.Priority); c != 0 {
		return c
	}
	return b.LastStatusModified.Compare(a.LastStatusModified)
}

// SortTasks сортирует на месте; сортировка стабильная, так что равные задачи
// сохраняют порядок из хранилища.
func SortTasks(tasks []model.Task) {
	slices.SortStableFunc(tasks, CompareTasks)
}
