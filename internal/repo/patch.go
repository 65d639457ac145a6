package repo

import (
	"fmt"
	"strings"
	"time"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

// patchRule описывает, как одно поле патча превращается в присваивание в UPDATE.
type patchRule struct {
	column string
	// value возвращает новое значение и признак того, что поле задано
	value func(p model.TaskPatch) (any, bool)
	// clearOnAbsent: отсутствующее поле сбрасывается в NULL вместо "оставить как есть"
	clearOnAbsent bool
	// touches - колонка-метка времени, которая обновляется вместе с полем
	touches string
}

func taskPatchRules(policy model.ExpirationPolicy) []patchRule {
	return []patchRule{
		{
			column: "name",
			value: func(p model.TaskPatch) (any, bool) {
				return deref(p.Name), p.Name != nil && *p.Name != ""
			},
		},
		{
			column: "description",
			value: func(p model.TaskPatch) (any, bool) {
				return deref(p.Description), p.Description != nil && *p.Description != ""
			},
		},
		{
			column: "status",
			value: func(p model.TaskPatch) (any, bool) {
				return string(deref(p.Status)), p.Status != nil && *p.Status != ""
			},
			touches: "last_status_modified",
		},
		{
			column: "expiration_date",
			value: func(p model.TaskPatch) (any, bool) {
				if p.ExpirationDate == nil {
					return nil, false
				}
				return p.ExpirationDate.Time, true
			},
			clearOnAbsent: policy != model.ExpirationKeep,
		},
		{
			column: "priority",
			value: func(p model.TaskPatch) (any, bool) {
				return deref(p.Priority), p.Priority != nil && *p.Priority != 0
			},
		},
	}
}

// buildTaskUpdate собирает SET-часть запроса и аргументы. Плейсхолдеры нумеруются с $1,
// id и owner_id добавляются последними. Пустой SET означает, что обновлять нечего.
func buildTaskUpdate(rules []patchRule, patch model.TaskPatch, now time.Time) (string, []any) {
	var (
		sets []string
		args []any
	)
	for _, rule := range rules {
		v, ok := rule.value(patch)
		switch {
		case ok:
			args = append(args, v)
			sets = append(sets, fmt.Sprintf("%s = $%d", rule.column, len(args)))
			if rule.touches != "" {
				args = append(args, now)
				sets = append(sets, fmt.Sprintf("%s = $%d", rule.touches, len(args)))
			}
		case rule.clearOnAbsent:
			sets = append(sets, rule.column+" = NULL")
		}
	}
	return strings.Join(sets, ", "), args
}

func deref[T any](p *T) T {
	var zero T
	if p == nil {
		return zero
	}
	return *p
}
