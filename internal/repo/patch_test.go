package repo

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

func ptr[T any](v T) *T { return &v }

func TestBuildTaskUpdate(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	due := model.NewDate(2026, 4, 1)

	tests := []struct {
		name     string
		policy   model.ExpirationPolicy
		patch    model.TaskPatch
		wantSet  string
		wantArgs []any
	}{
		{
			name:     "empty patch clears expiration",
			policy:   model.ExpirationClear,
			patch:    model.TaskPatch{},
			wantSet:  "expiration_date = NULL",
			wantArgs: nil,
		},
		{
			name:     "empty patch with keep policy contributes nothing",
			policy:   model.ExpirationKeep,
			patch:    model.TaskPatch{},
			wantSet:  "",
			wantArgs: nil,
		},
		{
			name:     "priority only does not touch status timestamp",
			policy:   model.ExpirationKeep,
			patch:    model.TaskPatch{Priority: ptr(7)},
			wantSet:  "priority = $1",
			wantArgs: []any{7},
		},
		{
			name:     "status stamps last_status_modified",
			policy:   model.ExpirationKeep,
			patch:    model.TaskPatch{Status: ptr(model.StatusDone)},
			wantSet:  "status = $1, last_status_modified = $2",
			wantArgs: []any{"done", now},
		},
		{
			name:   "all fields",
			policy: model.ExpirationClear,
			patch: model.TaskPatch{
				Name:           ptr("n"),
				Description:    ptr("d"),
				Status:         ptr(model.StatusInProgress),
				ExpirationDate: &due,
				Priority:       ptr(3),
			},
			wantSet:  "name = $1, description = $2, status = $3, last_status_modified = $4, expiration_date = $5, priority = $6",
			wantArgs: []any{"n", "d", "in_progress", now, due.Time, 3},
		},
		{
			name:     "falsy values are skipped",
			policy:   model.ExpirationClear,
			patch:    model.TaskPatch{Name: ptr(""), Description: ptr(""), Status: ptr(model.TaskStatus("")), Priority: ptr(0)},
			wantSet:  "expiration_date = NULL",
			wantArgs: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, args := buildTaskUpdate(taskPatchRules(tt.policy), tt.patch, now)
			assert.Equal(t, tt.wantSet, set)
			assert.Equal(t, tt.wantArgs, args)
		})
	}
}

func TestNewTaskRepo_DefaultPolicyClears(t *testing.T) {
	r := NewTaskRepo(nil)
	set, _ := buildTaskUpdate(r.rules, model.TaskPatch{}, time.Now())
	assert.Equal(t, "expiration_date = NULL", set)

	r = NewTaskRepo(nil, WithExpirationPolicy(model.ExpirationKeep))
	set, _ = buildTaskUpdate(r.rules, model.TaskPatch{}, time.Now())
	assert.Empty(t, set)
}
