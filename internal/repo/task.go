package repo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/task-tracker-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const taskColumns = `id, owner_id, name, description, status, expiration_date, priority, created, last_status_modified`

type TaskRepo struct { // Репозиторий задач поверх пула соединений
	pool  *pgxpool.Pool
	rules []patchRule
}

type TaskRepoOption func(*TaskRepo)

// WithExpirationPolicy задает поведение expiration_date, отсутствующего в патче
func WithExpirationPolicy(policy model.ExpirationPolicy) TaskRepoOption {
	return func(r *TaskRepo) {
		r.rules = taskPatchRules(policy)
	}
}

func NewTaskRepo(pool *pgxpool.Pool, opts ...TaskRepoOption) *TaskRepo {
	r := &TaskRepo{
		pool:  pool,
		rules: taskPatchRules(model.ExpirationClear),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *TaskRepo) CreateTask(ctx context.Context, t model.Task) (int64, error) {
	var id int64
	err := r.pool.QueryRow(ctx, `
		INSERT INTO tasks (owner_id, name, description, status, expiration_date, priority, created, last_status_modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`, t.OwnerID, t.Name, t.Description, string(t.Status), dateArg(t.ExpirationDate), t.Priority, t.Created, t.LastStatusModified,
	).Scan(&id)
	return id, mapError(err)
}

// ListTasks возвращает задачи владельца в порядке id; порядок выдачи задает сервис
func (r *TaskRepo) ListTasks(ctx context.Context, ownerID int64, filter model.TaskFilter) ([]model.Task, error) {
	var (
		where = []string{"owner_id = $1"}
		args  = []any{ownerID}
	)
	if len(filter.Statuses) > 0 {
		statuses := make([]string, 0, len(filter.Statuses))
		for _, s := range filter.Statuses {
			statuses = append(statuses, string(s))
		}
		args = append(args, statuses)
		where = append(where, fmt.Sprintf("status = ANY($%d::text[])", len(args)))
	}

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE ` + strings.Join(where, " AND ") + ` ORDER BY id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			return nil, err
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *TaskRepo) GetTask(ctx context.Context, ownerID, id int64) (model.Task, error) {
	t, err := scanTask(r.pool.QueryRow(ctx, `
		SELECT `+taskColumns+`
		FROM tasks
		WHERE id = $1 AND owner_id = $2
	`, id, ownerID))

	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

// UpdateTask применяет патч одной командой UPDATE. false - если патч пустой
// или строки с таким id у этого владельца нет.
func (r *TaskRepo) UpdateTask(ctx context.Context, ownerID, id int64, patch model.TaskPatch, now time.Time) (bool, error) {
	set, args := buildTaskUpdate(r.rules, patch, now)
	if set == "" {
		return false, nil
	}

	args = append(args, id, ownerID)
	query := fmt.Sprintf(`UPDATE tasks SET %s WHERE id = $%d AND owner_id = $%d`, set, len(args)-1, len(args))

	cmd, err := r.pool.Exec(ctx, query, args...)
	if err != nil {
		return false, mapError(err)
	}
	return cmd.RowsAffected() == 1, nil
}

func (r *TaskRepo) DeleteTask(ctx context.Context, ownerID, id int64) (bool, error) {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM tasks WHERE id = $1 AND owner_id = $2", id, ownerID)
	if err != nil {
		return false, err
	}
	return cmd.RowsAffected() == 1, nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var (
		t          model.Task
		status     string
		expiration *time.Time
	)
	err := row.Scan(&t.ID, &t.OwnerID, &t.Name, &t.Description, &status, &expiration, &t.Priority, &t.Created, &t.LastStatusModified)
	if err != nil {
		return t, err
	}
	t.Status = model.TaskStatus(status)
	if expiration != nil {
		d := model.DateOf(*expiration)
		t.ExpirationDate = &d
	}
	return t, nil
}

func dateArg(d *model.Date) any {
	if d == nil {
		return nil
	}
	return d.Time
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "23505": // unique_violation
			return ErrorConflict
		case "23503": // foreign_key_violation: владельца нет
			return ErrorNotFound
		}
	}
	return err
}
