package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/task"
	repo "todoWeb/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const taskColumns = `task_id, account_id, details, status_id, priority_id, created_at, deadline, last_updated`

type TaskStorage struct {
	*Storage
}

func scanTask(row pgx.Row) (*task.Task, error) {
	t := &task.Task{}
	err := row.Scan(
		&t.ID,
		&t.AccountID,
		&t.Details,
		&t.StatusID,
		&t.PriorityID,
		&t.CreatedAt,
		&t.Deadline,
		&t.LastUpdated,
	)
	return t, err
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	start := time.Now()
	defer warnIfSlow(start, "create_task")

	if taskToCreate.StatusID == 0 {
		taskToCreate.StatusID = task.StatusPending
	}
	if taskToCreate.PriorityID == 0 {
		taskToCreate.PriorityID = task.PriorityNormal
	}
	now := time.Now()
	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = now
	}
	if taskToCreate.LastUpdated.IsZero() {
		taskToCreate.LastUpdated = now
	}

	query := `INSERT INTO tasks
				(account_id, details, status_id, priority_id, created_at, deadline, last_updated)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING task_id`

	err := s.pool.QueryRow(ctx, query,
		taskToCreate.AccountID,
		taskToCreate.Details,
		taskToCreate.StatusID,
		taskToCreate.PriorityID,
		taskToCreate.CreatedAt,
		taskToCreate.Deadline,
		taskToCreate.LastUpdated,
	).Scan(&taskToCreate.ID)

	if err != nil {
		logger.Error("Repository: Не удалось добавить задачу", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление задачи: %w", err)
	}
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	start := time.Now()
	defer warnIfSlow(start, "get_task")

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE task_id = $1`

	t, err := scanTask(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить задачу", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задачи: %w", err)
	}
	return t, nil
}

func (s *TaskStorage) ListByAccount(ctx context.Context, accountID int64) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
				WHERE account_id = $1
				ORDER BY created_at DESC, task_id DESC`
	return s.list(ctx, "list_tasks", query, accountID)
}

func (s *TaskStorage) ListByAccountAndStatus(ctx context.Context, accountID int64, status task.Status) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
				WHERE account_id = $1 AND status_id = $2
				ORDER BY created_at DESC, task_id DESC`
	return s.list(ctx, "list_tasks_by_status", query, accountID, status)
}

func (s *TaskStorage) ListByAccountAndPriority(ctx context.Context, accountID int64, priority task.Priority) ([]*task.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks
				WHERE account_id = $1 AND priority_id = $2
				ORDER BY created_at DESC, task_id DESC`
	return s.list(ctx, "list_tasks_by_priority", query, accountID, priority)
}

func (s *TaskStorage) list(ctx context.Context, operation, query string, args ...any) ([]*task.Task, error) {
	start := time.Now()
	defer warnIfSlow(start, operation)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		logger.Error("Repository: Не удалось получить задачи", err, zap.Duration("ms", time.Since(start)))
		return nil, fmt.Errorf("получение задач: %w", err)
	}
	defer rows.Close()

	tasks := []*task.Task{}
	for rows.Next() {
		t, err := scanTask(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования задачи", err)
			return nil, fmt.Errorf("сканирование задачи: %w", err)
		}
		tasks = append(tasks, t)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return tasks, nil
}

// Update не трогает владельца и дату создания.
func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	start := time.Now()
	defer warnIfSlow(start, "update_task")

	if taskToUpdate.LastUpdated.IsZero() {
		taskToUpdate.LastUpdated = time.Now()
	}

	query := `UPDATE tasks
			SET details = $1,
				deadline = $2,
				priority_id = $3,
				status_id = $4,
				last_updated = $5
			WHERE task_id = $6`

	tag, err := s.pool.Exec(ctx, query,
		taskToUpdate.Details,
		taskToUpdate.Deadline,
		taskToUpdate.PriorityID,
		taskToUpdate.StatusID,
		taskToUpdate.LastUpdated,
		taskToUpdate.ID,
	)
	if err != nil {
		logger.Error("Repository: Не удалось обновить задачу", err, zap.Int64("task_id", taskToUpdate.ID))
		return fmt.Errorf("обновление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id int64) error {
	start := time.Now()
	defer warnIfSlow(start, "delete_task")

	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = $1`, id)
	if err != nil {
		logger.Error("Repository: Не удалось удалить задачу", err, zap.Int64("task_id", id))
		return fmt.Errorf("удаление задачи: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
