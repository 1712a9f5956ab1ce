package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/account"
	"todoWeb/internal/models/task"
	rep "todoWeb/internal/repository"
	"unicode/utf8"

	"go.uber.org/zap"
)

const (
	msgTaskNotFound        = "No such task exists."
	msgTaskForbiddenRead   = "Forbidden. You are not allowed to see others' task."
	msgTaskForbiddenModify = "Forbidden. You are not allowed to modify others' task."
)

type TaskService struct {
	repo TaskRepository
	now  func() time.Time
}

func NewTaskService(repo TaskRepository) *TaskService {
	return &TaskService{
		repo: repo,
		now:  time.Now,
	}
}

func (s *TaskService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return NewTechnicalError("health_check", err)
	}
	return nil
}

// ListTasks возвращает задачи аккаунта, новые первыми.
func (s *TaskService) ListTasks(ctx context.Context, accountID int64) ([]*task.Task, error) {
	tasks, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		logger.Error("Service: Ошибка получения задач", err, zap.Int64("account_id", accountID))
		return nil, NewTechnicalError("list_tasks", err)
	}
	return tasks, nil
}

func (s *TaskService) ListTasksByStatus(ctx context.Context, accountID int64, status task.Status) ([]*task.Task, error) {
	if !status.Valid() {
		return nil, NewValidationError("status", "Invalid task status.")
	}
	tasks, err := s.repo.ListByAccountAndStatus(ctx, accountID, status)
	if err != nil {
		logger.Error("Service: Ошибка получения задач по статусу", err, zap.Int64("account_id", accountID))
		return nil, NewTechnicalError("list_tasks_by_status", err)
	}
	return tasks, nil
}

func (s *TaskService) ListTasksByPriority(ctx context.Context, accountID int64, priority task.Priority) ([]*task.Task, error) {
	if !priority.Valid() {
		return nil, NewValidationError("priority", "Invalid task priority.")
	}
	tasks, err := s.repo.ListByAccountAndPriority(ctx, accountID, priority)
	if err != nil {
		logger.Error("Service: Ошибка получения задач по приоритету", err, zap.Int64("account_id", accountID))
		return nil, NewTechnicalError("list_tasks_by_priority", err)
	}
	return tasks, nil
}

func (s *TaskService) CreateTask(ctx context.Context, accountID int64, details string, deadline time.Time, priority task.Priority) (*task.Task, error) {
	now := s.now()
	newTask := &task.Task{
		AccountID:   accountID,
		Details:     details,
		StatusID:    task.StatusPending,
		PriorityID:  priority,
		Deadline:    deadline,
		CreatedAt:   now,
		LastUpdated: now,
	}

	if err := validateTask(newTask); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, newTask); err != nil {
		logger.Error("Service: Ошибка создания задачи", err, zap.Int64("account_id", accountID))
		return nil, NewTechnicalError("create_task", err)
	}

	logger.Info("Service: Задача создана",
		zap.Int64("task_id", newTask.ID),
		zap.Int64("account_id", accountID))
	return newTask, nil
}

func (s *TaskService) GetTask(ctx context.Context, id int64) (*task.Task, error) {
	found, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Задача не найдена", zap.Int64("target_id", id))
			return nil, NewNotFound("task", id, msgTaskNotFound)
		}
		logger.Error("Service: Ошибка получения задачи", err, zap.Int64("target_id", id))
		return nil, NewTechnicalError("get_task", err)
	}
	return found, nil
}

// GetOwnTask то же, что GetTask, но чужая задача даёт FORBIDDEN.
func (s *TaskService) GetOwnTask(ctx context.Context, owner *account.Account, id int64) (*task.Task, error) {
	found, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsOwner(owner, found) {
		logger.Warn("Service: Доступ к чужой задаче", zap.Int64("target_id", id))
		return nil, NewForbidden(msgTaskForbiddenRead)
	}
	return found, nil
}

// UpdateTask применяет опции и всегда обновляет last_updated. Владение проверяет вызывающий.
func (s *TaskService) UpdateTask(ctx context.Context, id int64, options ...task.TaskOption) (*task.Task, error) {
	found, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.applyUpdate(ctx, found, options...)
}

func (s *TaskService) UpdateOwnTask(ctx context.Context, owner *account.Account, id int64, options ...task.TaskOption) (*task.Task, error) {
	found, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if !IsOwner(owner, found) {
		logger.Warn("Service: Попытка изменить чужую задачу", zap.Int64("target_id", id))
		return nil, NewForbidden(msgTaskForbiddenModify)
	}
	return s.applyUpdate(ctx, found, options...)
}

func (s *TaskService) applyUpdate(ctx context.Context, target *task.Task, options ...task.TaskOption) (*task.Task, error) {
	updated := *target
	task.Apply(&updated, options...)
	if err := validateTask(&updated); err != nil {
		return nil, err
	}
	updated.LastUpdated = s.now()

	if err := s.repo.Update(ctx, &updated); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("task", updated.ID, msgTaskNotFound)
		}
		logger.Error("Service: Ошибка обновления задачи", err, zap.Int64("task_id", updated.ID))
		return nil, NewTechnicalError("update_task", err)
	}

	*target = updated
	return target, nil
}

func (s *TaskService) DeleteTask(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound("task", id, msgTaskNotFound)
		}
		logger.Error("Service: Ошибка удаления задачи", err, zap.Int64("task_id", id))
		return NewTechnicalError("delete_task", err)
	}
	return nil
}

func validateTask(t *task.Task) error {
	if strings.TrimSpace(t.Details) == "" {
		return NewValidationError("details", "Task details are required.")
	}
	if utf8.RuneCountInString(t.Details) > task.MaxDetailsLength {
		return NewValidationError("details", "Task details must not exceed 1000 characters.")
	}
	if t.Deadline.IsZero() {
		return NewValidationError("deadline", "Invalid date/time format.")
	}
	if !t.PriorityID.Valid() {
		return NewValidationError("priority", "Invalid task priority.")
	}
	if !t.StatusID.Valid() {
		return NewValidationError("status", "Invalid task status.")
	}
	return nil
}
