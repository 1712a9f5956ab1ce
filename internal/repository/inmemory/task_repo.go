package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/task"
	repo "todoWeb/internal/repository"
)

type TaskStorage struct {
	storage map[int64]*task.Task
	mtx     *sync.RWMutex
	nextID  int64
}

func NewTaskStorage() *TaskStorage {
	return &TaskStorage{
		storage: make(map[int64]*task.Task),
		mtx:     &sync.RWMutex{},
		nextID:  1,
	}
}

func (s *TaskStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

func (s *TaskStorage) Create(ctx context.Context, taskToCreate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	taskToCreate.ID = s.nextID
	s.nextID++

	now := time.Now()
	if taskToCreate.CreatedAt.IsZero() {
		taskToCreate.CreatedAt = now
	}
	if taskToCreate.LastUpdated.IsZero() {
		taskToCreate.LastUpdated = now
	}
	if taskToCreate.StatusID == 0 {
		taskToCreate.StatusID = task.StatusPending
	}
	if taskToCreate.PriorityID == 0 {
		taskToCreate.PriorityID = task.PriorityNormal
	}

	stored := *taskToCreate
	s.storage[stored.ID] = &stored
	return nil
}

func (s *TaskStorage) GetByID(ctx context.Context, id int64) (*task.Task, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	found, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *found
	return &copied, nil
}

func (s *TaskStorage) ListByAccount(ctx context.Context, accountID int64) ([]*task.Task, error) {
	return s.filter(func(t *task.Task) bool {
		return t.AccountID == accountID
	}), nil
}

func (s *TaskStorage) ListByAccountAndStatus(ctx context.Context, accountID int64, status task.Status) ([]*task.Task, error) {
	return s.filter(func(t *task.Task) bool {
		return t.AccountID == accountID && t.StatusID == status
	}), nil
}

func (s *TaskStorage) ListByAccountAndPriority(ctx context.Context, accountID int64, priority task.Priority) ([]*task.Task, error) {
	return s.filter(func(t *task.Task) bool {
		return t.AccountID == accountID && t.PriorityID == priority
	}), nil
}

// filter возвращает копии, новые задачи первыми (при равном created_at больший id).
func (s *TaskStorage) filter(match func(*task.Task) bool) []*task.Task {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*task.Task{}
	for _, t := range s.storage {
		if !match(t) {
			continue
		}
		copied := *t
		res = append(res, &copied)
	}

	sort.Slice(res, func(i, j int) bool {
		if res[i].CreatedAt.Equal(res[j].CreatedAt) {
			return res[i].ID > res[j].ID
		}
		return res[i].CreatedAt.After(res[j].CreatedAt)
	})
	return res
}

func (s *TaskStorage) Update(ctx context.Context, taskToUpdate *task.Task) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[taskToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}

	if taskToUpdate.LastUpdated.IsZero() {
		taskToUpdate.LastUpdated = time.Now()
	}
	existing.Details = taskToUpdate.Details
	existing.Deadline = taskToUpdate.Deadline
	existing.PriorityID = taskToUpdate.PriorityID
	existing.StatusID = taskToUpdate.StatusID
	existing.LastUpdated = taskToUpdate.LastUpdated
	return nil
}

func (s *TaskStorage) Delete(ctx context.Context, id int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.storage[id]; !ok {
		return repo.ErrNotFound
	}
	delete(s.storage, id)
	return nil
}
