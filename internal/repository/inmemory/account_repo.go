package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/account"
	repo "todoWeb/internal/repository"
)

type AccountStorage struct {
	storage    map[int64]*account.Account
	byUsername map[string]int64
	mtx        *sync.RWMutex
	nextID     int64
}

func NewAccountStorage() *AccountStorage {
	return &AccountStorage{
		storage:    make(map[int64]*account.Account),
		byUsername: make(map[string]int64),
		mtx:        &sync.RWMutex{},
		nextID:     1,
	}
}

func (s *AccountStorage) HealthCheck(ctx context.Context) error {
	logger.Debug("Repository: Соединение стабильно")
	return nil
}

func (s *AccountStorage) Create(ctx context.Context, accountToCreate *account.Account) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, taken := s.byUsername[accountToCreate.Username]; taken {
		return repo.ErrDuplicateUsername
	}

	accountToCreate.ID = s.nextID
	s.nextID++
	if accountToCreate.CreatedAt.IsZero() {
		accountToCreate.CreatedAt = time.Now()
	}
	if accountToCreate.StatusID == 0 {
		accountToCreate.StatusID = account.StatusEnabled
	}

	stored := *accountToCreate
	s.storage[stored.ID] = &stored
	s.byUsername[stored.Username] = stored.ID
	return nil
}

func (s *AccountStorage) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	found, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *found
	return &copied, nil
}

func (s *AccountStorage) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	id, ok := s.byUsername[username]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *s.storage[id]
	return &copied, nil
}

// List отдаёт аккаунты по возрастанию id, как это делает postgres-хранилище.
func (s *AccountStorage) List(ctx context.Context) ([]*account.Account, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := make([]*account.Account, 0, len(s.storage))
	for _, acc := range s.storage {
		copied := *acc
		res = append(res, &copied)
	}
	sort.Slice(res, func(i, j int) bool { return res[i].ID < res[j].ID })
	return res, nil
}

func (s *AccountStorage) UpdateDetails(ctx context.Context, accountToUpdate *account.Account) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[accountToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}
	existing.FirstName = accountToUpdate.FirstName
	existing.LastName = accountToUpdate.LastName
	existing.StatusID = accountToUpdate.StatusID
	return nil
}

func (s *AccountStorage) UpdateDetailsAndPassword(ctx context.Context, accountToUpdate *account.Account, password string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[accountToUpdate.ID]
	if !ok {
		return repo.ErrNotFound
	}
	existing.FirstName = accountToUpdate.FirstName
	existing.LastName = accountToUpdate.LastName
	existing.StatusID = accountToUpdate.StatusID
	existing.Password = password
	return nil
}

func (s *AccountStorage) UpdatePassword(ctx context.Context, accountID int64, password string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	existing, ok := s.storage[accountID]
	if !ok {
		return repo.ErrNotFound
	}
	existing.Password = password
	return nil
}
