package inmemory

import (
	"context"
	"sort"
	"sync"
	"time"
	"todoWeb/internal/models/session"
	repo "todoWeb/internal/repository"
)

type SessionStorage struct {
	storage map[string]*session.AccountSession
	mtx     *sync.RWMutex
}

func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		storage: make(map[string]*session.AccountSession),
		mtx:     &sync.RWMutex{},
	}
}

func (s *SessionStorage) Create(ctx context.Context, sessionToCreate *session.AccountSession) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	stored := *sessionToCreate
	s.storage[stored.SessionID] = &stored
	return nil
}

func (s *SessionStorage) GetByID(ctx context.Context, id string) (*session.AccountSession, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	found, ok := s.storage[id]
	if !ok {
		return nil, repo.ErrNotFound
	}
	copied := *found
	return &copied, nil
}

func (s *SessionStorage) ListByAccount(ctx context.Context, accountID int64) ([]*session.AccountSession, error) {
	s.mtx.RLock()
	defer s.mtx.RUnlock()

	res := []*session.AccountSession{}
	for _, found := range s.storage {
		if found.AccountID != accountID {
			continue
		}
		copied := *found
		res = append(res, &copied)
	}

	sort.Slice(res, func(i, j int) bool {
		return res[i].SessionCreated.After(res[j].SessionCreated)
	})
	return res, nil
}

func (s *SessionStorage) GetLatestByAccount(ctx context.Context, accountID int64) (*session.AccountSession, error) {
	sessions, _ := s.ListByAccount(ctx, accountID)
	if len(sessions) == 0 {
		return nil, repo.ErrNotFound
	}
	return sessions[0], nil
}

func (s *SessionStorage) UpdateLastAccessed(ctx context.Context, id string, at time.Time) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	found, ok := s.storage[id]
	if !ok {
		return repo.ErrNotFound
	}
	found.LastAccessed = at
	return nil
}

func (s *SessionStorage) UpdateSessionEnd(ctx context.Context, id string, at time.Time) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	found, ok := s.storage[id]
	if !ok {
		return repo.ErrNotFound
	}
	end := at
	found.SessionEnd = &end
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context, id string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	delete(s.storage, id)
	return nil
}

func (s *SessionStorage) DeleteByAccount(ctx context.Context, accountID int64) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	for id, found := range s.storage {
		if found.AccountID == accountID {
			delete(s.storage, id)
		}
	}
	return nil
}
