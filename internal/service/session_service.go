package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/session"
	rep "todoWeb/internal/repository"

	"go.uber.org/zap"
)

// SessionService ведёт журнал входов (account_sessions). Для авторизации журнал не используется.
type SessionService struct {
	repo SessionRepository
	now  func() time.Time
}

func NewSessionService(repo SessionRepository) *SessionService {
	return &SessionService{
		repo: repo,
		now:  time.Now,
	}
}

// StartSession записывает новый вход и возвращает предыдущую сессию аккаунта, если она была.
func (s *SessionService) StartSession(ctx context.Context, sessionID string, accountID int64) (*session.AccountSession, error) {
	previous, err := s.repo.GetLatestByAccount(ctx, accountID)
	if err != nil {
		if !errors.Is(err, rep.ErrNotFound) {
			logger.Error("Service: Ошибка получения предыдущей сессии", err, zap.Int64("account_id", accountID))
			return nil, NewTechnicalError("start_session", err)
		}
		previous = nil
	}

	now := s.now()
	current := &session.AccountSession{
		SessionID:      sessionID,
		AccountID:      accountID,
		SessionCreated: now,
		LastAccessed:   now,
	}

	if err := s.repo.Create(ctx, current); err != nil {
		logger.Error("Service: Ошибка записи сессии", err, zap.Int64("account_id", accountID))
		return previous, NewTechnicalError("start_session", err)
	}

	return previous, nil
}

func (s *SessionService) FindSession(ctx context.Context, sessionID string) (*session.AccountSession, error) {
	found, err := s.repo.GetByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("session", sessionID, "No such session exists.")
		}
		return nil, NewTechnicalError("find_session", err)
	}
	return found, nil
}

func (s *SessionService) ListSessions(ctx context.Context, accountID int64) ([]*session.AccountSession, error) {
	sessions, err := s.repo.ListByAccount(ctx, accountID)
	if err != nil {
		logger.Error("Service: Ошибка получения сессий", err, zap.Int64("account_id", accountID))
		return nil, NewTechnicalError("list_sessions", err)
	}
	return sessions, nil
}

func (s *SessionService) TouchSession(ctx context.Context, sessionID string) error {
	if err := s.repo.UpdateLastAccessed(ctx, sessionID, s.now()); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound("session", sessionID, "No such session exists.")
		}
		return NewTechnicalError("touch_session", err)
	}
	return nil
}

func (s *SessionService) EndSession(ctx context.Context, sessionID string) error {
	if err := s.repo.UpdateSessionEnd(ctx, sessionID, s.now()); err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return NewNotFound("session", sessionID, "No such session exists.")
		}
		return NewTechnicalError("end_session", err)
	}
	return nil
}

func (s *SessionService) DeleteSession(ctx context.Context, sessionID string) error {
	if strings.TrimSpace(sessionID) == "" {
		return NewValidationError("session_id", "Session id is required.")
	}
	if err := s.repo.Delete(ctx, sessionID); err != nil {
		return NewTechnicalError("delete_session", err)
	}
	return nil
}

func (s *SessionService) DeleteAllSessionsForAccount(ctx context.Context, accountID int64) error {
	if err := s.repo.DeleteByAccount(ctx, accountID); err != nil {
		logger.Error("Service: Ошибка удаления сессий", err, zap.Int64("account_id", accountID))
		return NewTechnicalError("delete_sessions", err)
	}
	return nil
}
