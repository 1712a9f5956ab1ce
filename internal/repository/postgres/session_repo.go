package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/session"
	repo "todoWeb/internal/repository"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const sessionColumns = `session_id, account_id, session_created, last_accessed, session_end`

type SessionStorage struct {
	*Storage
}

func scanSession(row pgx.Row) (*session.AccountSession, error) {
	s := &session.AccountSession{}
	err := row.Scan(
		&s.SessionID,
		&s.AccountID,
		&s.SessionCreated,
		&s.LastAccessed,
		&s.SessionEnd,
	)
	return s, err
}

func (s *SessionStorage) Create(ctx context.Context, sessionToCreate *session.AccountSession) error {
	start := time.Now()
	defer warnIfSlow(start, "create_session")

	query := `INSERT INTO account_sessions
				(session_id, account_id, session_created, last_accessed)
				VALUES ($1, $2, $3, $4)`

	_, err := s.pool.Exec(ctx, query,
		sessionToCreate.SessionID,
		sessionToCreate.AccountID,
		sessionToCreate.SessionCreated,
		sessionToCreate.LastAccessed,
	)
	if err != nil {
		logger.Error("Repository: Не удалось записать сессию", err, zap.Int64("account_id", sessionToCreate.AccountID))
		return fmt.Errorf("добавление сессии: %w", err)
	}
	return nil
}

func (s *SessionStorage) GetByID(ctx context.Context, id string) (*session.AccountSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM account_sessions WHERE session_id = $1`

	found, err := scanSession(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("получение сессии: %w", err)
	}
	return found, nil
}

func (s *SessionStorage) ListByAccount(ctx context.Context, accountID int64) ([]*session.AccountSession, error) {
	start := time.Now()
	defer warnIfSlow(start, "list_sessions")

	query := `SELECT ` + sessionColumns + ` FROM account_sessions
				WHERE account_id = $1
				ORDER BY session_created DESC`

	rows, err := s.pool.Query(ctx, query, accountID)
	if err != nil {
		logger.Error("Repository: Не удалось получить сессии", err)
		return nil, fmt.Errorf("получение сессий: %w", err)
	}
	defer rows.Close()

	sessions := []*session.AccountSession{}
	for rows.Next() {
		found, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("сканирование сессии: %w", err)
		}
		sessions = append(sessions, found)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return sessions, nil
}

func (s *SessionStorage) GetLatestByAccount(ctx context.Context, accountID int64) (*session.AccountSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM account_sessions
				WHERE account_id = $1
				ORDER BY session_created DESC
				LIMIT 1`

	found, err := scanSession(s.pool.QueryRow(ctx, query, accountID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		return nil, fmt.Errorf("получение последней сессии: %w", err)
	}
	return found, nil
}

func (s *SessionStorage) UpdateLastAccessed(ctx context.Context, id string, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `UPDATE account_sessions SET last_accessed = $1 WHERE session_id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("обновление last_accessed: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *SessionStorage) UpdateSessionEnd(ctx context.Context, id string, at time.Time) error {
	tag, err := s.pool.Exec(ctx, `UPDATE account_sessions SET session_end = $1 WHERE session_id = $2`, at, id)
	if err != nil {
		return fmt.Errorf("обновление session_end: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *SessionStorage) Delete(ctx context.Context, id string) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM account_sessions WHERE session_id = $1`, id); err != nil {
		return fmt.Errorf("удаление сессии: %w", err)
	}
	return nil
}

func (s *SessionStorage) DeleteByAccount(ctx context.Context, accountID int64) error {
	if _, err := s.pool.Exec(ctx, `DELETE FROM account_sessions WHERE account_id = $1`, accountID); err != nil {
		return fmt.Errorf("удаление сессий аккаунта: %w", err)
	}
	return nil
}
