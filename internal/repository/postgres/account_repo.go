package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/account"
	repo "todoWeb/internal/repository"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"
)

const uniqueViolation = "23505"

const accountColumns = `account_id, username, first_name, last_name, password, created_at, status_id, is_admin`

type AccountStorage struct {
	*Storage
}

func scanAccount(row pgx.Row) (*account.Account, error) {
	acc := &account.Account{}
	err := row.Scan(
		&acc.ID,
		&acc.Username,
		&acc.FirstName,
		&acc.LastName,
		&acc.Password,
		&acc.CreatedAt,
		&acc.StatusID,
		&acc.IsAdmin,
	)
	return acc, err
}

func (s *AccountStorage) Create(ctx context.Context, accountToCreate *account.Account) error {
	start := time.Now()
	defer warnIfSlow(start, "create_account")

	if accountToCreate.StatusID == 0 {
		accountToCreate.StatusID = account.StatusEnabled
	}
	if accountToCreate.CreatedAt.IsZero() {
		accountToCreate.CreatedAt = time.Now()
	}

	query := `INSERT INTO accounts
				(username, first_name, last_name, password, created_at, status_id, is_admin)
				VALUES ($1, $2, $3, $4, $5, $6, $7)
				RETURNING account_id, created_at`

	err := s.pool.QueryRow(ctx, query,
		accountToCreate.Username,
		accountToCreate.FirstName,
		accountToCreate.LastName,
		accountToCreate.Password,
		accountToCreate.CreatedAt,
		accountToCreate.StatusID,
		accountToCreate.IsAdmin,
	).Scan(&accountToCreate.ID, &accountToCreate.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			logger.Warn("Repository: Имя пользователя занято", zap.String("username", accountToCreate.Username))
			return repo.ErrDuplicateUsername
		}
		logger.Error("Repository: Не удалось добавить аккаунт", err, zap.Duration("ms", time.Since(start)))
		return fmt.Errorf("добавление аккаунта: %w", err)
	}
	return nil
}

func (s *AccountStorage) GetByID(ctx context.Context, id int64) (*account.Account, error) {
	start := time.Now()
	defer warnIfSlow(start, "get_account")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE account_id = $1`

	acc, err := scanAccount(s.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить аккаунт", err, zap.Int64("account_id", id))
		return nil, fmt.Errorf("получение аккаунта: %w", err)
	}
	return acc, nil
}

func (s *AccountStorage) GetByUsername(ctx context.Context, username string) (*account.Account, error) {
	start := time.Now()
	defer warnIfSlow(start, "get_account_by_username")

	query := `SELECT ` + accountColumns + ` FROM accounts WHERE username = $1`

	acc, err := scanAccount(s.pool.QueryRow(ctx, query, username))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repo.ErrNotFound
		}
		logger.Error("Repository: Не удалось получить аккаунт", err, zap.String("username", username))
		return nil, fmt.Errorf("получение аккаунта: %w", err)
	}
	return acc, nil
}

func (s *AccountStorage) List(ctx context.Context) ([]*account.Account, error) {
	start := time.Now()
	defer warnIfSlow(start, "list_accounts")

	query := `SELECT ` + accountColumns + ` FROM accounts ORDER BY account_id`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		logger.Error("Repository: Не удалось получить аккаунты", err)
		return nil, fmt.Errorf("получение аккаунтов: %w", err)
	}
	defer rows.Close()

	accounts := []*account.Account{}
	for rows.Next() {
		acc, err := scanAccount(rows)
		if err != nil {
			logger.Error("Repository: Ошибка сканирования аккаунта", err)
			return nil, fmt.Errorf("сканирование аккаунта: %w", err)
		}
		accounts = append(accounts, acc)
	}

	if err := rows.Err(); err != nil {
		logger.Error("Repository: Ошибка итерации по строкам", err)
		return nil, fmt.Errorf("итерация по строкам: %w", err)
	}
	return accounts, nil
}

func (s *AccountStorage) UpdateDetails(ctx context.Context, accountToUpdate *account.Account) error {
	start := time.Now()
	defer warnIfSlow(start, "update_account")

	query := `UPDATE accounts
			SET first_name = $1,
				last_name = $2,
				status_id = $3
			WHERE account_id = $4`

	tag, err := s.pool.Exec(ctx, query,
		accountToUpdate.FirstName,
		accountToUpdate.LastName,
		accountToUpdate.StatusID,
		accountToUpdate.ID,
	)
	if err != nil {
		logger.Error("Repository: Не удалось обновить аккаунт", err, zap.Int64("account_id", accountToUpdate.ID))
		return fmt.Errorf("обновление аккаунта: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

// UpdateDetailsAndPassword обновляет данные аккаунта и пароль одним UPDATE.
func (s *AccountStorage) UpdateDetailsAndPassword(ctx context.Context, accountToUpdate *account.Account, password string) error {
	start := time.Now()
	defer warnIfSlow(start, "update_account_password")

	query := `UPDATE accounts
			SET first_name = $1,
				last_name = $2,
				status_id = $3,
				password = $4
			WHERE account_id = $5`

	tag, err := s.pool.Exec(ctx, query,
		accountToUpdate.FirstName,
		accountToUpdate.LastName,
		accountToUpdate.StatusID,
		password,
		accountToUpdate.ID,
	)
	if err != nil {
		logger.Error("Repository: Не удалось обновить аккаунт и пароль", err, zap.Int64("account_id", accountToUpdate.ID))
		return fmt.Errorf("обновление аккаунта и пароля: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}

func (s *AccountStorage) UpdatePassword(ctx context.Context, accountID int64, password string) error {
	start := time.Now()
	defer warnIfSlow(start, "update_password")

	tag, err := s.pool.Exec(ctx, `UPDATE accounts SET password = $1 WHERE account_id = $2`, password, accountID)
	if err != nil {
		logger.Error("Repository: Не удалось сменить пароль", err, zap.Int64("account_id", accountID))
		return fmt.Errorf("смена пароля: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return repo.ErrNotFound
	}
	return nil
}
