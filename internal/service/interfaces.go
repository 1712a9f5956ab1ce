package service

import (
	"context"
	"time"
	"todoWeb/internal/models/account"
	"todoWeb/internal/models/session"
	"todoWeb/internal/models/task"
)

type AccountRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *account.Account) error
	GetByID(context.Context, int64) (*account.Account, error)
	GetByUsername(context.Context, string) (*account.Account, error)
	List(context.Context) ([]*account.Account, error)
	UpdateDetails(context.Context, *account.Account) error
	UpdatePassword(ctx context.Context, accountID int64, password string) error
	// UpdateDetailsAndPassword пишет имя, фамилию, статус и пароль одной операцией.
	UpdateDetailsAndPassword(ctx context.Context, acc *account.Account, password string) error
}

type TaskRepository interface {
	HealthCheck(context.Context) error
	Create(context.Context, *task.Task) error
	GetByID(context.Context, int64) (*task.Task, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*task.Task, error)
	ListByAccountAndStatus(ctx context.Context, accountID int64, status task.Status) ([]*task.Task, error)
	ListByAccountAndPriority(ctx context.Context, accountID int64, priority task.Priority) ([]*task.Task, error)
	Update(context.Context, *task.Task) error
	Delete(context.Context, int64) error
}

type SessionRepository interface {
	Create(context.Context, *session.AccountSession) error
	GetByID(context.Context, string) (*session.AccountSession, error)
	ListByAccount(ctx context.Context, accountID int64) ([]*session.AccountSession, error)
	GetLatestByAccount(ctx context.Context, accountID int64) (*session.AccountSession, error)
	UpdateLastAccessed(ctx context.Context, sessionID string, at time.Time) error
	UpdateSessionEnd(ctx context.Context, sessionID string, at time.Time) error
	Delete(context.Context, string) error
	DeleteByAccount(ctx context.Context, accountID int64) error
}
