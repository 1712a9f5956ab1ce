package handlers

import (
	"context"
	"time"
	"todoWeb/internal/models/account"
	"todoWeb/internal/models/session"
	"todoWeb/internal/models/task"
	"todoWeb/internal/service"
)

type Authenticator interface {
	Authenticate(ctx context.Context, username, password string) (*account.Account, error)
}

type SessionRecorder interface {
	StartSession(ctx context.Context, sessionID string, accountID int64) (*session.AccountSession, error)
	EndSession(ctx context.Context, sessionID string) error
}

type TaskService interface {
	HealthCheck(context.Context) error
	ListTasks(ctx context.Context, accountID int64) ([]*task.Task, error)
	ListTasksByStatus(ctx context.Context, accountID int64, status task.Status) ([]*task.Task, error)
	ListTasksByPriority(ctx context.Context, accountID int64, priority task.Priority) ([]*task.Task, error)
	CreateTask(ctx context.Context, accountID int64, details string, deadline time.Time, priority task.Priority) (*task.Task, error)
	GetOwnTask(ctx context.Context, owner *account.Account, id int64) (*task.Task, error)
	UpdateOwnTask(ctx context.Context, owner *account.Account, id int64, options ...task.TaskOption) (*task.Task, error)
}

type AccountService interface {
	HealthCheck(context.Context) error
	ListAccounts(context.Context) ([]*account.Account, error)
	GetAccount(ctx context.Context, id int64) (*account.Account, error)
	CreateAccount(ctx context.Context, username, firstName, lastName string) (*account.Account, error)
	UpdateAccount(ctx context.Context, acc *account.Account, opts service.UpdateOptions) error
}
