package dto

import (
	"time"
	"todoWeb/internal/models/account"
	"todoWeb/internal/models/session"
	"todoWeb/internal/models/task"
	"todoWeb/internal/timeutil"
)

type TaskResponse struct {
	ID           int64     `json:"id"`
	Details      string    `json:"details"`
	StatusID     int       `json:"status_id"`
	Status       string    `json:"status"`
	PriorityID   int       `json:"priority_id"`
	Priority     string    `json:"priority"`
	CreatedAt    time.Time `json:"created_at"`
	Deadline     time.Time `json:"deadline"`
	DeadlineDate string    `json:"deadline_date"`
	DeadlineTime string    `json:"deadline_time"`
	LastUpdated  time.Time `json:"last_updated"`
	IsOverdue    bool      `json:"is_overdue"`
}

func FromTask(t *task.Task) TaskResponse {
	date, clock := timeutil.SplitDateAndTime(t.Deadline)
	return TaskResponse{
		ID:           t.ID,
		Details:      t.Details,
		StatusID:     int(t.StatusID),
		Status:       t.StatusID.String(),
		PriorityID:   int(t.PriorityID),
		Priority:     t.PriorityID.String(),
		CreatedAt:    t.CreatedAt,
		Deadline:     t.Deadline,
		DeadlineDate: date,
		DeadlineTime: clock,
		LastUpdated:  t.LastUpdated,
		IsOverdue:    t.StatusID != task.StatusCompleted && t.Deadline.Before(time.Now()),
	}
}

func FromTaskList(tasks []*task.Task) []TaskResponse {
	result := make([]TaskResponse, len(tasks))
	for i, t := range tasks {
		result[i] = FromTask(t)
	}
	return result
}

// AccountResponse никогда не содержит пароль.
type AccountResponse struct {
	ID        int64     `json:"id"`
	Username  string    `json:"username"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
	StatusID  int       `json:"status_id"`
	Status    string    `json:"status"`
	IsAdmin   bool      `json:"is_admin"`
}

func FromAccount(a *account.Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Username:  a.Username,
		FirstName: a.FirstName,
		LastName:  a.LastName,
		CreatedAt: a.CreatedAt,
		StatusID:  int(a.StatusID),
		Status:    a.StatusID.String(),
		IsAdmin:   a.IsAdmin,
	}
}

func FromAccountList(accounts []*account.Account) []AccountResponse {
	result := make([]AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = FromAccount(a)
	}
	return result
}

type SessionResponse struct {
	Created      time.Time  `json:"session_created"`
	LastAccessed time.Time  `json:"last_accessed"`
	Ended        *time.Time `json:"session_end,omitempty"`
}

func FromSession(s *session.AccountSession) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		Created:      s.SessionCreated,
		LastAccessed: s.LastAccessed,
		Ended:        s.SessionEnd,
	}
}

// CurrentUser то, что показывается в шапке каждой страницы.
type CurrentUser struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	IsAdmin   bool   `json:"is_admin"`
}

type Option struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

func TaskStatusOptions() []Option {
	options := []Option{}
	for _, s := range task.Statuses() {
		options = append(options, Option{ID: int(s), Name: s.String()})
	}
	return options
}

func TaskPriorityOptions() []Option {
	options := []Option{}
	for _, p := range task.Priorities() {
		options = append(options, Option{ID: int(p), Name: p.String()})
	}
	return options
}

func AccountStatusOptions() []Option {
	return []Option{
		{ID: int(account.StatusEnabled), Name: account.StatusEnabled.String()},
		{ID: int(account.StatusDisabled), Name: account.StatusDisabled.String()},
	}
}
