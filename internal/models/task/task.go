package task

import (
	"time"
)

type Task struct {
	ID          int64     `json:"id" db:"task_id"`
	AccountID   int64     `json:"account_id" db:"account_id"`
	Details     string    `json:"details" db:"details"`
	StatusID    Status    `json:"status_id" db:"status_id"`
	PriorityID  Priority  `json:"priority_id" db:"priority_id"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	Deadline    time.Time `json:"deadline" db:"deadline"`
	LastUpdated time.Time `json:"last_updated" db:"last_updated"`
}

type Status int
type Priority int

const StatusPending Status = 1
const StatusInProgress Status = 2
const StatusCompleted Status = 3

const PriorityHigh Priority = 1
const PriorityNormal Priority = 2
const PriorityLow Priority = 3

const MaxDetailsLength = 1000

func (s Status) Valid() bool {
	return s >= StatusPending && s <= StatusCompleted
}

func (p Priority) Valid() bool {
	return p >= PriorityHigh && p <= PriorityLow
}

func (s Status) String() string {
	switch s {
	case StatusPending:
		return "Pending"
	case StatusInProgress:
		return "In progress"
	case StatusCompleted:
		return "Completed"
	default:
		return "Unknown"
	}
}

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "High"
	case PriorityNormal:
		return "Normal"
	case PriorityLow:
		return "Low"
	default:
		return "Unknown"
	}
}

func Statuses() []Status {
	return []Status{StatusPending, StatusInProgress, StatusCompleted}
}

func Priorities() []Priority {
	return []Priority{PriorityHigh, PriorityNormal, PriorityLow}
}
