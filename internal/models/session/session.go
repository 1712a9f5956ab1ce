package session

import "time"

// AccountSession запись журнала входов. Для проверки доступа не используется.
type AccountSession struct {
	SessionID      string     `json:"session_id" db:"session_id"`
	AccountID      int64      `json:"account_id" db:"account_id"`
	SessionCreated time.Time  `json:"session_created" db:"session_created"`
	LastAccessed   time.Time  `json:"last_accessed" db:"last_accessed"`
	SessionEnd     *time.Time `json:"session_end,omitempty" db:"session_end"`
}
