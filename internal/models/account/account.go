package account

import "time"

type Status int

const StatusEnabled Status = 1
const StatusDisabled Status = 2

type Account struct {
	ID        int64     `json:"id" db:"account_id"`
	Username  string    `json:"username" db:"username"`
	FirstName string    `json:"first_name" db:"first_name"`
	LastName  string    `json:"last_name" db:"last_name"`
	Password  string    `json:"-" db:"password"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	StatusID  Status    `json:"status_id" db:"status_id"`
	IsAdmin   bool      `json:"is_admin" db:"is_admin"`
}

func (a *Account) Disabled() bool {
	return a.StatusID == StatusDisabled
}

func (s Status) Valid() bool {
	return s == StatusEnabled || s == StatusDisabled
}

func (s Status) String() string {
	switch s {
	case StatusEnabled:
		return "Enabled"
	case StatusDisabled:
		return "Disabled"
	default:
		return "Unknown"
	}
}
