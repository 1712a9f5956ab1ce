package service

import (
	"todoWeb/internal/models/account"
	"todoWeb/internal/models/task"
)

func IsAdmin(acc *account.Account) bool {
	return acc != nil && acc.IsAdmin
}

func IsOwner(acc *account.Account, t *task.Task) bool {
	return acc != nil && t != nil && acc.ID == t.AccountID
}
