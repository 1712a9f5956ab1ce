package repository

import "errors"

var (
	ErrNotFound          = errors.New("запись не найдена")
	ErrDuplicateUsername = errors.New("имя пользователя уже занято")
)
