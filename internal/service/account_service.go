package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/account"
	rep "todoWeb/internal/repository"

	"go.uber.org/zap"
)

const (
	msgAccountRequiredFields = "One or more required fields are empty."
	msgUsernameTaken         = "Username already exists. Try another."
	msgNoSuchAccount         = "No such account exists."
	msgPasswordRequired      = "Password must not be empty."
)

// UpdateOptions заменяет перегрузку updateAccount(account, resetPassword).
// Password записывается как есть; пустой или из пробелов оставляет пароль прежним.
// ResetPassword важнее Password.
type UpdateOptions struct {
	ResetPassword bool
	Password      string
}

func (o UpdateOptions) password(defaultPassword string) string {
	if o.ResetPassword {
		return defaultPassword
	}
	if strings.TrimSpace(o.Password) == "" {
		return ""
	}
	return o.Password
}

type AccountService struct {
	repo            AccountRepository
	verifier        CredentialVerifier
	defaultPassword string
	now             func() time.Time
}

func NewAccountService(repo AccountRepository, verifier CredentialVerifier, defaultPassword string) *AccountService {
	if verifier == nil {
		verifier = PlaintextVerifier{}
	}
	return &AccountService{
		repo:            repo,
		verifier:        verifier,
		defaultPassword: defaultPassword,
		now:             time.Now,
	}
}

func (s *AccountService) HealthCheck(ctx context.Context) error {
	if err := s.repo.HealthCheck(ctx); err != nil {
		return NewTechnicalError("health_check", err)
	}
	return nil
}

func (s *AccountService) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	accounts, err := s.repo.List(ctx)
	if err != nil {
		logger.Error("Service: Ошибка получения аккаунтов", err)
		return nil, NewTechnicalError("list_accounts", err)
	}
	return accounts, nil
}

func (s *AccountService) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	acc, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			return nil, NewNotFound("account", id, msgNoSuchAccount)
		}
		logger.Error("Service: Ошибка получения аккаунта", err, zap.Int64("account_id", id))
		return nil, NewTechnicalError("get_account", err)
	}
	return acc, nil
}

// CreateAccount заводит включённый аккаунт с паролем по умолчанию.
func (s *AccountService) CreateAccount(ctx context.Context, username, firstName, lastName string) (*account.Account, error) {
	username = strings.TrimSpace(username)
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)

	if username == "" || firstName == "" || lastName == "" {
		return nil, NewBusinessError(CodeValidation, msgAccountRequiredFields,
			ToDetail("username", username),
			ToDetail("first_name", firstName),
			ToDetail("last_name", lastName),
		)
	}

	_, err := s.repo.GetByUsername(ctx, username)
	switch {
	case err == nil:
		logger.Info("Service: Имя пользователя занято", zap.String("username", username))
		return nil, NewBusinessError(CodeDuplicateUsername, msgUsernameTaken, ToDetail("username", username))
	case !errors.Is(err, rep.ErrNotFound):
		logger.Error("Service: Ошибка проверки имени пользователя", err)
		return nil, NewTechnicalError("create_account", err)
	}

	password, err := s.verifier.Encode(s.defaultPassword)
	if err != nil {
		return nil, NewTechnicalError("create_account", err)
	}

	acc := &account.Account{
		Username:  username,
		FirstName: firstName,
		LastName:  lastName,
		Password:  password,
		CreatedAt: s.now(),
		StatusID:  account.StatusEnabled,
	}

	if err := s.repo.Create(ctx, acc); err != nil {
		if errors.Is(err, rep.ErrDuplicateUsername) {
			return nil, NewBusinessError(CodeDuplicateUsername, msgUsernameTaken, ToDetail("username", username))
		}
		logger.Error("Service: Ошибка создания аккаунта", err)
		return nil, NewTechnicalError("create_account", err)
	}

	logger.Info("Service: Аккаунт создан", zap.Int64("account_id", acc.ID), zap.String("username", username))
	return acc, nil
}

// UpdateAccount сохраняет имя, фамилию и статус. Если меняется и пароль, всё пишется одной операцией.
func (s *AccountService) UpdateAccount(ctx context.Context, acc *account.Account, opts UpdateOptions) error {
	if acc == nil || acc.ID == 0 {
		return NewValidationError("account_id", msgNoSuchAccount)
	}

	acc.FirstName = strings.TrimSpace(acc.FirstName)
	acc.LastName = strings.TrimSpace(acc.LastName)
	if acc.FirstName == "" || acc.LastName == "" {
		return NewValidationError("name", msgAccountRequiredFields)
	}
	if !acc.StatusID.Valid() {
		return NewValidationError("status", "Invalid account status.")
	}

	password := opts.password(s.defaultPassword)
	if password == "" {
		if err := s.repo.UpdateDetails(ctx, acc); err != nil {
			return s.updateFailed("update_account", acc.ID, err)
		}
		return nil
	}

	// пароль кодируется до записи, чтобы сбой не оставил аккаунт обновлённым наполовину
	encoded, err := s.verifier.Encode(password)
	if err != nil {
		return NewTechnicalError("update_account", err)
	}
	if err := s.repo.UpdateDetailsAndPassword(ctx, acc, encoded); err != nil {
		return s.updateFailed("update_account", acc.ID, err)
	}
	acc.Password = encoded
	logger.Info("Service: Аккаунт обновлён вместе с паролем",
		zap.Int64("account_id", acc.ID),
		zap.Bool("reset", opts.ResetPassword))
	return nil
}

// ChangePassword записывает пароль как есть, без правил сложности.
func (s *AccountService) ChangePassword(ctx context.Context, accountID int64, password string) error {
	if password == "" {
		return NewValidationError("password", msgPasswordRequired)
	}
	return s.setPassword(ctx, &account.Account{ID: accountID}, password)
}

func (s *AccountService) ResetPassword(ctx context.Context, accountID int64) error {
	return s.setPassword(ctx, &account.Account{ID: accountID}, s.defaultPassword)
}

func (s *AccountService) setPassword(ctx context.Context, acc *account.Account, password string) error {
	encoded, err := s.verifier.Encode(password)
	if err != nil {
		return NewTechnicalError("change_password", err)
	}
	if err := s.repo.UpdatePassword(ctx, acc.ID, encoded); err != nil {
		return s.updateFailed("change_password", acc.ID, err)
	}
	acc.Password = encoded
	return nil
}

func (s *AccountService) updateFailed(operation string, id int64, err error) error {
	if errors.Is(err, rep.ErrNotFound) {
		return NewNotFound("account", id, "Update failed - Account doesn't exist!")
	}
	logger.Error("Service: Ошибка обновления аккаунта", err,
		zap.String("operation", operation),
		zap.Int64("account_id", id))
	return NewTechnicalError(operation, err)
}
