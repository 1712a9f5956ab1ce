package service

import (
	"context"
	"errors"
	"todoWeb/internal/logger"
	"todoWeb/internal/models/account"
	rep "todoWeb/internal/repository"

	"go.uber.org/zap"
)

const (
	msgAccountNotFound = "Account doesn't exist."
	msgAccountDisabled = "Account disabled. Contact administrator."
	msgAuthFailed      = "Authentication failed. Check credentials supplied."
)

type AuthService struct {
	accounts AccountRepository
	verifier CredentialVerifier
}

func NewAuthService(accounts AccountRepository, verifier CredentialVerifier) *AuthService {
	if verifier == nil {
		verifier = PlaintextVerifier{}
	}
	return &AuthService{
		accounts: accounts,
		verifier: verifier,
	}
}

// Authenticate проверяет учётные данные. Отключённый аккаунт отклоняется до сравнения пароля,
// в том числе пустого: заполненность полей проверяет форма входа.
func (s *AuthService) Authenticate(ctx context.Context, username, password string) (*account.Account, error) {
	acc, err := s.accounts.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, rep.ErrNotFound) {
			logger.Info("Service: Аккаунт не найден", zap.String("username", username))
			return nil, NewNotFound("account", username, msgAccountNotFound)
		}
		logger.Error("Service: Ошибка поиска аккаунта", err)
		return nil, NewTechnicalError("authenticate", err)
	}

	if acc.Disabled() {
		logger.Warn("Service: Попытка входа в отключённый аккаунт", zap.Int64("account_id", acc.ID))
		return nil, NewBusinessError(CodeAccountDisabled, msgAccountDisabled, ToDetail("account_id", acc.ID))
	}

	if !s.verifier.Verify(acc.Password, password) {
		logger.Warn("Service: Неверный пароль", zap.Int64("account_id", acc.ID))
		return nil, NewBusinessError(CodeInvalidCredentials, msgAuthFailed)
	}

	logger.Info("Service: Успешная аутентификация", zap.Int64("account_id", acc.ID))
	return acc, nil
}
