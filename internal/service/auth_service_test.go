package service_test

import (
	"context"
	"errors"
	"testing"
	"todoWeb/internal/models/account"
	"todoWeb/internal/repository"
	"todoWeb/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthService_Authenticate(t *testing.T) {
	enabled := &account.Account{ID: 2, Username: "jdoe", Password: "password", StatusID: account.StatusEnabled}
	disabled := &account.Account{ID: 3, Username: "gone", Password: "password", StatusID: account.StatusDisabled}

	tests := []struct {
		name     string
		username string
		password string
		setup    func(*MockAccountRepository)
		code     string
		message  string
	}{
		{
			name:     "пустое имя",
			username: "",
			password: "",
			setup: func(m *MockAccountRepository) {
				m.On("GetByUsername", context.Background(), "").Return(nil, repository.ErrNotFound)
			},
			code:    service.CodeNotFound,
			message: "Account doesn't exist.",
		},
		{
			name:     "отключён, пустой пароль",
			username: "gone",
			password: "",
			setup: func(m *MockAccountRepository) {
				m.On("GetByUsername", context.Background(), "gone").Return(disabled, nil)
			},
			code:    service.CodeAccountDisabled,
			message: "Account disabled. Contact administrator.",
		},
		{
			name:     "пустой пароль",
			username: "jdoe",
			password: "",
			setup: func(m *MockAccountRepository) {
				m.On("GetByUsername", context.Background(), "jdoe").Return(enabled, nil)
			},
			code:    service.CodeInvalidCredentials,
			message: "Authentication failed. Check credentials supplied.",
		},
		{
			name:     "нет аккаунта",
			username: "ghost",
			password: "password",
			setup: func(m *MockAccountRepository) {
				m.On("GetByUsername", context.Background(), "ghost").Return(nil, repository.ErrNotFound)
			},
			code:    service.CodeNotFound,
			message: "Account doesn't exist.",
		},
		{
			name:     "отключён, верный пароль",
			username: "gone",
			password: "password",
			setup: func(m *MockAccountRepository) {
				m.On("GetByUsername", context.Background(), "gone").Return(disabled, nil)
			},
			code:    service.CodeAccountDisabled,
			message: "Account disabled. Contact administrator.",
		},
		{
			name:     "отключён, неверный пароль",
			username: "gone",
			password: "wrong",
			setup: func(m *MockAccountRepository) {
				m.On("GetByUsername", context.Background(), "gone").Return(disabled, nil)
			},
			code:    service.CodeAccountDisabled,
			message: "Account disabled. Contact administrator.",
		},
		{
			name:     "неверный пароль",
			username: "jdoe",
			password: "Password",
			setup: func(m *MockAccountRepository) {
				m.On("GetByUsername", context.Background(), "jdoe").Return(enabled, nil)
			},
			code:    service.CodeInvalidCredentials,
			message: "Authentication failed. Check credentials supplied.",
		},
		{
			name:     "ошибка хранилища",
			username: "jdoe",
			password: "password",
			setup: func(m *MockAccountRepository) {
				m.On("GetByUsername", context.Background(), "jdoe").Return(nil, errors.New("boom"))
			},
			code:    service.CodeTechnical,
			message: service.TechnicalErrorMessage,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := new(MockAccountRepository)
			tt.setup(mockRepo)
			svc := service.NewAuthService(mockRepo, service.PlaintextVerifier{})

			acc, err := svc.Authenticate(context.Background(), tt.username, tt.password)

			assert.Nil(t, acc)
			busErr := requireCode(t, err, tt.code)
			assert.Equal(t, tt.message, busErr.Message)
		})
	}
}

func TestAuthService_Authenticate_Success(t *testing.T) {
	ctx := context.Background()
	mockRepo := new(MockAccountRepository)
	admin := &account.Account{ID: 1, Username: "admin", Password: "password", StatusID: account.StatusEnabled, IsAdmin: true}
	mockRepo.On("GetByUsername", ctx, "admin").Return(admin, nil).Once()
	svc := service.NewAuthService(mockRepo, nil)

	acc, err := svc.Authenticate(ctx, "admin", "password")

	require.NoError(t, err)
	assert.Equal(t, int64(1), acc.ID)
	assert.True(t, service.IsAdmin(acc))
}
