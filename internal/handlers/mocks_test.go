package handlers_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
	"todoWeb/internal/config"
	"todoWeb/internal/middleware"
	"todoWeb/internal/models/account"
	"todoWeb/internal/models/session"
	"todoWeb/internal/models/task"
	"todoWeb/internal/service"
	"todoWeb/internal/websession"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTaskService - мок сервиса задач
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockTaskService) ListTasks(ctx context.Context, accountID int64) ([]*task.Task, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) ListTasksByStatus(ctx context.Context, accountID int64, status task.Status) ([]*task.Task, error) {
	args := m.Called(ctx, accountID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) ListTasksByPriority(ctx context.Context, accountID int64, priority task.Priority) ([]*task.Task, error) {
	args := m.Called(ctx, accountID, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*task.Task), args.Error(1)
}

func (m *MockTaskService) CreateTask(ctx context.Context, accountID int64, details string, deadline time.Time, priority task.Priority) (*task.Task, error) {
	args := m.Called(ctx, accountID, details, deadline, priority)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) GetOwnTask(ctx context.Context, owner *account.Account, id int64) (*task.Task, error) {
	args := m.Called(ctx, owner, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

func (m *MockTaskService) UpdateOwnTask(ctx context.Context, owner *account.Account, id int64, options ...task.TaskOption) (*task.Task, error) {
	args := m.Called(ctx, owner, id, options)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*task.Task), args.Error(1)
}

// MockAccountService - мок сервиса аккаунтов
type MockAccountService struct {
	mock.Mock
}

func (m *MockAccountService) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockAccountService) ListAccounts(ctx context.Context) ([]*account.Account, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*account.Account), args.Error(1)
}

func (m *MockAccountService) GetAccount(ctx context.Context, id int64) (*account.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) CreateAccount(ctx context.Context, username, firstName, lastName string) (*account.Account, error) {
	args := m.Called(ctx, username, firstName, lastName)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

func (m *MockAccountService) UpdateAccount(ctx context.Context, acc *account.Account, opts service.UpdateOptions) error {
	return m.Called(ctx, acc, opts).Error(0)
}

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Authenticate(ctx context.Context, username, password string) (*account.Account, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*account.Account), args.Error(1)
}

type MockSessionRecorder struct {
	mock.Mock
}

func (m *MockSessionRecorder) StartSession(ctx context.Context, sessionID string, accountID int64) (*session.AccountSession, error) {
	args := m.Called(ctx, sessionID, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*session.AccountSession), args.Error(1)
}

func (m *MockSessionRecorder) EndSession(ctx context.Context, sessionID string) error {
	return m.Called(ctx, sessionID).Error(0)
}

var (
	adminAccount = &account.Account{ID: 1, Username: "admin", FirstName: "Admin", LastName: "Admin", StatusID: account.StatusEnabled, IsAdmin: true}
	userAccount  = &account.Account{ID: 2, Username: "jdoe", FirstName: "Jane", LastName: "Doe", StatusID: account.StatusEnabled}
)

// testEnv веб-сессия в памяти и помощники для запросов
type testEnv struct {
	store   *websession.MemoryStore
	manager *websession.Manager
	ws      *websession.Session
}

func newEnv(t *testing.T, acc *account.Account) *testEnv {
	t.Helper()
	store := websession.NewMemoryStore()
	env := &testEnv{
		store:   store,
		manager: websession.NewManager(store, config.SessionConfig{CookieName: "SID", TTL: time.Minute}),
	}
	if acc != nil {
		env.ws = &websession.Session{
			ID:        "sid",
			AccountID: acc.ID,
			FirstName: acc.FirstName,
			LastName:  acc.LastName,
			ExpiresAt: time.Now().Add(time.Minute),
		}
		require.NoError(t, store.Save(context.Background(), env.ws))
	}
	return env
}

func (e *testEnv) request(method, target string, form url.Values, acc *account.Account) *http.Request {
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}

	ctx := req.Context()
	if acc != nil {
		copied := *acc
		ctx = middleware.WithAccount(ctx, &copied)
	}
	if e.ws != nil {
		ctx = websession.WithSession(ctx, e.ws)
	}
	return req.WithContext(ctx)
}

func (e *testEnv) storedSession(t *testing.T) *websession.Session {
	t.Helper()
	s, err := e.store.Get(context.Background(), "sid")
	require.NoError(t, err)
	return s
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body
}
